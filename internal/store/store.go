// Package store keeps the statement graphs served by the HTTP API in
// memory. Networks come from node-link files in a data directory or from
// uploads.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/logger"
	"github.com/belgraph/reifier/pkg/nodelink"
	"github.com/belgraph/reifier/pkg/reify"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var ErrNetworkNotFound = errors.New("network not found")

const uploadSource = "upload"

// Network is one stored graph. Graph must not be mutated by callers; copy
// it first.
type Network struct {
	ID     string
	Source string
	Graph  *bel.Graph
}

// Summary describes a network without its content.
type Summary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Source  string `json:"source"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
}

func (n *Network) Summary() Summary {
	return Summary{
		ID:      n.ID,
		Name:    n.Graph.Name,
		Version: n.Graph.Version,
		Source:  n.Source,
		Nodes:   n.Graph.NumberOfNodes(),
		Edges:   n.Graph.NumberOfEdges(),
	}
}

type reified struct {
	graph  *reify.Graph
	report reify.Report
}

type NetworkStoreParams struct {
	DataDir string
	// Parallel bounds how many files are decoded at once.
	Parallel int
	// Persist writes uploaded networks to DataDir.
	Persist bool
}

// NetworkStore is safe for concurrent use.
type NetworkStore struct {
	dir      string
	parallel int
	persist  bool

	mu       sync.RWMutex
	networks map[string]*Network
	reified  map[string]reified
	group    singleflight.Group
}

func NewNetworkStore(params NetworkStoreParams) *NetworkStore {
	return &NetworkStore{
		dir:      params.DataDir,
		parallel: max(params.Parallel, 1),
		persist:  params.Persist,
		networks: make(map[string]*Network),
		reified:  make(map[string]reified),
	}
}

// Reload replaces every file-backed network with the content of the data
// directory. Uploaded networks are kept. Files that fail to decode are
// logged and skipped. Concurrent calls share one load.
func (s *NetworkStore) Reload(ctx context.Context) (int, error) {
	result, err, _ := s.group.Do("reload", func() (any, error) {
		return s.reload(ctx)
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

func (s *NetworkStore) reload(ctx context.Context) (int, error) {
	if _, err := os.Stat(s.dir); err != nil {
		if !os.IsNotExist(err) {
			return 0, fmt.Errorf("stat %s: %w", s.dir, err)
		}
		logger.Warn("[Store] Data directory does not exist", "dir", s.dir)
	}
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", s.dir, err)
	}

	loaded := make([]*Network, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, path := range paths {
		if strings.HasSuffix(path, ".reified.json") {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			graph, err := nodelink.ReadFile(path)
			if err != nil {
				logger.Warn("[Store] Skipping unreadable network", "path", path, "err", err)
				return nil
			}
			id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if graph.Name == "" {
				graph.Name = id
			}
			loaded[i] = &Network{ID: id, Source: path, Graph: graph}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.networks {
		if n.Source != uploadSource {
			delete(s.networks, id)
			delete(s.reified, id)
		}
	}
	count := 0
	for _, n := range loaded {
		if n == nil {
			continue
		}
		s.networks[n.ID] = n
		delete(s.reified, n.ID)
		count++
	}

	logger.Info("[Store] Networks loaded", "dir", s.dir, "count", count)
	return count, nil
}

// Get returns the network with the given id.
func (s *NetworkStore) Get(id string) (*Network, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.networks[id]
	if !ok {
		return nil, fmt.Errorf("network %s: %w", id, ErrNetworkNotFound)
	}
	return n, nil
}

// List returns the summaries of all networks ordered by name, then id.
func (s *NetworkStore) List() []Summary {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.networks))
	for _, n := range s.networks {
		out = append(out, n.Summary())
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Put stores an uploaded graph under a new id.
func (s *NetworkStore) Put(g *bel.Graph) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate network id: %w", err)
	}

	if s.persist {
		data, err := nodelink.Marshal(g, true)
		if err != nil {
			return "", fmt.Errorf("encode network %s: %w", id, err)
		}
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", s.dir, err)
		}
		if err := nodelink.WriteFile(filepath.Join(s.dir, id+".json"), data); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	s.networks[id] = &Network{ID: id, Source: uploadSource, Graph: g}
	s.mu.Unlock()

	logger.Info("[Store] Network stored", "id", id, "name", g.Name, "edges", g.NumberOfEdges())
	return id, nil
}

// Delete removes a network from memory. Files in the data directory are
// left alone.
func (s *NetworkStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.networks[id]; !ok {
		return fmt.Errorf("network %s: %w", id, ErrNetworkNotFound)
	}
	delete(s.networks, id)
	delete(s.reified, id)
	return nil
}

// Reified returns the reified form of a network. The result is cached until
// the network is reloaded or deleted.
func (s *NetworkStore) Reified(id string) (*reify.Graph, reify.Report, error) {
	s.mu.RLock()
	if cached, ok := s.reified[id]; ok {
		s.mu.RUnlock()
		return cached.graph, cached.report, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.group.Do("reify:"+id, func() (any, error) {
		s.mu.RLock()
		if cached, ok := s.reified[id]; ok {
			s.mu.RUnlock()
			return cached, nil
		}
		n, ok := s.networks[id]
		s.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("network %s: %w", id, ErrNetworkNotFound)
		}

		g, report := reify.ReifyWithReport(n.Graph)
		r := reified{graph: g, report: report}

		s.mu.Lock()
		if current, ok := s.networks[id]; ok && current == n {
			s.reified[id] = r
		}
		s.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, reify.Report{}, err
	}
	r := result.(reified)
	return r.graph, r.report, nil
}
