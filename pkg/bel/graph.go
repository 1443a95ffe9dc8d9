package bel

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

type nodeEntry struct {
	seq  uint64
	node Node
}

type edgeEntry struct {
	seq  uint64
	data EdgeData
}

// Graph is a directed multigraph of statements. Nodes are identified by
// Node.Key. Several edges may connect the same ordered pair; each has an
// integer key unique for that pair. Qualified edges (with provenance) get
// keys >= 0, unqualified edges use the negative key reserved for their
// relation (see UnqualifiedKey).
//
// Nodes and Edges return elements in insertion order.
//
// A Graph is not safe for concurrent mutation.
type Graph struct {
	Name    string
	Version string

	seq   uint64
	nodes map[string]*nodeEntry
	succ  map[string]map[string]map[int]*edgeEntry
	pred  map[string]map[string]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*nodeEntry),
		succ:  make(map[string]map[string]map[int]*edgeEntry),
		pred:  make(map[string]map[string]struct{}),
	}
}

func (g *Graph) next() uint64 {
	g.seq++
	return g.seq
}

// AddNode inserts n and returns its key. Adding a node that is already
// present keeps the existing one.
func (g *Graph) AddNode(n Node) string {
	key := n.Key()
	if _, ok := g.nodes[key]; ok {
		return key
	}
	g.nodes[key] = &nodeEntry{seq: g.next(), node: n.Clone()}
	g.succ[key] = make(map[string]map[int]*edgeEntry)
	g.pred[key] = make(map[string]struct{})
	return key
}

// HasNode reports whether a node with the given key exists.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Node looks up a node by key.
func (g *Graph) Node(key string) (Node, bool) {
	e, ok := g.nodes[key]
	if !ok {
		return Node{}, false
	}
	return e.node, true
}

// RemoveNode deletes a node and every edge touching it.
func (g *Graph) RemoveNode(key string) error {
	if _, ok := g.nodes[key]; !ok {
		return fmt.Errorf("remove %s: %w", key, ErrNodeNotFound)
	}
	for v := range g.succ[key] {
		delete(g.pred[v], key)
	}
	for u := range g.pred[key] {
		delete(g.succ[u], key)
	}
	delete(g.succ, key)
	delete(g.pred, key)
	delete(g.nodes, key)
	return nil
}

// RemoveNodes deletes every listed node that exists.
func (g *Graph) RemoveNodes(keys ...string) {
	for _, k := range keys {
		_ = g.RemoveNode(k)
	}
}

// AddEdge adds a qualified edge from u to v, inserting the endpoints when
// needed, and returns the new edge key.
func (g *Graph) AddEdge(u, v Node, data EdgeData) int {
	uk, vk := g.AddNode(u), g.AddNode(v)
	keys := g.succ[uk][vk]
	key := 0
	for k := range keys {
		if k >= 0 {
			key++
		}
	}
	for {
		if _, taken := keys[key]; !taken {
			break
		}
		key++
	}
	g.put(uk, vk, key, data)
	return key
}

// AddUnqualifiedEdge adds an edge without provenance under the key reserved
// for relation. It is a no-op when that edge already exists. Relations
// without a reserved key are added as qualified edges.
func (g *Graph) AddUnqualifiedEdge(u, v Node, relation string) int {
	key, ok := UnqualifiedKey(relation)
	if !ok {
		return g.AddEdge(u, v, EdgeData{Relation: relation})
	}
	uk, vk := g.AddNode(u), g.AddNode(v)
	if _, exists := g.succ[uk][vk][key]; exists {
		return key
	}
	g.put(uk, vk, key, EdgeData{Relation: relation})
	return key
}

// AddEdgeWithKey adds or replaces the edge (u, v, key).
func (g *Graph) AddEdgeWithKey(u, v Node, key int, data EdgeData) {
	uk, vk := g.AddNode(u), g.AddNode(v)
	g.put(uk, vk, key, data)
}

func (g *Graph) put(uk, vk string, key int, data EdgeData) {
	keys, ok := g.succ[uk][vk]
	if !ok {
		keys = make(map[int]*edgeEntry)
		g.succ[uk][vk] = keys
	}
	if e, exists := keys[key]; exists {
		e.data = data.Clone()
	} else {
		keys[key] = &edgeEntry{seq: g.next(), data: data.Clone()}
	}
	g.pred[vk][uk] = struct{}{}
}

// HasEdge reports whether the edge (u, v, key) exists.
func (g *Graph) HasEdge(u, v string, key int) bool {
	_, ok := g.succ[u][v][key]
	return ok
}

// RemoveEdge deletes the edge (u, v, key).
func (g *Graph) RemoveEdge(u, v string, key int) error {
	keys, ok := g.succ[u][v]
	if !ok {
		return fmt.Errorf("remove %s -> %s: %w", u, v, ErrEdgeNotFound)
	}
	if _, ok := keys[key]; !ok {
		return fmt.Errorf("remove %s -> %s [%d]: %w", u, v, key, ErrEdgeNotFound)
	}
	delete(keys, key)
	if len(keys) == 0 {
		delete(g.succ[u], v)
		delete(g.pred[v], u)
	}
	return nil
}

func (g *Graph) AddIncreases(u, v Node, data EdgeData) int {
	data.Relation = Increases
	return g.AddEdge(u, v, data)
}

func (g *Graph) AddDecreases(u, v Node, data EdgeData) int {
	data.Relation = Decreases
	return g.AddEdge(u, v, data)
}

func (g *Graph) AddDirectlyIncreases(u, v Node, data EdgeData) int {
	data.Relation = DirectlyIncreases
	return g.AddEdge(u, v, data)
}

func (g *Graph) AddDirectlyDecreases(u, v Node, data EdgeData) int {
	data.Relation = DirectlyDecreases
	return g.AddEdge(u, v, data)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	entries := make([]*nodeEntry, 0, len(g.nodes))
	for _, e := range g.nodes {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b *nodeEntry) int { return cmpSeq(a.seq, b.seq) })

	nodes := make([]Node, len(entries))
	for i, e := range entries {
		nodes[i] = e.node
	}
	return nodes
}

// Edges returns every edge in insertion order. The returned values share
// modifier and annotation maps with the graph and must be treated as
// read-only.
func (g *Graph) Edges() []Edge {
	type ordered struct {
		seq  uint64
		edge Edge
	}
	var all []ordered
	for u, targets := range g.succ {
		for v, keys := range targets {
			for k, e := range keys {
				all = append(all, ordered{e.seq, Edge{
					Source: g.nodes[u].node,
					Target: g.nodes[v].node,
					Key:    k,
					Data:   e.data,
				}})
			}
		}
	}
	slices.SortFunc(all, func(a, b ordered) int { return cmpSeq(a.seq, b.seq) })

	edges := make([]Edge, len(all))
	for i, o := range all {
		edges[i] = o.edge
	}
	return edges
}

// EdgesBetween returns the edges from u to v ordered by key.
func (g *Graph) EdgesBetween(u, v string) []Edge {
	keys := g.succ[u][v]
	if len(keys) == 0 {
		return nil
	}
	sorted := make([]int, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	slices.Sort(sorted)

	edges := make([]Edge, 0, len(sorted))
	for _, k := range sorted {
		edges = append(edges, Edge{
			Source: g.nodes[u].node,
			Target: g.nodes[v].node,
			Key:    k,
			Data:   keys[k].data,
		})
	}
	return edges
}

// Successors returns the keys of nodes reachable by one outgoing edge,
// sorted.
func (g *Graph) Successors(key string) []string {
	out := make([]string, 0, len(g.succ[key]))
	for v := range g.succ[key] {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Predecessors returns the keys of nodes with an edge into key, sorted.
func (g *Graph) Predecessors(key string) []string {
	out := make([]string, 0, len(g.pred[key]))
	for u := range g.pred[key] {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// Degree counts the distinct neighbours of a node in either direction.
func (g *Graph) Degree(key string) int {
	seen := make(map[string]struct{})
	for v := range g.succ[key] {
		seen[v] = struct{}{}
	}
	for u := range g.pred[key] {
		seen[u] = struct{}{}
	}
	return len(seen)
}

func (g *Graph) NumberOfNodes() int { return len(g.nodes) }

func (g *Graph) NumberOfEdges() int {
	n := 0
	for _, targets := range g.succ {
		for _, keys := range targets {
			n += len(keys)
		}
	}
	return n
}

// Copy returns a deep copy preserving insertion order.
func (g *Graph) Copy() *Graph {
	c := NewGraph()
	c.Name, c.Version = g.Name, g.Version
	for _, n := range g.Nodes() {
		c.AddNode(n)
	}
	for _, e := range g.Edges() {
		c.AddEdgeWithKey(e.Source, e.Target, e.Key, e.Data)
	}
	return c
}

func cmpSeq(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
