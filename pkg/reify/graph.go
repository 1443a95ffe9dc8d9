package reify

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/belgraph/reifier/pkg/bel"
)

// NodeKey identifies a node of a reified graph. Entity nodes are keyed by
// the source node's key; statement nodes by their integer id.
type NodeKey struct {
	Entity string
	ID     int
}

func EntityKey(n bel.Node) NodeKey { return NodeKey{Entity: n.Key()} }

func StatementKey(id int) NodeKey { return NodeKey{ID: id} }

// IsStatement reports whether the key names a reified statement node.
func (k NodeKey) IsStatement() bool { return k.Entity == "" }

func (k NodeKey) String() string {
	if k.IsStatement() {
		return strconv.Itoa(k.ID)
	}
	return k.Entity
}

// MarshalJSON writes statement keys as numbers and entity keys as strings.
func (k NodeKey) MarshalJSON() ([]byte, error) {
	if k.IsStatement() {
		return json.Marshal(k.ID)
	}
	return json.Marshal(k.Entity)
}

func (k *NodeKey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var entity string
		if err := json.Unmarshal(data, &entity); err != nil {
			return err
		}
		if entity == "" {
			return fmt.Errorf("empty entity key")
		}
		*k = NodeKey{Entity: entity}
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("node key %s: %w", data, err)
	}
	*k = StatementKey(id)
	return nil
}

// Causal is the polarity of a statement.
type Causal struct {
	Increase bool `json:"increase"`
	Decrease bool `json:"decrease"`
}

// Node is either an entity carried over from the source graph or a
// synthetic statement node. Entity is nil for statement nodes.
type Node struct {
	Key    NodeKey
	Entity *bel.Node
	Label  string
	Causal *Causal
}

// Link is a labeled directed edge of the reified graph.
type Link struct {
	From  NodeKey
	To    NodeKey
	Label string
}

// Builder receives the reified graph while it is assembled. Graph is the
// in-memory implementation; other graph libraries can be plugged in by
// implementing these three methods.
type Builder interface {
	AddEntity(n bel.Node) NodeKey
	AddStatementNode(id int, label string, causal *Causal) NodeKey
	AddEdge(from, to NodeKey, label string)
}

// Graph is a simple directed graph with labeled edges. Nodes are returned
// in insertion order.
type Graph struct {
	order []NodeKey
	nodes map[NodeKey]*Node
	out   map[NodeKey]map[NodeKey]string
	in    map[NodeKey]map[NodeKey]string
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeKey]*Node),
		out:   make(map[NodeKey]map[NodeKey]string),
		in:    make(map[NodeKey]map[NodeKey]string),
	}
}

func (g *Graph) add(n *Node) NodeKey {
	if _, ok := g.nodes[n.Key]; ok {
		return n.Key
	}
	g.nodes[n.Key] = n
	g.order = append(g.order, n.Key)
	g.out[n.Key] = make(map[NodeKey]string)
	g.in[n.Key] = make(map[NodeKey]string)
	return n.Key
}

// AddEntity adds a source entity node. Adding it twice is a no-op.
func (g *Graph) AddEntity(n bel.Node) NodeKey {
	c := n.Clone()
	return g.add(&Node{Key: EntityKey(n), Entity: &c})
}

// AddStatementNode adds a reified statement node with the given id.
func (g *Graph) AddStatementNode(id int, label string, causal *Causal) NodeKey {
	return g.add(&Node{Key: StatementKey(id), Label: label, Causal: causal})
}

// AddEdge adds or relabels the edge from -> to. Both endpoints must have
// been added before.
func (g *Graph) AddEdge(from, to NodeKey, label string) {
	if _, ok := g.nodes[from]; !ok {
		return
	}
	if _, ok := g.nodes[to]; !ok {
		return
	}
	g.out[from][to] = label
	g.in[to][from] = label
}

// Node looks up a node.
func (g *Graph) Node(k NodeKey) (*Node, bool) {
	n, ok := g.nodes[k]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, k := range g.order {
		nodes[i] = g.nodes[k]
	}
	return nodes
}

// StatementNodes returns the reified statement nodes ordered by id.
func (g *Graph) StatementNodes() []*Node {
	var nodes []*Node
	for _, k := range g.order {
		if k.IsStatement() {
			nodes = append(nodes, g.nodes[k])
		}
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return cmp.Compare(a.Key.ID, b.Key.ID) })
	return nodes
}

// Edges returns every edge, grouped by source node in insertion order.
func (g *Graph) Edges() []Link {
	var links []Link
	for _, k := range g.order {
		links = append(links, g.OutEdges(k)...)
	}
	return links
}

// OutEdges returns the edges leaving k.
func (g *Graph) OutEdges(k NodeKey) []Link {
	return g.collect(g.out[k], func(other NodeKey, label string) Link {
		return Link{From: k, To: other, Label: label}
	})
}

// InEdges returns the edges entering k.
func (g *Graph) InEdges(k NodeKey) []Link {
	return g.collect(g.in[k], func(other NodeKey, label string) Link {
		return Link{From: other, To: k, Label: label}
	})
}

func (g *Graph) collect(adj map[NodeKey]string, mk func(NodeKey, string) Link) []Link {
	if len(adj) == 0 {
		return nil
	}
	links := make([]Link, 0, len(adj))
	for other, label := range adj {
		links = append(links, mk(other, label))
	}
	slices.SortFunc(links, func(a, b Link) int {
		if c := cmp.Compare(a.From.String(), b.From.String()); c != 0 {
			return c
		}
		return cmp.Compare(a.To.String(), b.To.String())
	})
	return links
}

func (g *Graph) NumberOfNodes() int { return len(g.nodes) }

func (g *Graph) NumberOfEdges() int {
	n := 0
	for _, adj := range g.out {
		n += len(adj)
	}
	return n
}

// Triple is a statement read back from the reified graph, independent of
// the numbering of statement nodes.
type Triple struct {
	Subject string
	Label   string
	Causal  *Causal
	Object  string
}

// Triples returns one triple per statement node, sorted. Two reifications
// of the same source graph yield equal triples.
func (g *Graph) Triples() []Triple {
	var triples []Triple
	for _, n := range g.StatementNodes() {
		t := Triple{Label: n.Label, Causal: n.Causal}
		for from, label := range g.in[n.Key] {
			if label == SubjectLabel {
				t.Subject = from.String()
			}
		}
		for to, label := range g.out[n.Key] {
			if label == ObjectLabel {
				t.Object = to.String()
			}
		}
		triples = append(triples, t)
	}
	slices.SortFunc(triples, func(a, b Triple) int {
		return cmp.Or(
			cmp.Compare(a.Subject, b.Subject),
			cmp.Compare(a.Label, b.Label),
			cmp.Compare(a.Object, b.Object),
			cmp.Compare(causalRank(a.Causal), causalRank(b.Causal)),
		)
	})
	return triples
}

func causalRank(c *Causal) int {
	if c == nil {
		return 0
	}
	r := 1
	if c.Increase {
		r += 1
	}
	if c.Decrease {
		r += 2
	}
	return r
}
