// Package nodelink reads and writes statement graphs as node-link JSON
// documents and writes reified graphs in the same style.
package nodelink

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/belgraph/reifier/pkg/bel"

	"github.com/kaptinlin/jsonrepair"
)

var ErrInvalidGraph = errors.New("invalid node-link graph")

// Document is the node-link form of a statement graph. Links refer to nodes
// by their index in Nodes.
type Document struct {
	Directed   bool       `json:"directed"`
	Multigraph bool       `json:"multigraph"`
	Graph      Meta       `json:"graph"`
	Nodes      []NodeData `json:"nodes"`
	Links      []LinkData `json:"links"`
}

type Meta struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// NodeData is one entity. ID repeats the node key and is informational on
// decode.
type NodeData struct {
	ID string `json:"id,omitempty" jsonschema_description:"Canonical key of the node, e.g. p(HGNC:AKT1)"`
	bel.Node
}

// LinkData is one statement between Nodes[Source] and Nodes[Target]. Key
// is negative for unqualified edges.
type LinkData struct {
	Source int `json:"source" jsonschema_description:"Index of the subject in nodes"`
	Target int `json:"target" jsonschema_description:"Index of the object in nodes"`
	Key    int `json:"key"`
	bel.EdgeData
}

// ToDocument converts g into its node-link document.
func ToDocument(g *bel.Graph) Document {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	doc := Document{
		Directed:   true,
		Multigraph: true,
		Graph:      Meta{Name: g.Name, Version: g.Version},
		Nodes:      make([]NodeData, len(nodes)),
		Links:      []LinkData{},
	}
	for i, n := range nodes {
		key := n.Key()
		index[key] = i
		doc.Nodes[i] = NodeData{ID: key, Node: n}
	}
	for _, e := range g.Edges() {
		doc.Links = append(doc.Links, LinkData{
			Source:   index[e.Source.Key()],
			Target:   index[e.Target.Key()],
			Key:      e.Key,
			EdgeData: e.Data,
		})
	}
	return doc
}

// FromDocument builds a graph from doc. Links pointing outside the node
// list and nodes without a function are rejected with ErrInvalidGraph.
func FromDocument(doc Document) (*bel.Graph, error) {
	g := bel.NewGraph()
	g.Name, g.Version = doc.Graph.Name, doc.Graph.Version

	for i, n := range doc.Nodes {
		if n.Function == "" {
			return nil, fmt.Errorf("node %d has no function: %w", i, ErrInvalidGraph)
		}
		g.AddNode(n.Node)
	}

	for i, l := range doc.Links {
		if l.Source < 0 || l.Source >= len(doc.Nodes) || l.Target < 0 || l.Target >= len(doc.Nodes) {
			return nil, fmt.Errorf("link %d refers to a missing node: %w", i, ErrInvalidGraph)
		}
		if l.Relation == "" {
			return nil, fmt.Errorf("link %d has no relation: %w", i, ErrInvalidGraph)
		}
		u, v := doc.Nodes[l.Source].Node, doc.Nodes[l.Target].Node
		if l.Key < 0 {
			if _, ok := bel.UnqualifiedRelation(l.Key); !ok {
				return nil, fmt.Errorf("link %d has unknown unqualified key %d: %w", i, l.Key, ErrInvalidGraph)
			}
		}
		g.AddEdgeWithKey(u, v, l.Key, l.EdgeData)
	}
	return g, nil
}

// Marshal encodes g as node-link JSON.
func Marshal(g *bel.Graph, pretty bool) ([]byte, error) {
	return marshal(ToDocument(g), pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Unmarshal decodes node-link JSON. Input that is not valid JSON, such as a
// hand-edited file with trailing commas or a double-encoded string, is
// repaired before giving up.
func Unmarshal(data []byte) (*bel.Graph, error) {
	var doc Document
	if err := unmarshalFlexible(string(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}
	return FromDocument(doc)
}

func unmarshalFlexible(input string, out any) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("empty document")
	}

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("json repair failed: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("decode repaired json: %w", err)
	}
	return nil
}
