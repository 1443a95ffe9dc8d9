// Package selection extracts groups of nodes and subgraphs from a
// statement graph. The input graph is never modified.
package selection

import (
	"slices"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/filter"
)

// GroupNodesByAnnotation collects, for every value of annotation, the nodes
// touching an edge with that value. Nodes keep graph insertion order.
func GroupNodesByAnnotation(g *bel.Graph, annotation string) map[string][]bel.Node {
	seen := make(map[string]map[string]struct{})
	groups := make(map[string][]bel.Node)

	add := func(value string, n bel.Node) {
		if seen[value] == nil {
			seen[value] = make(map[string]struct{})
		}
		k := n.Key()
		if _, ok := seen[value][k]; ok {
			return
		}
		seen[value][k] = struct{}{}
		groups[value] = append(groups[value], n)
	}

	for _, e := range g.Edges() {
		value, ok := e.Data.Annotation(annotation)
		if !ok {
			continue
		}
		add(value, e.Source)
		add(value, e.Target)
	}
	return groups
}

// SubgraphByAnnotation builds the subgraph induced by the edges whose
// annotation key equals value.
func SubgraphByAnnotation(g *bel.Graph, key, value string) *bel.Graph {
	return FilterEdges(g, filter.AnnotationIn(key, value))
}

// SubgraphsByAnnotation splits g into one subgraph per value of annotation.
// Edges without the annotation are left out.
func SubgraphsByAnnotation(g *bel.Graph, annotation string) map[string]*bel.Graph {
	subgraphs := make(map[string]*bel.Graph)
	for _, e := range g.Edges() {
		value, ok := e.Data.Annotation(annotation)
		if !ok {
			continue
		}
		sg, ok := subgraphs[value]
		if !ok {
			sg = bel.NewGraph()
			sg.Name = g.Name
			sg.Version = g.Version
			subgraphs[value] = sg
		}
		sg.AddEdgeWithKey(e.Source, e.Target, e.Key, e.Data)
	}
	return subgraphs
}

// SubgraphsByAnnotationFiltered is SubgraphsByAnnotation restricted to the
// given values.
func SubgraphsByAnnotationFiltered(g *bel.Graph, annotation string, values ...string) map[string]*bel.Graph {
	all := SubgraphsByAnnotation(g, annotation)
	for value := range all {
		if !slices.Contains(values, value) {
			delete(all, value)
		}
	}
	return all
}

// FilterEdges builds the subgraph induced by the edges accepted by every
// predicate. Edge keys are preserved.
func FilterEdges(g *bel.Graph, predicates ...filter.EdgePredicate) *bel.Graph {
	sg := bel.NewGraph()
	sg.Name, sg.Version = g.Name, g.Version
	for _, e := range filter.Edges(g, filter.AllEdges(predicates...)) {
		sg.AddEdgeWithKey(e.Source, e.Target, e.Key, e.Data)
	}
	return sg
}

// FilterNodes keeps the nodes accepted by every predicate and the edges
// between them.
func FilterNodes(g *bel.Graph, predicates ...filter.NodePredicate) *bel.Graph {
	keep := filter.AllNodes(predicates...)
	sg := bel.NewGraph()
	sg.Name, sg.Version = g.Name, g.Version
	for _, n := range g.Nodes() {
		if keep(n) {
			sg.AddNode(n)
		}
	}
	for _, e := range g.Edges() {
		if sg.HasNode(e.Source.Key()) && sg.HasNode(e.Target.Key()) {
			sg.AddEdgeWithKey(e.Source, e.Target, e.Key, e.Data)
		}
	}
	return sg
}

// Neighborhood returns the subgraph of every edge touching one of keys.
func Neighborhood(g *bel.Graph, keys ...string) *bel.Graph {
	return FilterEdges(g, func(e bel.Edge) bool {
		return slices.Contains(keys, e.Source.Key()) || slices.Contains(keys, e.Target.Key())
	})
}
