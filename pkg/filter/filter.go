// Package filter provides composable node and edge predicates over
// statement graphs.
package filter

import (
	"slices"

	"github.com/belgraph/reifier/pkg/bel"
)

type NodePredicate func(n bel.Node) bool

type EdgePredicate func(e bel.Edge) bool

// FunctionIn keeps nodes whose function is one of functions.
func FunctionIn(functions ...string) NodePredicate {
	return func(n bel.Node) bool {
		return slices.Contains(functions, n.Function)
	}
}

// NamespaceIn keeps nodes from one of namespaces. Nodes without a namespace
// never match.
func NamespaceIn(namespaces ...string) NodePredicate {
	return func(n bel.Node) bool {
		return n.Namespace != "" && slices.Contains(namespaces, n.Namespace)
	}
}

// FunctionNamespaceIn keeps nodes of the given function from one of
// namespaces.
func FunctionNamespaceIn(function string, namespaces ...string) NodePredicate {
	return AllNodes(FunctionIn(function), NamespaceIn(namespaces...))
}

// HasVariants keeps nodes carrying at least one variant.
func HasVariants(n bel.Node) bool { return len(n.Variants) > 0 }

// AllNodes is the conjunction of predicates. With no predicates it keeps
// everything.
func AllNodes(predicates ...NodePredicate) NodePredicate {
	return func(n bel.Node) bool {
		for _, p := range predicates {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

func NotNode(p NodePredicate) NodePredicate {
	return func(n bel.Node) bool { return !p(n) }
}

// RelationIn keeps edges whose relation is one of relations.
func RelationIn(relations ...string) EdgePredicate {
	return func(e bel.Edge) bool {
		return slices.Contains(relations, e.Data.Relation)
	}
}

// HasAnnotation keeps edges carrying the annotation, whatever its value.
func HasAnnotation(annotation string) EdgePredicate {
	return func(e bel.Edge) bool {
		_, ok := e.Data.Annotation(annotation)
		return ok
	}
}

// AnnotationIn keeps edges whose annotation value is one of values.
func AnnotationIn(annotation string, values ...string) EdgePredicate {
	return func(e bel.Edge) bool {
		v, ok := e.Data.Annotation(annotation)
		return ok && slices.Contains(values, v)
	}
}

// Causal keeps edges with a causal relation.
func Causal(e bel.Edge) bool { return bel.IsCausal(e.Data.Relation) }

// AllEdges is the conjunction of predicates.
func AllEdges(predicates ...EdgePredicate) EdgePredicate {
	return func(e bel.Edge) bool {
		for _, p := range predicates {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

func NotEdge(p EdgePredicate) EdgePredicate {
	return func(e bel.Edge) bool { return !p(e) }
}

// Nodes returns the keys of nodes of g accepted by p, in insertion order.
func Nodes(g *bel.Graph, p NodePredicate) []string {
	var keys []string
	for _, n := range g.Nodes() {
		if p(n) {
			keys = append(keys, n.Key())
		}
	}
	return keys
}

// Edges returns the edges of g accepted by p, in insertion order.
func Edges(g *bel.Graph, p EdgePredicate) []bel.Edge {
	var edges []bel.Edge
	for _, e := range g.Edges() {
		if p(e) {
			edges = append(edges, e)
		}
	}
	return edges
}
