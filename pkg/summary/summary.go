// Package summary computes node properties of a statement graph: causal
// roles and the modifiers nodes take part in.
package summary

import (
	"maps"
	"slices"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/comparison"
	"github.com/belgraph/reifier/pkg/filter"
)

// Labels used by ModificationsCount.
const (
	TranslocationsLabel      = "Translocations"
	DegradationsLabel        = "Degradations"
	MolecularActivitiesLabel = "Molecular Activities"
)

// CausalOutEdges returns the distinct pairs (u, v) with u in keys and a
// causal edge from u to v, sorted.
func CausalOutEdges(g *bel.Graph, keys ...string) []comparison.Pair {
	set := make(map[comparison.Pair]struct{})
	for _, u := range keys {
		for _, v := range g.Successors(u) {
			if hasCausal(g, u, v) {
				set[comparison.Pair{Source: u, Target: v}] = struct{}{}
			}
		}
	}
	return slices.SortedFunc(maps.Keys(set), comparison.ComparePairs)
}

// CausalInEdges returns the distinct pairs (u, v) with v in keys and a
// causal edge from u to v, sorted.
func CausalInEdges(g *bel.Graph, keys ...string) []comparison.Pair {
	set := make(map[comparison.Pair]struct{})
	for _, v := range keys {
		for _, u := range g.Predecessors(v) {
			if hasCausal(g, u, v) {
				set[comparison.Pair{Source: u, Target: v}] = struct{}{}
			}
		}
	}
	return slices.SortedFunc(maps.Keys(set), comparison.ComparePairs)
}

func hasCausal(g *bel.Graph, u, v string) bool {
	return slices.ContainsFunc(g.EdgesBetween(u, v), func(e bel.Edge) bool {
		return bel.IsCausal(e.Data.Relation)
	})
}

type causalRole struct{ in, out bool }

func roleOf(g *bel.Graph, key string) causalRole {
	return causalRole{
		in:  len(CausalInEdges(g, key)) > 0,
		out: len(CausalOutEdges(g, key)) > 0,
	}
}

func nodesWithRole(g *bel.Graph, function string, want causalRole) []string {
	return filter.Nodes(g, func(n bel.Node) bool {
		return n.Function == function && roleOf(g, n.Key()) == want
	})
}

// CausalSourceNodes returns the nodes of function that cause something but
// have no causal origin inside the graph. These are usually external
// perturbagens.
func CausalSourceNodes(g *bel.Graph, function string) []string {
	return nodesWithRole(g, function, causalRole{in: false, out: true})
}

// CausalCentralNodes returns the nodes of function that are both caused and
// causing.
func CausalCentralNodes(g *bel.Graph, function string) []string {
	return nodesWithRole(g, function, causalRole{in: true, out: true})
}

// CausalSinkNodes returns the nodes of function that are caused but cause
// nothing.
func CausalSinkNodes(g *bel.Graph, function string) []string {
	return nodesWithRole(g, function, causalRole{in: true, out: false})
}

// HasModifier reports whether key is the subject of an edge with the given
// subject modifier or the object of an edge with the given object modifier.
func HasModifier(g *bel.Graph, key, modifier string) bool {
	for _, v := range g.Successors(key) {
		for _, e := range g.EdgesBetween(key, v) {
			if e.Data.SubjectModifier() == modifier {
				return true
			}
		}
	}
	for _, u := range g.Predecessors(key) {
		for _, e := range g.EdgesBetween(u, key) {
			if e.Data.ObjectModifier() == modifier {
				return true
			}
		}
	}
	return false
}

func modified(g *bel.Graph, modifier string) []string {
	return filter.Nodes(g, func(n bel.Node) bool {
		return HasModifier(g, n.Key(), modifier)
	})
}

// Degradations returns the nodes that are degraded in some statement.
func Degradations(g *bel.Graph) []string { return modified(g, bel.Degradation) }

// Activities returns the nodes with a molecular activity in some statement.
func Activities(g *bel.Graph) []string { return modified(g, bel.Activity) }

// Translocated returns the nodes that are translocated in some statement.
func Translocated(g *bel.Graph) []string { return modified(g, bel.Translocation) }

// ModificationsCount counts the nodes taking part in each kind of modifier.
// Labels with a zero count are left out.
func ModificationsCount(g *bel.Graph) map[string]int {
	counts := map[string]int{
		TranslocationsLabel:      len(Translocated(g)),
		DegradationsLabel:        len(Degradations(g)),
		MolecularActivitiesLabel: len(Activities(g)),
	}
	maps.DeleteFunc(counts, func(_ string, n int) bool { return n == 0 })
	return counts
}

// Properties gathers the causal roles of one function and the modifier
// counts of a graph.
type Properties struct {
	Function      string         `json:"function"`
	Sources       []string       `json:"sources"`
	Central       []string       `json:"central"`
	Sinks         []string       `json:"sinks"`
	Modifications map[string]int `json:"modifications"`
}

func Describe(g *bel.Graph, function string) Properties {
	return Properties{
		Function:      function,
		Sources:       CausalSourceNodes(g, function),
		Central:       CausalCentralNodes(g, function),
		Sinks:         CausalSinkNodes(g, function),
		Modifications: ModificationsCount(g),
	}
}
