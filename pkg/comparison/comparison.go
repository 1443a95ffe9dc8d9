// Package comparison compares statement graphs as sets of nodes, node pairs
// and edges.
package comparison

import (
	"cmp"
	"maps"
	"slices"

	"github.com/belgraph/reifier/pkg/bel"
)

// Pair is an ordered pair of node keys connected by at least one edge.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ComparePairs orders pairs by source and then target.
func ComparePairs(a, b Pair) int {
	return cmp.Or(cmp.Compare(a.Source, b.Source), cmp.Compare(a.Target, b.Target))
}

// Pairs returns the distinct connected pairs of g, sorted.
func Pairs(g *bel.Graph) []Pair {
	return sortedPairs(pairSet(g))
}

func pairSet(g *bel.Graph) map[Pair]struct{} {
	set := make(map[Pair]struct{})
	for _, e := range g.Edges() {
		set[Pair{e.Source.Key(), e.Target.Key()}] = struct{}{}
	}
	return set
}

func sortedPairs(set map[Pair]struct{}) []Pair {
	return slices.SortedFunc(maps.Keys(set), ComparePairs)
}

func nodeSet(g *bel.Graph) map[string]struct{} {
	set := make(map[string]struct{}, g.NumberOfNodes())
	for _, n := range g.Nodes() {
		set[n.Key()] = struct{}{}
	}
	return set
}

// EntitiesEqual reports whether g and h have the same node keys.
func EntitiesEqual(g, h *bel.Graph) bool {
	return maps.Equal(nodeSet(g), nodeSet(h))
}

// TopologicallyEqual reports whether g and h have the same nodes and the
// same connected pairs, ignoring edge multiplicity and content.
func TopologicallyEqual(g, h *bel.Graph) bool {
	return EntitiesEqual(g, h) && maps.Equal(pairSet(g), pairSet(h))
}

type relationKey struct {
	Pair
	Relation string
}

func relationCounts(g *bel.Graph) map[relationKey]int {
	counts := make(map[relationKey]int)
	for _, e := range g.Edges() {
		counts[relationKey{Pair{e.Source.Key(), e.Target.Key()}, e.Data.Relation}]++
	}
	return counts
}

// RelationsEqual reports whether g and h are topologically equal and carry
// the same multiset of relations between every pair.
func RelationsEqual(g, h *bel.Graph) bool {
	return EntitiesEqual(g, h) && maps.Equal(relationCounts(g), relationCounts(h))
}

// ProvenanceEqual reports whether the edges of g and h can be paired one
// to one so that paired edges join the same nodes and carry equal data.
// Edge keys are not compared.
func ProvenanceEqual(g, h *bel.Graph) bool {
	if !RelationsEqual(g, h) {
		return false
	}
	for _, p := range Pairs(g) {
		if !matchOneToOne(g.EdgesBetween(p.Source, p.Target), h.EdgesBetween(p.Source, p.Target)) {
			return false
		}
	}
	return true
}

// matchOneToOne consumes one unused edge of right for every edge of left.
func matchOneToOne(left, right []bel.Edge) bool {
	if len(left) != len(right) {
		return false
	}
	unused := slices.Clone(right)
	for _, e := range left {
		i := slices.IndexFunc(unused, func(o bel.Edge) bool { return o.Data.Equal(e.Data) })
		if i < 0 {
			return false
		}
		unused = slices.Delete(unused, i, i+1)
	}
	return true
}

// EdgesIntersection returns the connected pairs present in both graphs.
func EdgesIntersection(g, h *bel.Graph) []Pair {
	hs := pairSet(h)
	out := make(map[Pair]struct{})
	for p := range pairSet(g) {
		if _, ok := hs[p]; ok {
			out[p] = struct{}{}
		}
	}
	return sortedPairs(out)
}

// EdgesSubtract returns the connected pairs of g missing from h.
func EdgesSubtract(g, h *bel.Graph) []Pair {
	hs := pairSet(h)
	out := make(map[Pair]struct{})
	for p := range pairSet(g) {
		if _, ok := hs[p]; !ok {
			out[p] = struct{}{}
		}
	}
	return sortedPairs(out)
}

// EdgesXor returns the connected pairs present in exactly one graph.
func EdgesXor(g, h *bel.Graph) []Pair {
	out := slices.Concat(EdgesSubtract(g, h), EdgesSubtract(h, g))
	slices.SortFunc(out, ComparePairs)
	return out
}

// Difference summarises how two graphs differ.
type Difference struct {
	OnlyLeftNodes  []string `json:"only_left_nodes"`
	OnlyRightNodes []string `json:"only_right_nodes"`
	OnlyLeftPairs  []Pair   `json:"only_left_pairs"`
	OnlyRightPairs []Pair   `json:"only_right_pairs"`
	CommonPairs    int      `json:"common_pairs"`

	EntitiesEqual      bool `json:"entities_equal"`
	TopologicallyEqual bool `json:"topologically_equal"`
	RelationsEqual     bool `json:"relations_equal"`
	ProvenanceEqual    bool `json:"provenance_equal"`
}

// Empty reports whether the graphs were found identical.
func (d Difference) Empty() bool {
	return d.ProvenanceEqual
}

// Diff compares g (left) with h (right).
func Diff(g, h *bel.Graph) Difference {
	gn, hn := nodeSet(g), nodeSet(h)
	onlyLeft, onlyRight := []string{}, []string{}
	for k := range gn {
		if _, ok := hn[k]; !ok {
			onlyLeft = append(onlyLeft, k)
		}
	}
	for k := range hn {
		if _, ok := gn[k]; !ok {
			onlyRight = append(onlyRight, k)
		}
	}
	slices.Sort(onlyLeft)
	slices.Sort(onlyRight)

	return Difference{
		OnlyLeftNodes:      onlyLeft,
		OnlyRightNodes:     onlyRight,
		OnlyLeftPairs:      nonNil(EdgesSubtract(g, h)),
		OnlyRightPairs:     nonNil(EdgesSubtract(h, g)),
		CommonPairs:        len(EdgesIntersection(g, h)),
		EntitiesEqual:      len(onlyLeft) == 0 && len(onlyRight) == 0,
		TopologicallyEqual: TopologicallyEqual(g, h),
		RelationsEqual:     RelationsEqual(g, h),
		ProvenanceEqual:    ProvenanceEqual(g, h),
	}
}

func nonNil(p []Pair) []Pair {
	if p == nil {
		return []Pair{}
	}
	return p
}
