package selection

import (
	"maps"
	"slices"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/comparison"
	"github.com/belgraph/reifier/pkg/filter"
)

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func sorted(set map[comparison.Pair]struct{}) []comparison.Pair {
	return slices.SortedFunc(maps.Keys(set), comparison.ComparePairs)
}

// PossibleSuccessorEdges returns the pairs (u, v) with u in nodes and v a
// successor of u outside nodes, sorted.
func PossibleSuccessorEdges(g *bel.Graph, nodes []string) []comparison.Pair {
	in := keySet(nodes)
	set := make(map[comparison.Pair]struct{})
	for u := range in {
		for _, v := range g.Successors(u) {
			if _, ok := in[v]; !ok {
				set[comparison.Pair{Source: u, Target: v}] = struct{}{}
			}
		}
	}
	return sorted(set)
}

// PossiblePredecessorEdges returns the pairs (u, v) with v in nodes and u a
// predecessor of v outside nodes, sorted.
func PossiblePredecessorEdges(g *bel.Graph, nodes []string) []comparison.Pair {
	in := keySet(nodes)
	set := make(map[comparison.Pair]struct{})
	for v := range in {
		for _, u := range g.Predecessors(v) {
			if _, ok := in[u]; !ok {
				set[comparison.Pair{Source: u, Target: v}] = struct{}{}
			}
		}
	}
	return sorted(set)
}

// CountPossibleSuccessors counts, for every node outside nodes, how many
// nodes of the set point to it.
func CountPossibleSuccessors(g *bel.Graph, nodes []string) map[string]int {
	counts := make(map[string]int)
	for _, p := range PossibleSuccessorEdges(g, nodes) {
		counts[p.Target]++
	}
	return counts
}

// CountPossiblePredecessors counts, for every node outside nodes, how many
// nodes of the set it points to.
func CountPossiblePredecessors(g *bel.Graph, nodes []string) map[string]int {
	counts := make(map[string]int)
	for _, p := range PossiblePredecessorEdges(g, nodes) {
		counts[p.Source]++
	}
	return counts
}

// SubgraphEdges returns the edges annotated with key = value whose source
// and target pass the filters. A nil filter accepts every node.
func SubgraphEdges(g *bel.Graph, key, value string, source, target filter.NodePredicate) []bel.Edge {
	if source == nil {
		source = filter.AllNodes()
	}
	if target == nil {
		target = filter.AllNodes()
	}
	match := filter.AnnotationIn(key, value)
	return filter.Edges(g, func(e bel.Edge) bool {
		return match(e) && source(e.Source) && target(e.Target)
	})
}

// SubgraphFillEdges finds the gap nodes around nodes: outside nodes linked
// to the set at least twice, counting both directions, and accepted by
// keep. It returns the pairs connecting the set to its gaps, sorted. A nil
// keep accepts every node.
func SubgraphFillEdges(g *bel.Graph, nodes []string, keep filter.NodePredicate) []comparison.Pair {
	if keep == nil {
		keep = filter.AllNodes()
	}

	succ := PossibleSuccessorEdges(g, nodes)
	pred := PossiblePredecessorEdges(g, nodes)

	freq := CountPossibleSuccessors(g, nodes)
	for k, n := range CountPossiblePredecessors(g, nodes) {
		freq[k] += n
	}

	gaps := make(map[string]struct{})
	for k, n := range freq {
		if n < 2 {
			continue
		}
		if node, ok := g.Node(k); ok && keep(node) {
			gaps[k] = struct{}{}
		}
	}

	set := make(map[comparison.Pair]struct{})
	for _, p := range succ {
		if _, ok := gaps[p.Target]; ok {
			set[p] = struct{}{}
		}
	}
	for _, p := range pred {
		if _, ok := gaps[p.Source]; ok {
			set[p] = struct{}{}
		}
	}
	return sorted(set)
}
