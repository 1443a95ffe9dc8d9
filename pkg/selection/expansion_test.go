package selection

import (
	"slices"
	"testing"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/comparison"
	"github.com/belgraph/reifier/pkg/filter"

	"github.com/stretchr/testify/assert"
)

func pair(u, v bel.Node) comparison.Pair {
	return comparison.Pair{Source: u.Key(), Target: v.Key()}
}

func TestPossibleEdges(t *testing.T) {
	g := fixture()
	nodes := []string{akt1.Key(), mapt.Key()}

	succ := PossibleSuccessorEdges(g, nodes)
	assert.Equal(t, []comparison.Pair{pair(akt1, egfr)}, succ)

	pred := PossiblePredecessorEdges(g, nodes)
	assert.ElementsMatch(t, []comparison.Pair{pair(oxa, akt1), pair(egfr, mapt), pair(oxa, mapt)}, pred)
	assert.True(t, slices.IsSortedFunc(pred, comparison.ComparePairs))

	assert.Equal(t, map[string]int{egfr.Key(): 1}, CountPossibleSuccessors(g, nodes))
	assert.Equal(t, map[string]int{oxa.Key(): 2, egfr.Key(): 1}, CountPossiblePredecessors(g, nodes))
}

func TestSubgraphEdges(t *testing.T) {
	g := fixture()

	tests := []struct {
		name           string
		value          string
		source, target filter.NodePredicate
		want           int
	}{
		{"permissive", "9606", nil, nil, 2},
		{"protein endpoints", "9606", filter.FunctionIn(bel.Protein), filter.NamespaceIn("HGNC"), 2},
		{"source rejected", "10090", filter.FunctionIn(bel.Protein), nil, 0},
		{"target accepted", "10090", nil, filter.FunctionIn(bel.Protein), 1},
		{"unknown value", "7227", nil, nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			edges := SubgraphEdges(g, "Species", tc.value, tc.source, tc.target)
			assert.Len(t, edges, tc.want)
			for _, e := range edges {
				value, _ := e.Data.Annotation("Species")
				assert.Equal(t, tc.value, value)
			}
		})
	}
}

func TestSubgraphFillEdges(t *testing.T) {
	g := fixture()

	tests := []struct {
		name  string
		nodes []string
		keep  filter.NodePredicate
		want  []comparison.Pair
	}{
		{
			name:  "gaps linked in both directions",
			nodes: []string{akt1.Key(), mapt.Key()},
			want:  []comparison.Pair{pair(akt1, egfr), pair(egfr, mapt), pair(oxa, akt1), pair(oxa, mapt)},
		},
		{
			name:  "filtered gaps",
			nodes: []string{akt1.Key(), mapt.Key()},
			keep:  filter.FunctionIn(bel.Protein),
			want:  []comparison.Pair{pair(akt1, egfr), pair(egfr, mapt)},
		},
		{
			name:  "single links are no gap",
			nodes: []string{akt1.Key()},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SubgraphFillEdges(g, tc.nodes, tc.keep)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tc.want, got)
			assert.True(t, slices.IsSortedFunc(got, comparison.ComparePairs))
		})
	}
}
