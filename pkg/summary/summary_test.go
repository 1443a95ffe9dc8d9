package summary

import (
	"testing"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/comparison"

	"github.com/stretchr/testify/assert"
)

var (
	akt1 = bel.NewProtein("HGNC", "AKT1")
	egfr = bel.NewProtein("HGNC", "EGFR")
	mapt = bel.NewProtein("HGNC", "MAPT")
	gsk3 = bel.NewProtein("HGNC", "GSK3B")
	oxa  = bel.NewAbundance("CHEBI", "oxaliplatin")
)

// oxa -> akt1 -> egfr -> mapt, with gsk3 only associated to mapt.
func pathway() *bel.Graph {
	g := bel.NewGraph()
	g.AddIncreases(oxa, akt1, bel.EdgeData{})
	g.AddIncreases(akt1, egfr, bel.EdgeData{})
	g.AddDecreases(egfr, mapt, bel.EdgeData{})
	g.AddEdge(gsk3, mapt, bel.EdgeData{Relation: bel.Association})
	g.AddUnqualifiedEdge(akt1, egfr, bel.HasComponent)
	return g
}

func TestCausalEdges(t *testing.T) {
	g := pathway()

	assert.Equal(t, []comparison.Pair{{Source: akt1.Key(), Target: egfr.Key()}}, CausalOutEdges(g, akt1.Key()))
	assert.Equal(t, []comparison.Pair{{Source: egfr.Key(), Target: mapt.Key()}}, CausalInEdges(g, mapt.Key()))
	assert.Empty(t, CausalOutEdges(g, gsk3.Key()))
	assert.Empty(t, CausalInEdges(g, "missing"))

	both := CausalInEdges(g, akt1.Key(), egfr.Key())
	assert.Len(t, both, 2)
}

func TestCausalRoles(t *testing.T) {
	g := pathway()

	tests := []struct {
		name     string
		nodes    func(*bel.Graph, string) []string
		function string
		want     []string
	}{
		{"abundance source", CausalSourceNodes, bel.Abundance, []string{oxa.Key()}},
		{"no protein source", CausalSourceNodes, bel.Protein, nil},
		{"central", CausalCentralNodes, bel.Protein, []string{akt1.Key(), egfr.Key()}},
		{"sink", CausalSinkNodes, bel.Protein, []string{mapt.Key()}},
		{"no abundance sink", CausalSinkNodes, bel.Abundance, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.nodes(g, tc.function))
		})
	}
}

func modifier(name string) *bel.Modifier { return &bel.Modifier{Modifier: name} }

func TestModifiedNodes(t *testing.T) {
	g := bel.NewGraph()
	g.AddIncreases(akt1, egfr, bel.EdgeData{Subject: modifier(bel.Activity), Object: modifier(bel.Degradation)})
	g.AddDecreases(oxa, mapt, bel.EdgeData{Object: modifier(bel.Activity)})
	g.AddIncreases(gsk3, oxa, bel.EdgeData{})

	tests := []struct {
		name  string
		nodes func(*bel.Graph) []string
		want  []string
	}{
		{"activities", Activities, []string{akt1.Key(), mapt.Key()}},
		{"degradations", Degradations, []string{egfr.Key()}},
		{"translocated", Translocated, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.nodes(g))
		})
	}

	// A subject modifier never marks the object and vice versa.
	assert.False(t, HasModifier(g, egfr.Key(), bel.Activity))
	assert.False(t, HasModifier(g, akt1.Key(), bel.Degradation))
}

func TestModificationsCount(t *testing.T) {
	tests := []struct {
		name  string
		graph func() *bel.Graph
		want  map[string]int
	}{
		{
			name:  "no modifiers",
			graph: pathway,
			want:  map[string]int{},
		},
		{
			name: "zero counts dropped",
			graph: func() *bel.Graph {
				g := bel.NewGraph()
				g.AddIncreases(akt1, egfr, bel.EdgeData{Subject: modifier(bel.Activity), Object: modifier(bel.Translocation)})
				g.AddIncreases(gsk3, egfr, bel.EdgeData{Subject: modifier(bel.Activity)})
				return g
			},
			want: map[string]int{TranslocationsLabel: 1, MolecularActivitiesLabel: 2},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ModificationsCount(tc.graph()))
		})
	}
}

func TestDescribe(t *testing.T) {
	p := Describe(pathway(), bel.Protein)

	assert.Equal(t, bel.Protein, p.Function)
	assert.Empty(t, p.Sources)
	assert.Equal(t, []string{akt1.Key(), egfr.Key()}, p.Central)
	assert.Equal(t, []string{mapt.Key()}, p.Sinks)
	assert.Empty(t, p.Modifications)
}
