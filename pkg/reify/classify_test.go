package reify

import (
	"testing"

	"github.com/belgraph/reifier/pkg/bel"

	"github.com/stretchr/testify/assert"
)

var (
	cdk5   = bel.NewProtein("HGNC", "CDK5")
	gsk3b  = bel.NewProtein("HGNC", "GSK3B")
	pTau   = bel.NewProtein("HGNC", "MAPT", bel.PMod("Ph"))
	hyHif  = bel.NewProtein("HGNC", "HIF1A", bel.PMod("Hy"))
	casp8  = bel.NewProtein("HGNC", "CASP8")
	ctnnb1 = bel.NewProtein("HGNC", "CTNNB1")
	birc5  = bel.NewRNA("HGNC", "BIRC5")
	gBirc5 = bel.NewGene("HGNC", "BIRC5")
	pBirc5 = bel.NewProtein("HGNC", "BIRC5")
	oxa    = bel.NewAbundance("CHEBI", "oxaliplatin")
	ros    = bel.NewAbundance("MESHC", "Reactive Oxygen Species")
	abeta  = bel.NewAbundance("CHEBI", "amyloid-beta")
)

func edge(u, v bel.Node, relation string, object *bel.Modifier) bel.Edge {
	return bel.Edge{Source: u, Target: v, Data: bel.EdgeData{Relation: relation, Object: object}}
}

func TestClassify(t *testing.T) {
	activity := &bel.Modifier{Modifier: bel.Activity, Effect: map[string]string{"name": "ma"}}
	degradation := &bel.Modifier{Modifier: bel.Degradation}

	tests := []struct {
		name   string
		edge   bel.Edge
		match  Match
		label  string
		rule   string
		causal *Causal
	}{
		{
			name:   "phosphorylation increase",
			edge:   edge(cdk5, pTau, bel.DirectlyIncreases, nil),
			match:  Matched,
			label:  Phosphorylates,
			rule:   "phosphorylation",
			causal: &Causal{Increase: true},
		},
		{
			name:   "dephosphorylation keeps the label with decrease polarity",
			edge:   edge(cdk5, pTau, bel.DirectlyDecreases, nil),
			match:  Matched,
			label:  Phosphorylates,
			rule:   "phosphorylation",
			causal: &Causal{Decrease: true},
		},
		{
			name:   "hydroxylation",
			edge:   edge(cdk5, hyHif, bel.Increases, nil),
			match:  Matched,
			label:  Hydroxylates,
			rule:   "hydroxylation",
			causal: &Causal{Increase: true},
		},
		{
			name:   "activation",
			edge:   edge(cdk5, casp8, bel.DirectlyIncreases, activity),
			match:  Matched,
			label:  Activates,
			rule:   "activation",
			causal: &Causal{Increase: true},
		},
		{
			name:   "decreased activity is plain abundance",
			edge:   edge(cdk5, casp8, bel.Decreases, activity),
			match:  Matched,
			label:  IncreasesAbundance,
			rule:   "abundance",
			causal: &Causal{Decrease: true},
		},
		{
			name:   "degradation",
			edge:   edge(oxa, abeta, bel.Increases, degradation),
			match:  Matched,
			label:  Degradates,
			rule:   "degradation",
			causal: &Causal{Increase: true},
		},
		{
			name:  "transcription",
			edge:  edge(gBirc5, birc5, bel.TranscribedTo, nil),
			match: Matched,
			label: Translates,
			rule:  "transcription",
		},
		{
			name:   "promotes translation",
			edge:   edge(ctnnb1, birc5, bel.Increases, nil),
			match:  Matched,
			label:  Translates,
			rule:   "promotesTranslation",
			causal: &Causal{Increase: true},
		},
		{
			name:  "translation",
			edge:  edge(birc5, pBirc5, bel.TranslatedTo, nil),
			match: Matched,
			label: Translates,
			rule:  "translation",
		},
		{
			name:   "plain abundance",
			edge:   edge(oxa, ros, bel.Increases, nil),
			match:  Matched,
			label:  IncreasesAbundance,
			rule:   "abundance",
			causal: &Causal{Increase: true},
		},
		{
			name:   "regulates is both",
			edge:   edge(oxa, ros, bel.Regulates, nil),
			match:  Matched,
			label:  IncreasesAbundance,
			rule:   "abundance",
			causal: &Causal{Increase: true, Decrease: true},
		},
		{
			name:  "has variant is suppressed",
			edge:  edge(bel.NewProtein("HGNC", "MAPT"), pTau, bel.HasVariant, nil),
			match: Suppressed,
		},
		{
			name:  "unknown relation",
			edge:  edge(cdk5, casp8, "bindsTo", nil),
			match: NoMatch,
		},
		{
			name:  "correlation is not causal",
			edge:  edge(cdk5, casp8, bel.Association, nil),
			match: NoMatch,
		},
		{
			name:  "translatedTo with wrong functions",
			edge:  edge(gBirc5, pBirc5, bel.TranslatedTo, nil),
			match: NoMatch,
		},
		{
			name:  "empty edge data fails closed",
			edge:  bel.Edge{Source: bel.Node{}, Target: bel.Node{}},
			match: NoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, match := Classify(tt.edge)
			assert.Equal(t, tt.match, match, match.String())
			if tt.match != Matched {
				return
			}
			assert.Equal(t, tt.label, stmt.Label)
			assert.Equal(t, tt.rule, stmt.Rule)
			assert.Equal(t, tt.causal, stmt.Causal())
			assert.Equal(t, tt.edge.Source.Key(), stmt.Subject.Key())
			assert.Equal(t, tt.edge.Target.Key(), stmt.Object.Key())
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// Phosphorylated object with an activity modifier: both the
	// phosphorylation and activation rules accept it.
	e := edge(cdk5, pTau, bel.Increases, &bel.Modifier{Modifier: bel.Activity})

	stmt, match := Classify(e)
	assert.Equal(t, Matched, match)
	assert.Equal(t, Phosphorylates, stmt.Label)

	reordered := NewClassifier([]Rule{DefaultRules[2], DefaultRules[0]})
	stmt, match = reordered.Classify(e)
	assert.Equal(t, Matched, match)
	assert.Equal(t, Activates, stmt.Label)
}

func TestNewClassifierCopiesRules(t *testing.T) {
	rules := []Rule{DefaultRules[len(DefaultRules)-1]}
	c := NewClassifier(rules)
	rules[0] = Rule{Name: "never", Predicate: func(bel.Edge) bool { return false }}

	_, match := c.Classify(edge(cdk5, pTau, bel.HasVariant, nil))
	assert.Equal(t, Suppressed, match)
}

func TestClassifyNilPredicateIsSkipped(t *testing.T) {
	c := NewClassifier([]Rule{{Name: "broken", Label: "x"}})
	_, match := c.Classify(edge(cdk5, pTau, bel.Increases, nil))
	assert.Equal(t, NoMatch, match)
}
