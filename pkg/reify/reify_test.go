package reify

import (
	"testing"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type warning struct {
	message string
	keyvals []any
}

// recorder captures warnings emitted through the logger package.
type recorder struct {
	warnings []warning
}

func (r *recorder) Log(string, ...any)   {}
func (r *recorder) Debug(string, ...any) {}
func (r *recorder) Info(string, ...any)  {}
func (r *recorder) Error(string, ...any) {}
func (r *recorder) Fatal(string, ...any) {}
func (r *recorder) Warn(m string, kv ...any) {
	r.warnings = append(r.warnings, warning{m, kv})
}

func capture(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{}
	logger.Init(r)
	t.Cleanup(logger.Reset)
	return r
}

func evidence() bel.EdgeData {
	return bel.EdgeData{
		Citation: &bel.Citation{Type: "PubMed", Reference: "26719345"},
		Evidence: "10.1093/jnci/djv394",
	}
}

func TestReifyPhosphorylation(t *testing.T) {
	src := bel.NewGraph()
	data := evidence()
	data.Subject = &bel.Modifier{Modifier: bel.Activity, Effect: map[string]string{"name": "kin"}}
	src.AddDirectlyIncreases(cdk5, pTau, data)

	g := Reify(src)

	require.Equal(t, 3, g.NumberOfNodes())
	require.Equal(t, 2, g.NumberOfEdges())

	n, ok := g.Node(StatementKey(0))
	require.True(t, ok)
	assert.Equal(t, Phosphorylates, n.Label)
	assert.Equal(t, &Causal{Increase: true, Decrease: false}, n.Causal)

	assert.Equal(t, []Link{{From: EntityKey(cdk5), To: StatementKey(0), Label: SubjectLabel}}, g.InEdges(StatementKey(0)))
	assert.Equal(t, []Link{{From: StatementKey(0), To: EntityKey(pTau), Label: ObjectLabel}}, g.OutEdges(StatementKey(0)))

	object, ok := g.Node(EntityKey(pTau))
	require.True(t, ok)
	assert.True(t, object.Entity.HasProteinModification("Ph"))
}

func TestReifyTwoKinasesGetDistinctNodes(t *testing.T) {
	src := bel.NewGraph()
	for _, kinase := range []bel.Node{cdk5, gsk3b} {
		src.AddDirectlyIncreases(kinase, pTau, evidence())
	}

	g := Reify(src)

	stmts := g.StatementNodes()
	require.Len(t, stmts, 2)
	assert.Equal(t, 0, stmts[0].Key.ID)
	assert.Equal(t, 1, stmts[1].Key.ID)

	assert.Equal(t, EntityKey(cdk5), g.InEdges(StatementKey(0))[0].From)
	assert.Equal(t, EntityKey(gsk3b), g.InEdges(StatementKey(1))[0].From)
	assert.Equal(t, 4, g.NumberOfEdges())
}

func TestReifyParallelEdgesAreNotMerged(t *testing.T) {
	src := bel.NewGraph()
	src.AddIncreases(oxa, ros, evidence())
	other := evidence()
	other.Evidence = "another study"
	src.AddIncreases(oxa, ros, other)

	g := Reify(src)
	assert.Len(t, g.StatementNodes(), 2)
}

func TestReifyDegradation(t *testing.T) {
	src := bel.NewGraph()
	data := evidence()
	data.Object = &bel.Modifier{Modifier: bel.Degradation}
	src.AddIncreases(bel.NewAbundance("MeSH", "Microglia"), abeta, data)

	g := Reify(src)

	stmts := g.StatementNodes()
	require.Len(t, stmts, 1)
	assert.Equal(t, Degradates, stmts[0].Label)
	assert.Equal(t, &Causal{Increase: true}, stmts[0].Causal)
}

func TestReifyHasVariantIsSilent(t *testing.T) {
	rec := capture(t)
	src := bel.NewGraph()
	src.AddUnqualifiedEdge(bel.NewProtein("HGNC", "MAPT"), pTau, bel.HasVariant)

	g, report := ReifyWithReport(src)

	assert.Equal(t, 0, g.NumberOfNodes())
	assert.Equal(t, 1, report.Suppressed)
	assert.Empty(t, report.Unmatched)
	assert.Empty(t, rec.warnings)
}

func TestReifyUnmatchedWarns(t *testing.T) {
	rec := capture(t)
	src := bel.NewGraph()
	src.AddEdge(cdk5, casp8, bel.EdgeData{Relation: "bindsTo"})

	g, report := ReifyWithReport(src)

	assert.Equal(t, 0, g.NumberOfNodes())
	require.Len(t, report.Unmatched, 1)
	require.Len(t, rec.warnings, 1)
	assert.Contains(t, rec.warnings[0].keyvals, cdk5.Key())
	assert.Contains(t, rec.warnings[0].keyvals, casp8.Key())
}

func TestReifyCountsAndFanOut(t *testing.T) {
	rec := capture(t)
	src := bel.NewGraph()
	src.AddIncreases(oxa, ros, evidence())
	src.AddDirectlyIncreases(ros, pTau, evidence())
	src.AddEdge(cdk5, casp8, bel.EdgeData{Relation: bel.DirectlyIncreases, Object: &bel.Modifier{Modifier: bel.Activity}})
	src.AddUnqualifiedEdge(bel.NewProtein("HGNC", "MAPT"), pTau, bel.HasVariant)
	src.AddEdge(cdk5, gsk3b, bel.EdgeData{Relation: bel.Association})
	src.AddUnqualifiedEdge(gBirc5, birc5, bel.TranscribedTo)
	src.AddUnqualifiedEdge(birc5, pBirc5, bel.TranslatedTo)
	src.AddEdge(oxa, oxa, bel.EdgeData{Relation: bel.Regulates})

	g, report := ReifyWithReport(src)

	total := src.NumberOfEdges()
	assert.Equal(t, total-len(report.Unmatched)-report.Suppressed, len(g.StatementNodes()))
	assert.Equal(t, report.Reified, len(g.StatementNodes()))
	assert.Len(t, rec.warnings, 1)
	assert.Equal(t, 2*report.Reified, g.NumberOfEdges())

	for _, n := range g.StatementNodes() {
		in, out := g.InEdges(n.Key), g.OutEdges(n.Key)
		require.Len(t, in, 1, n.Key.String())
		require.Len(t, out, 1, n.Key.String())
		assert.Equal(t, SubjectLabel, in[0].Label)
		assert.Equal(t, ObjectLabel, out[0].Label)
		assert.False(t, in[0].From.IsStatement())
		assert.False(t, out[0].To.IsStatement())
	}

	assert.Equal(t, 2, report.Rules["abundance"])
	assert.Equal(t, 1, report.Rules["phosphorylation"])
	assert.Equal(t, 1, report.Rules["activation"])
	assert.Equal(t, 1, report.Rules["transcription"])
	assert.Equal(t, 1, report.Rules["translation"])
}

func TestReifySelfLoop(t *testing.T) {
	src := bel.NewGraph()
	src.AddEdge(oxa, oxa, bel.EdgeData{Relation: bel.Regulates})

	g := Reify(src)

	require.Equal(t, 2, g.NumberOfNodes())
	assert.Equal(t, []Triple{{
		Subject: oxa.Key(),
		Label:   IncreasesAbundance,
		Causal:  &Causal{Increase: true, Decrease: true},
		Object:  oxa.Key(),
	}}, g.Triples())
}

func TestReifyIsDeterministic(t *testing.T) {
	src := bel.NewGraph()
	src.AddIncreases(oxa, ros, evidence())
	src.AddDirectlyIncreases(ros, pTau, evidence())
	src.AddDirectlyDecreases(gsk3b, pTau, evidence())
	src.AddIncreases(ctnnb1, birc5, evidence())

	first, second := Reify(src), Reify(src)
	assert.Equal(t, first.Triples(), second.Triples())
	assert.Len(t, first.Triples(), 4)
}

func TestReifyAbundanceThenPhosphorylation(t *testing.T) {
	src := bel.NewGraph()
	src.AddIncreases(oxa, ros, evidence())
	src.AddDirectlyIncreases(ros, pTau, evidence())

	g := Reify(src)

	want := []Triple{
		{Subject: oxa.Key(), Label: IncreasesAbundance, Causal: &Causal{Increase: true}, Object: ros.Key()},
		{Subject: ros.Key(), Label: Phosphorylates, Causal: &Causal{Increase: true}, Object: pTau.Key()},
	}
	assert.ElementsMatch(t, want, g.Triples())
}

type countingBuilder struct {
	entities, statements, edges int
}

func (b *countingBuilder) AddEntity(n bel.Node) NodeKey {
	b.entities++
	return EntityKey(n)
}

func (b *countingBuilder) AddStatementNode(id int, _ string, _ *Causal) NodeKey {
	b.statements++
	return StatementKey(id)
}

func (b *countingBuilder) AddEdge(NodeKey, NodeKey, string) { b.edges++ }

func TestReifyIntoCustomBuilder(t *testing.T) {
	src := bel.NewGraph()
	src.AddIncreases(oxa, ros, evidence())
	src.AddIncreases(ros, oxa, evidence())

	b := &countingBuilder{}
	report := NewClassifier(DefaultRules).ReifyInto(src, b)

	assert.Equal(t, 2, report.Reified)
	assert.Equal(t, 2, b.statements)
	assert.Equal(t, 4, b.edges)
}
