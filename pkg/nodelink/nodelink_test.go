package nodelink

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/comparison"
	"github.com/belgraph/reifier/pkg/reify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cdk5 = bel.NewProtein("HGNC", "CDK5")
	mapt = bel.NewProtein("HGNC", "MAPT")
	pTau = bel.NewProtein("HGNC", "MAPT", bel.PMod("Ph"))
)

func fixture() *bel.Graph {
	g := bel.NewGraph()
	g.Name = "tau"
	g.Version = "1.0.0"
	g.AddDirectlyIncreases(cdk5, pTau, bel.EdgeData{
		Citation:    &bel.Citation{Type: "PubMed", Reference: "123"},
		Evidence:    "CDK5 phosphorylates tau",
		Annotations: map[string]string{"Species": "9606"},
	})
	g.AddUnqualifiedEdge(mapt, pTau, bel.HasVariant)
	return g
}

func TestRoundTrip(t *testing.T) {
	g := fixture()

	data, err := Marshal(g, false)
	require.NoError(t, err)

	h, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, "tau", h.Name)
	assert.Equal(t, "1.0.0", h.Version)
	assert.True(t, comparison.ProvenanceEqual(g, h))

	hv, _ := bel.UnqualifiedKey(bel.HasVariant)
	assert.True(t, h.HasEdge(mapt.Key(), pTau.Key(), hv))
}

func TestToDocumentIndexes(t *testing.T) {
	doc := ToDocument(fixture())

	require.Len(t, doc.Nodes, 3)
	require.Len(t, doc.Links, 2)
	assert.True(t, doc.Directed)
	assert.True(t, doc.Multigraph)
	assert.Equal(t, cdk5.Key(), doc.Nodes[doc.Links[0].Source].ID)
	assert.Equal(t, pTau.Key(), doc.Nodes[doc.Links[0].Target].ID)
	assert.Equal(t, bel.DirectlyIncreases, doc.Links[0].Relation)
}

func TestUnmarshalRepairsInput(t *testing.T) {
	broken := `{
		"graph": {"name": "hand edited",},
		"nodes": [
			{"function": "Protein", "namespace": "HGNC", "name": "AKT1"},
			{"function": "Abundance", "namespace": "CHEBI", "name": "oxaliplatin"},
		],
		"links": [{"source": 1, "target": 0, "key": 0, "relation": "decreases"},],
	}`

	g, err := Unmarshal([]byte(broken))
	require.NoError(t, err)
	assert.Equal(t, "hand edited", g.Name)
	assert.Equal(t, 1, g.NumberOfEdges())
}

func TestUnmarshalDoubleEncoded(t *testing.T) {
	data, err := Marshal(fixture(), false)
	require.NoError(t, err)
	wrapped, err := json.Marshal(string(data))
	require.NoError(t, err)

	g, err := Unmarshal(wrapped)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumberOfEdges())
}

func TestUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing function", `{"nodes": [{"name": "AKT1"}], "links": []}`},
		{"link out of range", `{"nodes": [{"function": "Protein", "name": "AKT1"}], "links": [{"source": 0, "target": 3, "relation": "increases"}]}`},
		{"missing relation", `{"nodes": [{"function": "Protein", "name": "AKT1"}], "links": [{"source": 0, "target": 0}]}`},
		{"unknown unqualified key", `{"nodes": [{"function": "Protein", "name": "AKT1"}], "links": [{"source": 0, "target": 0, "key": -500, "relation": "isA"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGraph), err.Error())
		})
	}
}

func TestFromReified(t *testing.T) {
	src := fixture()
	g, report := reify.ReifyWithReport(src)

	data, err := MarshalReified(g, Meta{Name: src.Name}, &report, false)
	require.NoError(t, err)

	var doc ReifiedDocument
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Nodes, 3)
	require.Len(t, doc.Links, 2)
	require.NotNil(t, doc.Report)
	assert.Equal(t, 1, doc.Report.Reified)
	assert.Equal(t, 1, doc.Report.Suppressed)

	var stmt *ReifiedNode
	for i := range doc.Nodes {
		if doc.Nodes[i].ID.IsStatement() {
			stmt = &doc.Nodes[i]
		}
	}
	require.NotNil(t, stmt)
	assert.Equal(t, 0, stmt.ID.ID)
	assert.Equal(t, reify.Phosphorylates, stmt.Label)
	assert.Equal(t, []bool{true, false}, stmt.Causal)

	assert.Contains(t, string(data), `"source":"p(HGNC:CDK5)","target":0,"label":"subject"`)
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"links"`)
	assert.Contains(t, string(data), `"relation"`)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tau.json")

	data, err := Marshal(fixture(), true)
	require.NoError(t, err)
	require.NoError(t, WriteFile(path, data))

	g, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumberOfNodes())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
