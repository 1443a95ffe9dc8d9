package nodelink

import (
	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/reify"
)

// ReifiedDocument is the node-link form of a reified graph. Entity ids are
// node keys (strings); statement ids are integers.
type ReifiedDocument struct {
	Directed bool           `json:"directed"`
	Graph    Meta           `json:"graph"`
	Nodes    []ReifiedNode  `json:"nodes"`
	Links    []ReifiedLink  `json:"links"`
	Report   *ReportSummary `json:"report,omitempty"`
}

type ReifiedNode struct {
	ID     reify.NodeKey `json:"id"`
	Entity *bel.Node     `json:"entity,omitempty"`
	Label  string        `json:"label,omitempty"`
	// Causal is [increase, decrease], absent for non-causal statements.
	Causal []bool `json:"causal,omitempty"`
}

type ReifiedLink struct {
	Source reify.NodeKey `json:"source"`
	Target reify.NodeKey `json:"target"`
	Label  string        `json:"label"`
}

// ReportSummary carries the counts of a reify.Report without the unmatched
// edges themselves.
type ReportSummary struct {
	Reified    int            `json:"reified"`
	Suppressed int            `json:"suppressed"`
	Unmatched  int            `json:"unmatched"`
	Rules      map[string]int `json:"rules"`
}

func Summarize(r reify.Report) *ReportSummary {
	return &ReportSummary{
		Reified:    r.Reified,
		Suppressed: r.Suppressed,
		Unmatched:  len(r.Unmatched),
		Rules:      r.Rules,
	}
}

// FromReified converts a reified graph. meta is copied from the source
// graph by callers.
func FromReified(g *reify.Graph, meta Meta) ReifiedDocument {
	doc := ReifiedDocument{
		Directed: true,
		Graph:    meta,
		Nodes:    []ReifiedNode{},
		Links:    []ReifiedLink{},
	}
	for _, n := range g.Nodes() {
		rn := ReifiedNode{ID: n.Key, Entity: n.Entity, Label: n.Label}
		if n.Causal != nil {
			rn.Causal = []bool{n.Causal.Increase, n.Causal.Decrease}
		}
		doc.Nodes = append(doc.Nodes, rn)
	}
	for _, l := range g.Edges() {
		doc.Links = append(doc.Links, ReifiedLink{Source: l.From, Target: l.To, Label: l.Label})
	}
	return doc
}

// MarshalReified encodes a reified graph and, when report is not nil, its
// counts.
func MarshalReified(g *reify.Graph, meta Meta, report *reify.Report, pretty bool) ([]byte, error) {
	doc := FromReified(g, meta)
	if report != nil {
		doc.Report = Summarize(*report)
	}
	return marshal(doc, pretty)
}
