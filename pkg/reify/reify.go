// Package reify turns a statement graph into a graph where every statement
// is an explicit node.
//
// Each classified source edge u -r-> v becomes a statement node n carrying
// a semantic label (phosphorylates, activates, abundance, ...) and, for
// causal rules, the polarity of r. Two links attach it:
//
//	u -subject-> n -object-> v
//
// Statement nodes are numbered from 0 in the order the source edges are
// visited. The numbering is local to one call.
//
// Reify only reads the source graph. Reifying different graphs concurrently
// is safe; mutating a graph while it is being reified is not allowed.
package reify

import (
	"github.com/belgraph/reifier/pkg/bel"
	"github.com/belgraph/reifier/pkg/logger"
)

// Source is the read-only view of a statement graph consumed by Reify.
// *bel.Graph implements it.
type Source interface {
	Edges() []bel.Edge
}

// Report summarises one reification.
type Report struct {
	Reified    int            `json:"reified"`
	Suppressed int            `json:"suppressed"`
	Unmatched  []bel.Edge     `json:"unmatched,omitempty"`
	Rules      map[string]int `json:"rules"`
}

// Reify builds the reified graph of src with the default rules.
func Reify(src Source) *Graph {
	g, _ := ReifyWithReport(src)
	return g
}

// ReifyWithReport is Reify that also returns per-rule counts and the edges
// no rule recognised.
func ReifyWithReport(src Source) (*Graph, Report) {
	g := NewGraph()
	report := defaultClassifier.ReifyInto(src, g)
	return g, report
}

// ReifyInto classifies every edge of src and writes the result to dst.
// Unrecognised edges are logged and skipped; the build never fails.
func (c *Classifier) ReifyInto(src Source, dst Builder) Report {
	report := Report{Rules: make(map[string]int)}
	next := 0

	for _, e := range src.Edges() {
		stmt, match := c.Classify(e)
		switch match {
		case Suppressed:
			report.Suppressed++
			continue
		case NoMatch:
			logger.Warn("[Reify] No rule matched edge",
				"subject", e.Source.Key(),
				"object", e.Target.Key(),
				"relation", e.Data.Relation,
			)
			report.Unmatched = append(report.Unmatched, e)
			continue
		}

		id := next
		next++

		subject := dst.AddEntity(stmt.Subject)
		object := dst.AddEntity(stmt.Object)
		node := dst.AddStatementNode(id, stmt.Label, stmt.Causal())
		dst.AddEdge(subject, node, SubjectLabel)
		dst.AddEdge(node, object, ObjectLabel)

		report.Reified++
		report.Rules[stmt.Rule]++
	}

	logger.Debug("[Reify] Graph reified",
		"reified", report.Reified,
		"suppressed", report.Suppressed,
		"unmatched", len(report.Unmatched),
	)
	return report
}
