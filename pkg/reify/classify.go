package reify

import "github.com/belgraph/reifier/pkg/bel"

// Match is the outcome of classifying one edge.
type Match int

const (
	// NoMatch means no rule recognised the edge. Callers should warn.
	NoMatch Match = iota
	// Suppressed means a structural edge was recognised and intentionally
	// produces no statement node.
	Suppressed
	// Matched means the returned Statement is valid.
	Matched
)

func (m Match) String() string {
	switch m {
	case Suppressed:
		return "suppressed"
	case Matched:
		return "matched"
	default:
		return "no match"
	}
}

// Statement is the classification of one edge: the subject and object it
// connects, the semantic label and its polarity. Increase and Decrease are
// only meaningful when Polar is set; regulates yields both.
type Statement struct {
	Subject  bel.Node
	Label    string
	Increase bool
	Decrease bool
	Polar    bool
	Object   bel.Node
	Rule     string
}

// Causal returns the polarity pair, or nil when the rule carries none.
func (s Statement) Causal() *Causal {
	if !s.Polar {
		return nil
	}
	return &Causal{Increase: s.Increase, Decrease: s.Decrease}
}

// Classifier evaluates an ordered rule table. The zero value is not usable;
// use NewClassifier or the package-level Classify.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier over a copy of rules, evaluated in the
// given order.
func NewClassifier(rules []Rule) *Classifier {
	r := make([]Rule, len(rules))
	copy(r, rules)
	return &Classifier{rules: r}
}

var defaultClassifier = NewClassifier(DefaultRules)

// Classify runs the default rule table on e.
func Classify(e bel.Edge) (Statement, Match) {
	return defaultClassifier.Classify(e)
}

// Classify returns the statement produced by the first rule whose predicate
// accepts e. It has no side effects.
func (c *Classifier) Classify(e bel.Edge) (Statement, Match) {
	for _, rule := range c.rules {
		if rule.Predicate == nil || !rule.Predicate(e) {
			continue
		}
		if rule.Suppress {
			return Statement{Rule: rule.Name}, Suppressed
		}
		return Statement{
			Subject:  e.Source,
			Label:    rule.Label,
			Increase: isIncrease(e.Data.Relation),
			Decrease: isDecrease(e.Data.Relation),
			Polar:    rule.Polar,
			Object:   e.Target,
			Rule:     rule.Name,
		}, Matched
	}
	return Statement{}, NoMatch
}

func isIncrease(relation string) bool {
	return bel.IsCausalIncrease(relation) || relation == bel.Regulates
}

func isDecrease(relation string) bool {
	return bel.IsCausalDecrease(relation) || relation == bel.Regulates
}
