package reify

import "github.com/belgraph/reifier/pkg/bel"

// Labels of reified statement nodes and of the two links that attach them.
const (
	Phosphorylates     = "phosphorylates"
	Hydroxylates       = "hydroxylates"
	Activates          = "activates"
	Degradates         = "degradates"
	Translates         = "translates"
	IncreasesAbundance = "abundance"
	SubjectLabel       = "subject"
	ObjectLabel        = "object"
)

// Predicate tests one source edge. Predicates must not panic on missing
// attributes: an absent modifier, function or variant list simply does not
// match.
type Predicate func(e bel.Edge) bool

// Rule recognises one statement pattern. A rule with Suppress set matches
// structural edges that are deliberately left out of the reified graph.
// Polar rules attach the (increase, decrease) pair to the reified node.
type Rule struct {
	Name      string
	Label     string
	Polar     bool
	Suppress  bool
	Predicate Predicate
}

func causalTo(variant string) Predicate {
	return func(e bel.Edge) bool {
		return bel.IsCausal(e.Data.Relation) && e.Target.HasProteinModification(variant)
	}
}

func increasesModified(modifier string) Predicate {
	return func(e bel.Edge) bool {
		return bel.IsCausalIncrease(e.Data.Relation) && e.Data.ObjectModifier() == modifier
	}
}

func transcription(e bel.Edge) bool {
	return e.Data.Relation == bel.TranscribedTo &&
		e.Source.Function == bel.Gene &&
		e.Target.Function == bel.RNA
}

func promotesTranslation(e bel.Edge) bool {
	return bel.IsCausal(e.Data.Relation) && e.Target.Function == bel.RNA
}

func translation(e bel.Edge) bool {
	return e.Data.Relation == bel.TranslatedTo &&
		e.Source.Function == bel.RNA &&
		e.Target.Function == bel.Protein
}

func abundance(e bel.Edge) bool {
	return bel.IsCausal(e.Data.Relation)
}

func hasVariant(e bel.Edge) bool {
	return e.Data.Relation == bel.HasVariant
}

// DefaultRules is the rule table in priority order. The first matching
// rule classifies an edge, so a phosphorylated object is reported as
// phosphorylation even though the plain abundance rule also matches.
var DefaultRules = []Rule{
	{Name: "phosphorylation", Label: Phosphorylates, Polar: true, Predicate: causalTo("Ph")},
	{Name: "hydroxylation", Label: Hydroxylates, Polar: true, Predicate: causalTo("Hy")},
	{Name: "activation", Label: Activates, Polar: true, Predicate: increasesModified(bel.Activity)},
	{Name: "degradation", Label: Degradates, Polar: true, Predicate: increasesModified(bel.Degradation)},
	{Name: "transcription", Label: Translates, Predicate: transcription},
	{Name: "promotesTranslation", Label: Translates, Polar: true, Predicate: promotesTranslation},
	{Name: "translation", Label: Translates, Predicate: translation},
	{Name: "abundance", Label: IncreasesAbundance, Polar: true, Predicate: abundance},
	{Name: "hasVariant", Suppress: true, Predicate: hasVariant},
}
