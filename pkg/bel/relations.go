package bel

// Relation labels carried by statement edges.
const (
	Increases           = "increases"
	Decreases           = "decreases"
	DirectlyIncreases   = "directlyIncreases"
	DirectlyDecreases   = "directlyDecreases"
	Regulates           = "regulates"
	CausesNoChange      = "causesNoChange"
	Association         = "association"
	PositiveCorrelation = "positiveCorrelation"
	NegativeCorrelation = "negativeCorrelation"

	HasVariant    = "hasVariant"
	HasMember     = "hasMember"
	HasComponent  = "hasComponent"
	HasReactant   = "hasReactant"
	HasProduct    = "hasProduct"
	TranscribedTo = "transcribedTo"
	TranslatedTo  = "translatedTo"
	IsA           = "isA"
	PartOf        = "partOf"
	EquivalentTo  = "equivalentTo"
	Orthologous   = "orthologous"

	IsVariantOf     = "isVariantOf"
	IsComponentOf   = "isComponentOf"
	IsReactantOf    = "isReactantOf"
	IsProductOf     = "isProductOf"
	TranscribedFrom = "transcribedFrom"
	TranslatedFrom  = "translatedFrom"
)

// Modifier names attached to an edge endpoint.
const (
	Activity      = "activity"
	Degradation   = "degradation"
	Translocation = "translocation"
)

type relationSet map[string]struct{}

func newRelationSet(relations ...string) relationSet {
	s := make(relationSet, len(relations))
	for _, r := range relations {
		s[r] = struct{}{}
	}
	return s
}

func (s relationSet) has(relation string) bool {
	_, ok := s[relation]
	return ok
}

var (
	causalIncrease = newRelationSet(Increases, DirectlyIncreases)
	causalDecrease = newRelationSet(Decreases, DirectlyDecreases)
	causal         = newRelationSet(Increases, DirectlyIncreases, Decreases, DirectlyDecreases, Regulates)
	correlative    = newRelationSet(Association, PositiveCorrelation, NegativeCorrelation)
	structural     = newRelationSet(
		HasVariant, HasMember, HasComponent, HasReactant, HasProduct,
		TranscribedTo, TranslatedTo, IsA, PartOf, EquivalentTo, Orthologous,
	)
)

// IsCausal reports whether relation is one of the causal relations,
// regulates included.
func IsCausal(relation string) bool { return causal.has(relation) }

// IsCausalIncrease reports whether relation is increases or directlyIncreases.
func IsCausalIncrease(relation string) bool { return causalIncrease.has(relation) }

// IsCausalDecrease reports whether relation is decreases or directlyDecreases.
func IsCausalDecrease(relation string) bool { return causalDecrease.has(relation) }

// IsCorrelative reports whether relation is an undirected correlation.
func IsCorrelative(relation string) bool { return correlative.has(relation) }

// IsStructural reports whether relation describes composition or the
// central dogma rather than a causal effect.
func IsStructural(relation string) bool { return structural.has(relation) }

// Inverse maps a structural relation to the relation that reads the same
// statement from object to subject.
var Inverse = map[string]string{
	HasProduct:    IsProductOf,
	HasReactant:   IsReactantOf,
	HasVariant:    IsVariantOf,
	HasComponent:  IsComponentOf,
	TranscribedTo: TranscribedFrom,
	TranslatedTo:  TranslatedFrom,
}

// unqualified lists the relations stored without provenance. Each one owns
// a fixed negative edge key, so a node pair holds at most one of each.
var unqualified = []string{
	HasReactant,
	HasProduct,
	HasComponent,
	HasVariant,
	TranscribedTo,
	TranslatedTo,
	IsA,
	EquivalentTo,
	HasMember,
	Orthologous,
	IsVariantOf,
	IsComponentOf,
	IsReactantOf,
	IsProductOf,
	TranscribedFrom,
	TranslatedFrom,
	Association,
	PositiveCorrelation,
	NegativeCorrelation,
}

// UnqualifiedKey returns the reserved edge key for an unqualified relation.
// The second result is false when relation has no reserved key.
func UnqualifiedKey(relation string) (int, bool) {
	for i, r := range unqualified {
		if r == relation {
			return -1 - i, true
		}
	}
	return 0, false
}

// UnqualifiedRelation is the inverse of UnqualifiedKey.
func UnqualifiedRelation(key int) (string, bool) {
	i := -1 - key
	if i < 0 || i >= len(unqualified) {
		return "", false
	}
	return unqualified[i], true
}
