package bel

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Entity functions.
const (
	Gene              = "Gene"
	RNA               = "RNA"
	MiRNA             = "miRNA"
	Protein           = "Protein"
	Abundance         = "Abundance"
	Complex           = "Complex"
	Composite         = "Composite"
	BiologicalProcess = "BiologicalProcess"
	Pathology         = "Pathology"
	Reaction          = "Reaction"
)

var functionTags = map[string]string{
	Gene:              "g",
	RNA:               "r",
	MiRNA:             "m",
	Protein:           "p",
	Abundance:         "a",
	Complex:           "complex",
	Composite:         "composite",
	BiologicalProcess: "bp",
	Pathology:         "path",
	Reaction:          "rxn",
}

// Variant kinds.
const (
	ProteinModification = "pmod"
	GeneModification    = "gmod"
	HGVS                = "hgvs"
	Fragment            = "frag"
)

// Node is a biological entity. Its identity is the function together with
// the namespace, name and variants; see Key.
//
// A node may carry variants such as post-translational modifications,
// e.g. a phosphorylated protein is a Protein with a pmod(Ph) variant.
type Node struct {
	Function   string    `json:"function"`
	Namespace  string    `json:"namespace,omitempty"`
	Name       string    `json:"name,omitempty"`
	Identifier string    `json:"identifier,omitempty"`
	Variants   []Variant `json:"variants,omitempty"`
}

// Variant is a modification attached to a node. For protein modifications
// Name holds the modification code ("Ph", "Hy", ...), Code the amino acid
// and Position its location.
type Variant struct {
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Position int    `json:"position,omitempty"`
}

// PMod returns a protein modification variant.
func PMod(name string) Variant {
	return Variant{Kind: ProteinModification, Name: name}
}

// NewProtein, NewRNA, NewGene and NewAbundance build the common entity
// kinds.
func NewProtein(namespace, name string, variants ...Variant) Node {
	return Node{Function: Protein, Namespace: namespace, Name: name, Variants: variants}
}

func NewRNA(namespace, name string, variants ...Variant) Node {
	return Node{Function: RNA, Namespace: namespace, Name: name, Variants: variants}
}

func NewGene(namespace, name string, variants ...Variant) Node {
	return Node{Function: Gene, Namespace: namespace, Name: name, Variants: variants}
}

func NewAbundance(namespace, name string) Node {
	return Node{Function: Abundance, Namespace: namespace, Name: name}
}

var plainName = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

func quote(s string) string {
	if plainName.MatchString(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Key returns the canonical identity of the node, for example
// p(HGNC:MAPT, pmod(Ph)).
func (n Node) Key() string {
	tag, ok := functionTags[n.Function]
	if !ok {
		tag = n.Function
	}

	name := n.Name
	if name == "" {
		name = n.Identifier
	}

	var b strings.Builder
	b.WriteString(tag)
	b.WriteByte('(')
	if n.Namespace != "" {
		b.WriteString(n.Namespace)
		b.WriteByte(':')
	}
	b.WriteString(quote(name))
	for _, v := range n.Variants {
		b.WriteString(", ")
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (n Node) String() string { return n.Key() }

// HasVariant reports whether the node carries a variant of the given kind
// and name.
func (n Node) HasVariant(kind, name string) bool {
	for _, v := range n.Variants {
		if v.Kind == kind && v.Name == name {
			return true
		}
	}
	return false
}

// HasProteinModification reports whether the node carries pmod(name).
func (n Node) HasProteinModification(name string) bool {
	return n.HasVariant(ProteinModification, name)
}

// WithFunction returns a copy of the node with a different function and no
// variants. Used to derive the gene or RNA behind a protein.
func (n Node) WithFunction(function string) Node {
	return Node{
		Function:   function,
		Namespace:  n.Namespace,
		Name:       n.Name,
		Identifier: n.Identifier,
	}
}

func (v Variant) String() string {
	switch v.Kind {
	case ProteinModification, GeneModification:
		parts := []string{quote(v.Name)}
		if v.Code != "" {
			parts = append(parts, v.Code)
			if v.Position > 0 {
				parts = append(parts, fmt.Sprint(v.Position))
			}
		}
		return fmt.Sprintf("%s(%s)", v.Kind, strings.Join(parts, ", "))
	case HGVS:
		return fmt.Sprintf("var(%q)", v.Name)
	case Fragment:
		return fmt.Sprintf("frag(%q)", v.Name)
	default:
		return fmt.Sprintf("%s(%s)", v.Kind, quote(v.Name))
	}
}

// Modifier qualifies one endpoint of a statement: the activity, degradation
// or translocation of the entity rather than its abundance.
type Modifier struct {
	Modifier string            `json:"modifier"`
	Effect   map[string]string `json:"effect,omitempty"`
}

// Citation identifies where a statement was curated from.
type Citation struct {
	Type      string `json:"type"`
	Reference string `json:"reference"`
	Name      string `json:"name,omitempty"`
	Date      string `json:"date,omitempty"`
}

// EdgeData is the content of one statement: its relation, the optional
// endpoint modifiers and the provenance.
type EdgeData struct {
	Relation    string            `json:"relation"`
	Subject     *Modifier         `json:"subject,omitempty"`
	Object      *Modifier         `json:"object,omitempty"`
	Citation    *Citation         `json:"citation,omitempty"`
	Evidence    string            `json:"evidence,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// ObjectModifier returns the modifier name on the object side, or "" when
// there is none.
func (d EdgeData) ObjectModifier() string {
	if d.Object == nil {
		return ""
	}
	return d.Object.Modifier
}

// SubjectModifier returns the modifier name on the subject side, or "".
func (d EdgeData) SubjectModifier() string {
	if d.Subject == nil {
		return ""
	}
	return d.Subject.Modifier
}

// Annotation returns the value of an annotation and whether it is set.
func (d EdgeData) Annotation(key string) (string, bool) {
	v, ok := d.Annotations[key]
	return v, ok
}

// Equal compares relation, modifiers and provenance.
func (d EdgeData) Equal(o EdgeData) bool {
	return d.Relation == o.Relation &&
		d.Evidence == o.Evidence &&
		modifierEqual(d.Subject, o.Subject) &&
		modifierEqual(d.Object, o.Object) &&
		citationEqual(d.Citation, o.Citation) &&
		maps.Equal(d.Annotations, o.Annotations)
}

// Clone returns a deep copy.
func (d EdgeData) Clone() EdgeData {
	c := d
	if d.Subject != nil {
		s := *d.Subject
		s.Effect = maps.Clone(d.Subject.Effect)
		c.Subject = &s
	}
	if d.Object != nil {
		o := *d.Object
		o.Effect = maps.Clone(d.Object.Effect)
		c.Object = &o
	}
	if d.Citation != nil {
		ct := *d.Citation
		c.Citation = &ct
	}
	c.Annotations = maps.Clone(d.Annotations)
	return c
}

func modifierEqual(a, b *Modifier) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Modifier == b.Modifier && maps.Equal(a.Effect, b.Effect)
}

func citationEqual(a, b *Citation) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	c := n
	c.Variants = slices.Clone(n.Variants)
	return c
}

// Edge is one statement of a graph as returned by Graph.Edges.
type Edge struct {
	Source Node     `json:"source"`
	Target Node     `json:"target"`
	Key    int      `json:"key"`
	Data   EdgeData `json:"data"`
}

// Qualified reports whether the edge carries provenance, i.e. was not added
// as an unqualified structural or inferred edge.
func (e Edge) Qualified() bool { return e.Key >= 0 }
