// Package schema normalizes externally supplied JSON-Schema-like property
// sets into the closed set of field kinds the form engine can edit. The
// builder is the single translation point from open-ended schema text to that
// closed set.
package schema

import "github.com/goliatone/go-elicit/pkg/validate"

// Kind is the simplified enum for form-friendly field kinds.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindEnum    Kind = "enum"
)

// FieldSpec is the immutable description of one schema property as an
// editable field. Instances come out of Build and are never mutated by the
// form engine.
type FieldSpec struct {
	Name        string
	Kind        Kind
	Required    bool
	Title       string
	Description string

	// Default is nil when absent; otherwise string, int64, float64, bool,
	// or one of the enum choices, matching Kind. Build guarantees a present
	// default already satisfies Constraints.
	Default any

	Constraints validate.Constraints

	// Multiline applies to String fields only and allows embedded line
	// breaks in the edit buffer.
	Multiline bool

	// ChoiceLabels, when non-nil, aligns one display label per entry in
	// Constraints.Choices.
	ChoiceLabels []string
}

// HasDefault reports whether the spec carries a default value.
func (s FieldSpec) HasDefault() bool { return s.Default != nil }

// Label returns the display title, falling back to the property name.
func (s FieldSpec) Label() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}
