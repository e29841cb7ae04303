package form

import (
	"strconv"

	"github.com/goliatone/go-elicit/pkg/schema"
)

// Editor holds the mutable edit state for a single field. Implementations
// are not safe for concurrent use; the controller serializes access.
type Editor interface {
	// Spec returns the immutable field description the editor was built
	// from.
	Spec() schema.FieldSpec

	// Input applies a character or deletion event. Navigation and
	// lifecycle events never reach an editor.
	Input(ev Event)

	// Text returns the current display text of the edit buffer.
	Text() string

	// Validate checks the current buffer. An empty optional field is
	// valid; an empty required field is a required violation.
	Validate() error

	// Value returns the typed value and whether one is present. Invalid
	// or empty buffers yield absent, so nothing partial ever reaches a
	// result.
	Value() (any, bool)

	// Touched reports whether the user has modified the buffer since
	// construction or the last Reset.
	Touched() bool

	// Reset restores the editor to its initial state, re-seeding the
	// declared default.
	Reset()
}

// NewEditor builds the editor matching the spec's kind. Defaults are seeded
// into the buffer at construction for every kind, so an untouched form
// already displays and submits its declared defaults.
func NewEditor(spec schema.FieldSpec) Editor {
	switch spec.Kind {
	case schema.KindInteger, schema.KindNumber:
		return newNumberEditor(spec)
	case schema.KindBoolean:
		return newBoolEditor(spec)
	case schema.KindEnum:
		return newEnumEditor(spec)
	default:
		return newTextEditor(spec)
	}
}

// defaultText renders a typed default as edit-buffer text.
func defaultText(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	}
	return ""
}
