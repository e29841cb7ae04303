package schema

import "errors"

// Builder errors are fatal to opening a form: the engine refuses to present a
// field it cannot represent. All are surfaced wrapped with the offending
// property name, so errors.Is works against the sentinels.
var (
	// ErrUnsupportedType marks a property whose type has no field-kind
	// mapping.
	ErrUnsupportedType = errors.New("schema: unsupported property type")

	// ErrInvalidDefault marks a default literal that cannot be coerced to
	// the field kind or violates the field's own constraints.
	ErrInvalidDefault = errors.New("schema: invalid default")

	// ErrInvalidConstraint marks internally inconsistent constraints, such
	// as min above max or an empty enum choice set.
	ErrInvalidConstraint = errors.New("schema: invalid constraint")
)
