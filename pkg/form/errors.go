package form

import (
	"fmt"
	"strings"
)

// FieldError ties a validation failure to the field it happened on.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("form: field %q: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// SubmitBlockedError reports a refused submission and names every required
// field that is empty or invalid, in field order.
type SubmitBlockedError struct {
	Fields []string
}

func (e *SubmitBlockedError) Error() string {
	return fmt.Sprintf("form: submit blocked by fields: %s", strings.Join(e.Fields, ", "))
}
