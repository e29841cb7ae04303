package form

import (
	"github.com/goliatone/go-elicit/pkg/schema"
	"github.com/goliatone/go-elicit/pkg/validate"
)

// EnumEditor selects one choice from a closed set. Space cycles forward
// through the choices, backspace clears the selection.
type EnumEditor struct {
	spec    schema.FieldSpec
	index   int
	touched bool
}

func newEnumEditor(spec schema.FieldSpec) *EnumEditor {
	ed := &EnumEditor{spec: spec}
	ed.seed()
	return ed
}

func (e *EnumEditor) seed() {
	e.index = -1
	if s, ok := e.spec.Default.(string); ok {
		for i, choice := range e.spec.Constraints.Choices {
			if choice == s {
				e.index = i
				break
			}
		}
	}
}

func (e *EnumEditor) Spec() schema.FieldSpec { return e.spec }

// Select picks the choice at i directly; out-of-range indexes clear the
// selection.
func (e *EnumEditor) Select(i int) {
	if i < 0 || i >= len(e.spec.Constraints.Choices) {
		e.index = -1
	} else {
		e.index = i
	}
	e.touched = true
}

func (e *EnumEditor) Input(ev Event) {
	switch ev.Kind {
	case EventRune:
		if ev.Rune != ' ' || len(e.spec.Constraints.Choices) == 0 {
			return
		}
		e.index = (e.index + 1) % len(e.spec.Constraints.Choices)
		e.touched = true
	case EventBackspace:
		e.index = -1
		e.touched = true
	}
}

func (e *EnumEditor) Text() string {
	if e.index < 0 {
		return ""
	}
	return e.spec.Constraints.Choices[e.index]
}

// Label returns the display label for the current selection, falling back
// to the raw choice.
func (e *EnumEditor) Label() string {
	if e.index < 0 {
		return ""
	}
	if e.index < len(e.spec.ChoiceLabels) {
		return e.spec.ChoiceLabels[e.index]
	}
	return e.spec.Constraints.Choices[e.index]
}

func (e *EnumEditor) Validate() error {
	if e.index < 0 {
		if e.spec.Required {
			return validate.Required()
		}
		return nil
	}
	return nil
}

func (e *EnumEditor) Value() (any, bool) {
	if e.index < 0 {
		return nil, false
	}
	return e.spec.Constraints.Choices[e.index], true
}

func (e *EnumEditor) Touched() bool { return e.touched }

func (e *EnumEditor) Reset() {
	e.seed()
	e.touched = false
}
