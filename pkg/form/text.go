package form

import (
	"strings"

	"github.com/goliatone/go-elicit/pkg/schema"
	"github.com/goliatone/go-elicit/pkg/validate"
)

// TextEditor edits free-form string fields. Line breaks are accepted only
// when the field is multiline.
type TextEditor struct {
	spec    schema.FieldSpec
	buf     []rune
	touched bool
}

func newTextEditor(spec schema.FieldSpec) *TextEditor {
	ed := &TextEditor{spec: spec}
	ed.seed()
	return ed
}

func (t *TextEditor) seed() {
	t.buf = nil
	if s, ok := t.spec.Default.(string); ok {
		t.buf = []rune(s)
	}
}

func (t *TextEditor) Spec() schema.FieldSpec { return t.spec }

func (t *TextEditor) Input(ev Event) {
	switch ev.Kind {
	case EventRune:
		if ev.Rune == '\n' && !t.spec.Multiline {
			return
		}
		t.buf = append(t.buf, ev.Rune)
		t.touched = true
	case EventBackspace:
		if len(t.buf) > 0 {
			t.buf = t.buf[:len(t.buf)-1]
		}
		t.touched = true
	}
}

func (t *TextEditor) Text() string { return string(t.buf) }

func (t *TextEditor) Validate() error {
	text := t.Text()
	if strings.TrimSpace(text) == "" {
		if t.spec.Required {
			return validate.Required()
		}
		return nil
	}
	return validate.String(text, t.spec.Constraints)
}

// Value returns the trimmed text. Whitespace-only and constraint-violating
// buffers are absent.
func (t *TextEditor) Value() (any, bool) {
	text := t.Text()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	if validate.String(text, t.spec.Constraints) != nil {
		return nil, false
	}
	return trimmed, true
}

func (t *TextEditor) Touched() bool { return t.touched }

func (t *TextEditor) Reset() {
	t.seed()
	t.touched = false
}
