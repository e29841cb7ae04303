package form

import (
	"strings"

	"github.com/goliatone/go-elicit/pkg/schema"
	"github.com/goliatone/go-elicit/pkg/validate"
)

// NumberEditor edits integer and number fields. The buffer only ever holds
// characters that could still form a valid numeral: digits, a leading sign,
// and for number fields a single decimal point.
type NumberEditor struct {
	spec    schema.FieldSpec
	buf     []rune
	touched bool
}

func newNumberEditor(spec schema.FieldSpec) *NumberEditor {
	ed := &NumberEditor{spec: spec}
	ed.seed()
	return ed
}

func (n *NumberEditor) seed() {
	n.buf = nil
	if n.spec.HasDefault() {
		n.buf = []rune(defaultText(n.spec.Default))
	}
}

func (n *NumberEditor) Spec() schema.FieldSpec { return n.spec }

func (n *NumberEditor) accepts(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if (r == '-' || r == '+') && len(n.buf) == 0 {
		return true
	}
	if r == '.' && n.spec.Kind == schema.KindNumber && !strings.ContainsRune(string(n.buf), '.') {
		return true
	}
	return false
}

func (n *NumberEditor) Input(ev Event) {
	switch ev.Kind {
	case EventRune:
		if !n.accepts(ev.Rune) {
			return
		}
		n.buf = append(n.buf, ev.Rune)
		n.touched = true
	case EventBackspace:
		if len(n.buf) > 0 {
			n.buf = n.buf[:len(n.buf)-1]
		}
		n.touched = true
	}
}

func (n *NumberEditor) Text() string { return string(n.buf) }

func (n *NumberEditor) Validate() error {
	text := strings.TrimSpace(n.Text())
	if text == "" {
		if n.spec.Required {
			return validate.Required()
		}
		return nil
	}
	if n.spec.Kind == schema.KindInteger {
		_, err := validate.Integer(text, n.spec.Constraints)
		return err
	}
	_, err := validate.Number(text, n.spec.Constraints)
	return err
}

// Value returns int64 for integer fields and float64 for number fields.
func (n *NumberEditor) Value() (any, bool) {
	text := strings.TrimSpace(n.Text())
	if text == "" {
		return nil, false
	}
	if n.spec.Kind == schema.KindInteger {
		v, err := validate.Integer(text, n.spec.Constraints)
		if err != nil {
			return nil, false
		}
		return v, true
	}
	v, err := validate.Number(text, n.spec.Constraints)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (n *NumberEditor) Touched() bool { return n.touched }

func (n *NumberEditor) Reset() {
	n.seed()
	n.touched = false
}
