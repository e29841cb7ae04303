package form

import (
	"strconv"

	"github.com/goliatone/go-elicit/pkg/schema"
)

// BoolEditor edits boolean fields. A boolean always carries a value, so it
// is never invalid and never absent; a missing default reads as false.
type BoolEditor struct {
	spec    schema.FieldSpec
	val     bool
	touched bool
}

func newBoolEditor(spec schema.FieldSpec) *BoolEditor {
	ed := &BoolEditor{spec: spec}
	ed.seed()
	return ed
}

func (b *BoolEditor) seed() {
	b.val = false
	if v, ok := b.spec.Default.(bool); ok {
		b.val = v
	}
}

func (b *BoolEditor) Spec() schema.FieldSpec { return b.spec }

func (b *BoolEditor) Input(ev Event) {
	if ev.Kind != EventRune {
		return
	}
	switch ev.Rune {
	case ' ':
		b.val = !b.val
	case 't', 'T', 'y', 'Y', '1':
		b.val = true
	case 'f', 'F', 'n', 'N', '0':
		b.val = false
	default:
		return
	}
	b.touched = true
}

func (b *BoolEditor) Text() string { return strconv.FormatBool(b.val) }

func (b *BoolEditor) Validate() error { return nil }

func (b *BoolEditor) Value() (any, bool) { return b.val, true }

func (b *BoolEditor) Touched() bool { return b.touched }

func (b *BoolEditor) Reset() {
	b.seed()
	b.touched = false
}
