package form

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-elicit/pkg/schema"
	"github.com/goliatone/go-elicit/pkg/validate"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func typeText(t *testing.T, f *Form, text string) {
	t.Helper()
	for _, r := range text {
		f.Handle(Rune(r))
	}
}

func TestNewEditor_SeedsDefaultsForEveryKind(t *testing.T) {
	specs := []schema.FieldSpec{
		{Name: "name", Kind: schema.KindString, Default: "abc"},
		{Name: "count", Kind: schema.KindInteger, Default: int64(3)},
		{Name: "ratio", Kind: schema.KindNumber, Default: 0.5},
		{Name: "active", Kind: schema.KindBoolean, Default: true},
		{Name: "color", Kind: schema.KindEnum, Default: "green",
			Constraints: validate.Constraints{Choices: []string{"red", "green"}}},
	}
	want := []string{"abc", "3", "0.5", "true", "green"}
	for i, spec := range specs {
		ed := NewEditor(spec)
		if ed.Text() != want[i] {
			t.Errorf("%s: Text() = %q, want %q", spec.Name, ed.Text(), want[i])
		}
		if ed.Touched() {
			t.Errorf("%s: seeded editor reads touched", spec.Name)
		}
		if _, ok := ed.Value(); !ok {
			t.Errorf("%s: seeded default not present", spec.Name)
		}
	}
}

func TestTextEditor_PatternValidation(t *testing.T) {
	spec := schema.FieldSpec{
		Name: "slug", Kind: schema.KindString, Required: true,
		Constraints: validate.Constraints{Pattern: regexp.MustCompile("^[a-z]+$")},
	}
	ed := NewEditor(spec)

	if err := ed.Validate(); err == nil {
		t.Error("empty required field should be invalid")
	}
	for _, r := range "abc" {
		ed.Input(Rune(r))
	}
	if err := ed.Validate(); err != nil {
		t.Errorf("'abc' should pass pattern: %v", err)
	}
	ed.Input(Rune('9'))
	if err := ed.Validate(); err == nil {
		t.Error("'abc9' should fail pattern")
	}
	if _, ok := ed.Value(); ok {
		t.Error("invalid buffer should yield absent value")
	}
	ed.Input(Backspace())
	if v, ok := ed.Value(); !ok || v != "abc" {
		t.Errorf("Value() = %v, %v after backspace", v, ok)
	}
}

func TestTextEditor_MultilineGate(t *testing.T) {
	single := NewEditor(schema.FieldSpec{Name: "s", Kind: schema.KindString})
	single.Input(Rune('a'))
	single.Input(Rune('\n'))
	single.Input(Rune('b'))
	if single.Text() != "ab" {
		t.Errorf("single-line Text() = %q, want %q", single.Text(), "ab")
	}

	multi := NewEditor(schema.FieldSpec{Name: "m", Kind: schema.KindString, Multiline: true})
	multi.Input(Rune('a'))
	multi.Input(Rune('\n'))
	multi.Input(Rune('b'))
	if multi.Text() != "a\nb" {
		t.Errorf("multiline Text() = %q, want %q", multi.Text(), "a\nb")
	}
}

func TestNumberEditor_IntegerBoundsGrid(t *testing.T) {
	spec := schema.FieldSpec{
		Name: "count", Kind: schema.KindInteger, Required: true,
		Constraints: validate.Constraints{Minimum: floatPtr(1), Maximum: floatPtr(10)},
	}
	cases := []struct {
		input string
		valid bool
		want  int64
	}{
		{"0", false, 0},
		{"1", true, 1},
		{"5", true, 5},
		{"10", true, 10},
		{"11", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			ed := NewEditor(spec)
			for _, r := range tc.input {
				ed.Input(Rune(r))
			}
			err := ed.Validate()
			if tc.valid && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tc.valid && err == nil {
				t.Fatal("Validate() = nil, want violation")
			}
			v, ok := ed.Value()
			if ok != tc.valid {
				t.Fatalf("Value() present = %v, want %v", ok, tc.valid)
			}
			if tc.valid && v != tc.want {
				t.Errorf("Value() = %v (%T), want %d", v, v, tc.want)
			}
		})
	}
}

func TestNumberEditor_RejectsNonNumericRunes(t *testing.T) {
	intEd := NewEditor(schema.FieldSpec{Name: "n", Kind: schema.KindInteger})
	for _, r := range "-1a2.3" {
		intEd.Input(Rune(r))
	}
	if intEd.Text() != "-123" {
		t.Errorf("integer buffer = %q, want %q", intEd.Text(), "-123")
	}

	numEd := NewEditor(schema.FieldSpec{Name: "r", Kind: schema.KindNumber})
	for _, r := range "1.2.3" {
		numEd.Input(Rune(r))
	}
	if numEd.Text() != "1.23" {
		t.Errorf("number buffer = %q, want %q", numEd.Text(), "1.23")
	}
}

func TestBoolEditor_ToggleAndKeys(t *testing.T) {
	ed := NewEditor(schema.FieldSpec{Name: "ok", Kind: schema.KindBoolean})
	if v, _ := ed.Value(); v != false {
		t.Fatalf("zero default = %v, want false", v)
	}
	ed.Input(Rune(' '))
	if v, _ := ed.Value(); v != true {
		t.Error("space should toggle to true")
	}
	ed.Input(Rune('n'))
	if v, _ := ed.Value(); v != false {
		t.Error("'n' should set false")
	}
	ed.Input(Rune('y'))
	if v, _ := ed.Value(); v != true {
		t.Error("'y' should set true")
	}
	if err := ed.Validate(); err != nil {
		t.Errorf("boolean should always validate, got %v", err)
	}
}

func TestEnumEditor_CycleAndClear(t *testing.T) {
	spec := schema.FieldSpec{
		Name: "env", Kind: schema.KindEnum, Required: true,
		Constraints:  validate.Constraints{Choices: []string{"dev", "stage", "prod"}},
		ChoiceLabels: []string{"Development", "Staging", "Production"},
	}
	ed := NewEditor(spec).(*EnumEditor)

	if err := ed.Validate(); err == nil {
		t.Error("no selection on required enum should be invalid")
	}
	ed.Input(Rune(' '))
	ed.Input(Rune(' '))
	if v, _ := ed.Value(); v != "stage" {
		t.Errorf("after two cycles Value() = %v, want stage", v)
	}
	if ed.Label() != "Staging" {
		t.Errorf("Label() = %q, want Staging", ed.Label())
	}
	ed.Input(Rune(' '))
	ed.Input(Rune(' '))
	if v, _ := ed.Value(); v != "dev" {
		t.Errorf("cycle should wrap, got %v", v)
	}
	ed.Input(Backspace())
	if _, ok := ed.Value(); ok {
		t.Error("backspace should clear selection")
	}
	ed.Select(2)
	if v, _ := ed.Value(); v != "prod" {
		t.Errorf("Select(2) Value() = %v, want prod", v)
	}
}

func TestForm_FocusWrapsBothDirections(t *testing.T) {
	f := New([]schema.FieldSpec{
		{Name: "a", Kind: schema.KindString},
		{Name: "b", Kind: schema.KindString},
		{Name: "c", Kind: schema.KindString},
	})
	f.Handle(Prev())
	if f.Focus() != 2 {
		t.Errorf("Prev from first wraps to %d, want 2", f.Focus())
	}
	f.Handle(Next())
	if f.Focus() != 0 {
		t.Errorf("Next from last wraps to %d, want 0", f.Focus())
	}
}

func TestForm_SubmitBlockedListsRequiredFieldsInOrder(t *testing.T) {
	f := New([]schema.FieldSpec{
		{Name: "name", Kind: schema.KindString, Required: true},
		{Name: "note", Kind: schema.KindString},
		{Name: "count", Kind: schema.KindInteger, Required: true,
			Constraints: validate.Constraints{Minimum: floatPtr(1)}},
	})

	if f.Eligible() {
		t.Fatal("empty required fields should not be eligible")
	}
	_, err := f.Submit()
	var blocked *SubmitBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("Submit() error = %v, want SubmitBlockedError", err)
	}
	if diff := cmp.Diff([]string{"name", "count"}, blocked.Fields); diff != "" {
		t.Errorf("blocked fields mismatch (-want +got):\n%s", diff)
	}
	if f.State() != StateEditing {
		t.Errorf("blocked submit should return to editing, state = %v", f.State())
	}
	if f.Focus() != 0 {
		t.Errorf("focus should land on first blocked field, got %d", f.Focus())
	}

	typeText(t, f, "abc")
	if got := f.Blocked(); got != nil {
		t.Errorf("typing should clear blocked list, got %v", got)
	}

	f.Handle(Next())
	f.Handle(Next())
	typeText(t, f, "3")
	if !f.Eligible() {
		t.Fatal("all required fields valid, should be eligible")
	}

	out, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if out.Kind != OutcomeAccepted {
		t.Fatalf("outcome = %v, want accepted", out.Kind)
	}
	if f.State() != StateSubmitted {
		t.Errorf("state = %v, want submitted", f.State())
	}

	var keys []string
	var vals []any
	for pair := out.Content.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
		vals = append(vals, pair.Value)
	}
	if diff := cmp.Diff([]string{"name", "count"}, keys); diff != "" {
		t.Errorf("result keys mismatch (-want +got):\n%s", diff)
	}
	if vals[0] != "abc" || vals[1] != int64(3) {
		t.Errorf("result values = %v, want [abc 3]", vals)
	}
}

func TestForm_CancelProducesNoContent(t *testing.T) {
	f := New([]schema.FieldSpec{
		{Name: "secret", Kind: schema.KindString, Required: true},
	})
	typeText(t, f, "half-typed")

	out, done := f.Handle(Cancel())
	if !done {
		t.Fatal("cancel should resolve the session")
	}
	if out.Kind != OutcomeCancelled || out.Content != nil {
		t.Errorf("outcome = %+v, want cancelled with nil content", out)
	}
	if f.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", f.State())
	}
	if _, done := f.Handle(Rune('x')); done {
		t.Error("events after terminal state should be ignored")
	}
}

func TestForm_DeclineAndDisableOutcomes(t *testing.T) {
	for _, tc := range []struct {
		ev   Event
		want OutcomeKind
	}{
		{Decline(), OutcomeDeclined},
		{CancelAll(), OutcomeDisabled},
	} {
		f := New([]schema.FieldSpec{{Name: "x", Kind: schema.KindString}})
		out, done := f.Handle(tc.ev)
		if !done || out.Kind != tc.want {
			t.Errorf("Handle(%v) = %+v done=%v, want kind %v", tc.ev.Kind, out, done, tc.want)
		}
	}
}

func TestForm_OptionalInvalidFieldOmittedFromResult(t *testing.T) {
	f := New([]schema.FieldSpec{
		{Name: "name", Kind: schema.KindString, Required: true},
		{Name: "email", Kind: schema.KindString,
			Constraints: validate.Constraints{Format: validate.FormatEmail}},
	})
	typeText(t, f, "abc")
	f.Handle(Next())
	typeText(t, f, "not-an-email")

	if !f.Eligible() {
		t.Fatal("invalid optional field must not block submission")
	}
	out, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if _, ok := out.Content.Get("email"); ok {
		t.Error("invalid optional value must not reach the result")
	}
	if v, _ := out.Content.Get("name"); v != "abc" {
		t.Errorf("name = %v, want abc", v)
	}
}

func TestSnapshot_ReflectsLiveValidation(t *testing.T) {
	f := New([]schema.FieldSpec{
		{Name: "count", Kind: schema.KindInteger, Required: true,
			Constraints: validate.Constraints{Minimum: floatPtr(1), Maximum: floatPtr(10)}},
	})
	typeText(t, f, "11")

	snap := f.Snapshot()
	if snap.Fields[0].Err == "" {
		t.Error("out-of-range buffer should carry a validation message")
	}
	if snap.Eligible {
		t.Error("snapshot should report ineligible")
	}

	f.Handle(Backspace())
	f.Handle(Backspace())
	typeText(t, f, "7")
	snap = f.Snapshot()
	if snap.Fields[0].Err != "" {
		t.Errorf("valid buffer should clear the message, got %q", snap.Fields[0].Err)
	}
	if !snap.Eligible {
		t.Error("snapshot should report eligible")
	}
}
