package form

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-elicit/pkg/schema"
)

// State is the controller's lifecycle phase.
type State int

const (
	// StateEditing accepts input events.
	StateEditing State = iota
	// StateSubmitting is the transient phase while eligibility is checked.
	StateSubmitting
	// StateSubmitted is terminal: a result was produced.
	StateSubmitted
	// StateCancelled is terminal: no result was produced.
	StateCancelled
)

// OutcomeKind classifies how a form session ended.
type OutcomeKind int

const (
	// OutcomeCancelled is the zero value so that an unresolved session
	// never reads as accepted.
	OutcomeCancelled OutcomeKind = iota
	OutcomeAccepted
	OutcomeDeclined
	// OutcomeDisabled is a cancel that also requests suppression of
	// future prompts from the same origin.
	OutcomeDisabled
)

// Outcome is the terminal result of a form session. Content is non-nil only
// for accepted outcomes; cancellation leaks no partial input.
type Outcome struct {
	Kind    OutcomeKind
	Content *orderedmap.OrderedMap[string, any]
}

// Form owns one editor per field, the focus cursor, and the state machine.
// It performs no I/O. Methods are not safe for concurrent use.
type Form struct {
	editors []Editor
	focus   int
	state   State

	// blocked names the required fields that refused the most recent
	// submit attempt. Any non-submit event clears it.
	blocked []string
}

// New builds a form with one editor per field spec, focused on the first
// field.
func New(specs []schema.FieldSpec) *Form {
	f := &Form{editors: make([]Editor, 0, len(specs))}
	for _, spec := range specs {
		f.editors = append(f.editors, NewEditor(spec))
	}
	return f
}

// State returns the current lifecycle phase.
func (f *Form) State() State { return f.state }

// Len returns the number of fields.
func (f *Form) Len() int { return len(f.editors) }

// Focus returns the index of the focused field, -1 when the form is empty.
func (f *Form) Focus() int {
	if len(f.editors) == 0 {
		return -1
	}
	return f.focus
}

// Editor returns the editor at index i.
func (f *Form) Editor(i int) Editor { return f.editors[i] }

// Focused returns the focused editor, nil when the form has no fields.
func (f *Form) Focused() Editor {
	if len(f.editors) == 0 {
		return nil
	}
	return f.editors[f.focus]
}

// Handle applies one event. It returns the terminal outcome and true once
// the session ends; events arriving after that are ignored.
func (f *Form) Handle(ev Event) (Outcome, bool) {
	if f.state != StateEditing {
		return Outcome{}, false
	}
	switch ev.Kind {
	case EventRune, EventBackspace:
		f.blocked = nil
		if ed := f.Focused(); ed != nil {
			ed.Input(ev)
		}
	case EventNavigate:
		f.blocked = nil
		f.move(ev.Delta)
	case EventSubmit:
		f.state = StateSubmitting
		if blocked := f.blockedFields(); len(blocked) > 0 {
			f.blocked = blocked
			f.state = StateEditing
			f.focusField(blocked[0])
			return Outcome{}, false
		}
		f.state = StateSubmitted
		return Outcome{Kind: OutcomeAccepted, Content: f.Result()}, true
	case EventCancel:
		f.state = StateCancelled
		return Outcome{Kind: OutcomeCancelled}, true
	case EventDecline:
		f.state = StateCancelled
		return Outcome{Kind: OutcomeDeclined}, true
	case EventCancelAll:
		f.state = StateCancelled
		return Outcome{Kind: OutcomeDisabled}, true
	}
	return Outcome{}, false
}

// Submit attempts to accept the form directly. It returns SubmitBlockedError
// naming the offending fields when eligibility fails.
func (f *Form) Submit() (Outcome, error) {
	out, done := f.Handle(Submit())
	if !done {
		return Outcome{}, &SubmitBlockedError{Fields: append([]string(nil), f.blocked...)}
	}
	return out, nil
}

// Eligible reports whether every required field holds a valid value.
// Optional fields never block submission.
func (f *Form) Eligible() bool { return len(f.blockedFields()) == 0 }

// Blocked returns the required fields that refused the most recent submit
// attempt. It is cleared by any subsequent non-submit event.
func (f *Form) Blocked() []string { return f.blocked }

func (f *Form) blockedFields() []string {
	var blocked []string
	for _, ed := range f.editors {
		if !ed.Spec().Required {
			continue
		}
		if _, ok := ed.Value(); !ok {
			blocked = append(blocked, ed.Spec().Name)
			continue
		}
		if ed.Validate() != nil {
			blocked = append(blocked, ed.Spec().Name)
		}
	}
	return blocked
}

// Result collects the present typed values in field order. Absent optional
// fields are omitted entirely.
func (f *Form) Result() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	for _, ed := range f.editors {
		if v, ok := ed.Value(); ok {
			out.Set(ed.Spec().Name, v)
		}
	}
	return out
}

func (f *Form) move(delta int) {
	n := len(f.editors)
	if n == 0 {
		return
	}
	f.focus = ((f.focus+delta)%n + n) % n
}

func (f *Form) focusField(name string) {
	for i, ed := range f.editors {
		if ed.Spec().Name == name {
			f.focus = i
			return
		}
	}
}
