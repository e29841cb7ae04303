package form

import "github.com/goliatone/go-elicit/pkg/schema"

// FieldView is the render-ready projection of one editor.
type FieldView struct {
	Name        string
	Label       string
	Description string
	Kind        schema.Kind
	Required    bool
	Multiline   bool

	// Text is the current edit-buffer display text.
	Text string

	// Err is the live validation message, empty when the buffer is valid.
	Err string

	Touched bool
}

// Snapshot is an immutable view of the whole form for rendering. Building
// one never mutates the form.
type Snapshot struct {
	Fields   []FieldView
	Focus    int
	State    State
	Eligible bool

	// Blocked names the fields that refused the last submit attempt.
	Blocked []string
}

// Snapshot projects the current form state.
func (f *Form) Snapshot() Snapshot {
	snap := Snapshot{
		Fields:   make([]FieldView, 0, len(f.editors)),
		Focus:    f.Focus(),
		State:    f.state,
		Eligible: f.Eligible(),
		Blocked:  append([]string(nil), f.blocked...),
	}
	for _, ed := range f.editors {
		spec := ed.Spec()
		view := FieldView{
			Name:        spec.Name,
			Label:       spec.Label(),
			Description: spec.Description,
			Kind:        spec.Kind,
			Required:    spec.Required,
			Multiline:   spec.Multiline,
			Text:        ed.Text(),
			Touched:     ed.Touched(),
		}
		if err := ed.Validate(); err != nil {
			view.Err = err.Error()
		}
		snap.Fields = append(snap.Fields, view)
	}
	return snap
}
