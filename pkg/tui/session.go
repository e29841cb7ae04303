package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-elicit/pkg/form"
	"github.com/goliatone/go-elicit/pkg/schema"
	"github.com/goliatone/go-elicit/pkg/validate"
)

// Resolution choices offered once every field has been visited.
const (
	actionSubmit  = "Submit"
	actionDecline = "Decline"
	actionCancel  = "Cancel"
	actionDisable = "Cancel and never ask again"
)

// Session drives a form through a prompt driver: each field is prompted in
// order, answers are replayed into the form engine as events, and the
// session resolves with one of the four actions.
type Session struct {
	driver PromptDriver
	out    io.Writer
	styles Styles
}

// SessionOption configures a session.
type SessionOption func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput redirects progress output.
func WithOutput(w io.Writer) SessionOption {
	return func(s *Session) {
		if w != nil {
			s.out = w
		}
	}
}

// WithStyles replaces the terminal styling.
func WithStyles(styles Styles) SessionOption {
	return func(s *Session) { s.styles = styles }
}

// WithTheme derives styling from a theme renderer config.
func WithTheme(cfg *theme.RendererConfig) SessionOption {
	return func(s *Session) { s.styles = StylesFromTheme(cfg) }
}

// NewSession constructs a session with defaults (survey driver, stdout).
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		out:    os.Stdout,
		styles: DefaultStyles(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	return s
}

// Run collects values for the given fields. It returns the resolved outcome;
// the error is non-nil only for context expiry or a driver failure, never
// for a user cancel.
func (s *Session) Run(ctx context.Context, message string, specs []schema.FieldSpec) (form.Outcome, error) {
	if s.driver == nil {
		return form.Outcome{}, ErrNoDriver
	}
	if message != "" {
		if err := s.driver.Info(ctx, s.styles.accent(message)); err != nil {
			return form.Outcome{}, err
		}
	}
	f := form.New(specs)
	src := &promptSource{session: s, form: f}
	return form.Run(ctx, f, src, NewScreen(s.out, s.styles))
}

// promptSource feeds the form loop from interactive prompts. Each answer is
// replayed as editor events so the form stays the single source of truth.
type promptSource struct {
	session *Session
	form    *form.Form

	queue   []form.Event
	pending []int
	primed  bool

	// handledBlocked prevents re-ingesting the same refused submit while
	// its fields are still queued for revisiting.
	handledBlocked bool
}

func (p *promptSource) Next(ctx context.Context) (form.Event, error) {
	for {
		if len(p.queue) > 0 {
			ev := p.queue[0]
			p.queue = p.queue[1:]
			return ev, nil
		}
		if err := ctx.Err(); err != nil {
			return form.Event{}, err
		}
		if !p.primed {
			p.primed = true
			for i := 0; i < p.form.Len(); i++ {
				p.pending = append(p.pending, i)
			}
		}
		if blocked := p.form.Blocked(); len(blocked) > 0 {
			p.ingestBlocked(ctx, blocked)
		}
		if len(p.pending) > 0 {
			idx := p.pending[0]
			p.pending = p.pending[1:]
			if err := p.promptField(ctx, idx); err != nil {
				if errors.Is(err, ErrAborted) {
					return form.Cancel(), nil
				}
				return form.Event{}, err
			}
			continue
		}
		ev, err := p.promptAction(ctx)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return form.Cancel(), nil
			}
			return form.Event{}, err
		}
		return ev, nil
	}
}

func (p *promptSource) ingestBlocked(ctx context.Context, blocked []string) {
	if p.handledBlocked {
		return
	}
	p.handledBlocked = true
	styles := p.session.styles
	_ = p.session.driver.Info(ctx, styles.ErrorPrefix+" missing or invalid: "+strings.Join(blocked, ", "))
	for _, name := range blocked {
		for i := 0; i < p.form.Len(); i++ {
			if p.form.Editor(i).Spec().Name == name {
				p.pending = append(p.pending, i)
				break
			}
		}
	}
}

func (p *promptSource) promptField(ctx context.Context, idx int) error {
	ed := p.form.Editor(idx)
	spec := ed.Spec()
	styles := p.session.styles

	msg := spec.Label()
	if spec.Required {
		msg += " " + styles.RequiredMark
	}
	help := spec.Description

	switch spec.Kind {
	case schema.KindBoolean:
		cur := ed.Text() == "true"
		resp, err := p.session.driver.Confirm(ctx, ConfirmConfig{Message: msg, Default: cur, Help: help})
		if err != nil {
			return err
		}
		p.focusEvents(idx)
		if resp != cur {
			p.queue = append(p.queue, form.Rune(' '))
		}
	case schema.KindEnum:
		choices := spec.Constraints.Choices
		options := make([]string, len(choices))
		for i, choice := range choices {
			options[i] = choice
			if i < len(spec.ChoiceLabels) && spec.ChoiceLabels[i] != "" {
				options[i] = spec.ChoiceLabels[i]
			}
		}
		sel, err := p.session.driver.Select(ctx, SelectConfig{
			Message:      msg,
			Options:      options,
			DefaultIndex: indexOf(choices, ed.Text()),
			Help:         help,
		})
		if err != nil {
			return err
		}
		if sel < 0 || sel >= len(choices) {
			return nil
		}
		p.focusEvents(idx)
		p.queue = append(p.queue, form.Backspace())
		for i := 0; i <= sel; i++ {
			p.queue = append(p.queue, form.Rune(' '))
		}
	default:
		cur := ed.Text()
		var resp string
		var err error
		if spec.Multiline {
			resp, err = p.session.driver.TextArea(ctx, TextAreaConfig{Message: msg, Default: cur, Help: help})
		} else {
			resp, err = p.session.driver.Input(ctx, InputConfig{
				Message:  msg,
				Default:  cur,
				Help:     help,
				Validate: fieldValidator(spec),
			})
		}
		if err != nil {
			return err
		}
		if resp == cur {
			return nil
		}
		p.focusEvents(idx)
		for range cur {
			p.queue = append(p.queue, form.Backspace())
		}
		for _, r := range resp {
			p.queue = append(p.queue, form.Rune(r))
		}
	}
	return nil
}

func (p *promptSource) promptAction(ctx context.Context) (form.Event, error) {
	sel, err := p.session.driver.Select(ctx, SelectConfig{
		Message:      "All fields visited",
		Options:      []string{actionSubmit, actionDecline, actionCancel, actionDisable},
		DefaultIndex: 0,
	})
	if err != nil {
		return form.Event{}, err
	}
	switch sel {
	case 0:
		p.handledBlocked = false
		return form.Submit(), nil
	case 1:
		return form.Decline(), nil
	case 3:
		return form.CancelAll(), nil
	default:
		return form.Cancel(), nil
	}
}

func (p *promptSource) focusEvents(idx int) {
	if delta := idx - p.form.Focus(); delta != 0 {
		p.queue = append(p.queue, form.Event{Kind: form.EventNavigate, Delta: delta})
	}
}

// fieldValidator adapts the field's constraint checks into a live prompt
// validator. Empty optional input is accepted as a skip.
func fieldValidator(spec schema.FieldSpec) func(string) error {
	return func(text string) error {
		if strings.TrimSpace(text) == "" {
			if spec.Required {
				return validate.Required()
			}
			return nil
		}
		switch spec.Kind {
		case schema.KindInteger:
			_, err := validate.Integer(text, spec.Constraints)
			return err
		case schema.KindNumber:
			_, err := validate.Number(text, spec.Constraints)
			return err
		default:
			return validate.String(text, spec.Constraints)
		}
	}
}
