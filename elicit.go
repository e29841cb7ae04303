// Package elicit answers schema-driven elicitation requests with an
// interactive terminal form. A request carries a flat object schema; the
// user edits one field per property and resolves the form with one of four
// actions. Accepted content is typed and ordered; every other action leaks
// nothing.
package elicit

import (
	"context"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-elicit/pkg/form"
	"github.com/goliatone/go-elicit/pkg/schema"
	"github.com/goliatone/go-elicit/pkg/tui"
)

// Action is the resolution of an elicitation request.
type Action string

const (
	// ActionAccept carries the submitted content.
	ActionAccept Action = "accept"
	// ActionDecline is an explicit refusal.
	ActionDecline Action = "decline"
	// ActionCancel abandons the request without an answer.
	ActionCancel Action = "cancel"
	// ActionDisable cancels and suppresses future requests from the same
	// origin.
	ActionDisable Action = "disable"
)

// Request is one elicitation ask.
type Request struct {
	// Message is the server-supplied prompt shown above the form. It is
	// sanitized before display.
	Message string

	// AgentName and ServerName identify the origin. ServerName keys the
	// disable registry; AgentName is display only.
	AgentName  string
	ServerName string

	// Schema is a raw JSON object schema describing the requested fields.
	Schema []byte

	// Fields short-circuits schema parsing when the caller already built
	// field specs (e.g. via the openapi or reflectschema packages).
	Fields []schema.FieldSpec
}

func (r Request) origin() string {
	if s := strings.TrimSpace(r.ServerName); s != "" {
		return s
	}
	return strings.TrimSpace(r.AgentName)
}

// Result mirrors the elicitation response envelope. Content is non-nil only
// for ActionAccept.
type Result struct {
	Action  Action
	Content *orderedmap.OrderedMap[string, any]
}

// Elicitor runs elicitation requests against a terminal session.
type Elicitor struct {
	session  *tui.Session
	registry *DisableRegistry

	sessionOpts []tui.SessionOption
}

// Option configures an Elicitor.
type Option func(*Elicitor)

// WithSession supplies a fully built terminal session.
func WithSession(session *tui.Session) Option {
	return func(e *Elicitor) {
		if session != nil {
			e.session = session
		}
	}
}

// WithSessionOptions forwards options to the default session constructor.
// Ignored when WithSession is also given.
func WithSessionOptions(options ...tui.SessionOption) Option {
	return func(e *Elicitor) {
		e.sessionOpts = append(e.sessionOpts, options...)
	}
}

// WithRegistry shares a disable registry across elicitors.
func WithRegistry(registry *DisableRegistry) Option {
	return func(e *Elicitor) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// New constructs an Elicitor with defaults (survey-backed session, private
// registry).
func New(options ...Option) *Elicitor {
	e := &Elicitor{registry: NewDisableRegistry()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.session == nil {
		e.session = tui.NewSession(e.sessionOpts...)
	}
	return e
}

// Registry exposes the disable registry, e.g. to persist it between runs.
func (e *Elicitor) Registry() *DisableRegistry { return e.registry }

// Elicit resolves one request. Requests from a disabled origin cancel
// without prompting. The error is non-nil only for schema failures, context
// expiry, or terminal failures; user refusals come back as actions.
func (e *Elicitor) Elicit(ctx context.Context, req Request) (Result, error) {
	origin := req.origin()
	if origin != "" && e.registry.Disabled(origin) {
		return Result{Action: ActionCancel}, nil
	}

	fields := req.Fields
	if fields == nil {
		obj, err := schema.ParseObject(req.Schema)
		if err != nil {
			return Result{}, err
		}
		fields, err = obj.Fields()
		if err != nil {
			return Result{}, err
		}
	}

	out, err := e.session.Run(ctx, promptMessage(req), fields)
	if err != nil {
		return Result{Action: ActionCancel}, err
	}

	switch out.Kind {
	case form.OutcomeAccepted:
		return Result{Action: ActionAccept, Content: out.Content}, nil
	case form.OutcomeDeclined:
		return Result{Action: ActionDecline}, nil
	case form.OutcomeDisabled:
		e.registry.Disable(origin)
		return Result{Action: ActionDisable}, nil
	default:
		return Result{Action: ActionCancel}, nil
	}
}

func promptMessage(req Request) string {
	msg := Sanitize(req.Message)
	agent := Sanitize(req.AgentName)
	server := Sanitize(req.ServerName)
	switch {
	case agent != "" && server != "":
		return fmt.Sprintf("%s (%s): %s", agent, server, msg)
	case server != "":
		return fmt.Sprintf("%s: %s", server, msg)
	case agent != "":
		return fmt.Sprintf("%s: %s", agent, msg)
	default:
		return msg
	}
}
