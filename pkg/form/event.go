// Package form is the interactive engine: per-field editors with live
// validation, and a controller that owns focus, submit eligibility, and the
// editing state machine. It is plain state manipulation with no terminal
// dependency, so the whole engine is testable with scripted event streams.
package form

// EventKind discriminates the inputs the controller understands.
type EventKind int

const (
	// EventRune appends a printable character to the focused editor.
	EventRune EventKind = iota
	// EventBackspace removes from the focused editor.
	EventBackspace
	// EventNavigate moves focus by Delta with wraparound.
	EventNavigate
	// EventSubmit attempts to accept the form.
	EventSubmit
	// EventCancel abandons the form without a result.
	EventCancel
	// EventDecline refuses the request explicitly.
	EventDecline
	// EventCancelAll abandons and asks that future requests from the same
	// origin be suppressed.
	EventCancelAll
)

// Event is one unit of user input.
type Event struct {
	Kind  EventKind
	Rune  rune
	Delta int
}

// Rune builds a character-entry event.
func Rune(r rune) Event { return Event{Kind: EventRune, Rune: r} }

// Backspace builds a single-character deletion event.
func Backspace() Event { return Event{Kind: EventBackspace} }

// Next moves focus forward one field.
func Next() Event { return Event{Kind: EventNavigate, Delta: 1} }

// Prev moves focus back one field.
func Prev() Event { return Event{Kind: EventNavigate, Delta: -1} }

// Submit attempts to accept the form.
func Submit() Event { return Event{Kind: EventSubmit} }

// Cancel abandons the form.
func Cancel() Event { return Event{Kind: EventCancel} }

// Decline refuses the request.
func Decline() Event { return Event{Kind: EventDecline} }

// CancelAll abandons the form and suppresses future requests from the same
// origin.
func CancelAll() Event { return Event{Kind: EventCancelAll} }
