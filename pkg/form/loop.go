package form

import (
	"context"
	"errors"
	"io"
)

// EventSource yields input events for the interaction loop. Next blocks
// until an event is available, the source is exhausted (io.EOF), or ctx
// expires.
type EventSource interface {
	Next(ctx context.Context) (Event, error)
}

// Renderer receives a snapshot after every applied event. Implementations
// must not retain the snapshot's slices past the call.
type Renderer interface {
	Render(Snapshot)
}

// Run drives the form to a terminal state: render, read an event, apply,
// repeat. Context expiry and source exhaustion both resolve the session as
// cancelled, so no partial input survives an interrupted loop. The returned
// error is non-nil only for context expiry or a source failure other than
// io.EOF.
func Run(ctx context.Context, f *Form, src EventSource, r Renderer) (Outcome, error) {
	for f.State() == StateEditing {
		if r != nil {
			r.Render(f.Snapshot())
		}
		if err := ctx.Err(); err != nil {
			return resolveCancelled(f), err
		}
		ev, err := src.Next(ctx)
		if err != nil {
			out := resolveCancelled(f)
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		if out, done := f.Handle(ev); done {
			if r != nil {
				r.Render(f.Snapshot())
			}
			return out, nil
		}
	}
	return resolveCancelled(f), nil
}

func resolveCancelled(f *Form) Outcome {
	out, done := f.Handle(Cancel())
	if !done {
		out = Outcome{Kind: OutcomeCancelled}
	}
	return out
}
