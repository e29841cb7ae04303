package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-elicit/pkg/form"
)

// Screen prints session progress. It renders the field overview once, then
// only state changes: the blocked list after a refused submit and a closing
// line when the session resolves.
type Screen struct {
	out    io.Writer
	styles Styles

	headerDone  bool
	lastBlocked string
	closed      bool
}

// NewScreen builds a renderer writing to out.
func NewScreen(out io.Writer, styles Styles) *Screen {
	return &Screen{out: out, styles: styles}
}

func (s *Screen) Render(snap form.Snapshot) {
	if s.out == nil {
		return
	}
	if !s.headerDone {
		s.headerDone = true
		for _, field := range snap.Fields {
			line := fmt.Sprintf("  %s (%s)", field.Label, field.Kind)
			if field.Required {
				line += " " + s.styles.RequiredMark
			}
			if field.Description != "" {
				line += "  " + s.styles.dim(field.Description)
			}
			fmt.Fprintln(s.out, line)
		}
	}

	if len(snap.Blocked) > 0 {
		key := strings.Join(snap.Blocked, ",")
		if key != s.lastBlocked {
			s.lastBlocked = key
			for _, name := range snap.Blocked {
				msg := "required"
				for _, field := range snap.Fields {
					if field.Name == name && field.Err != "" {
						msg = field.Err
					}
				}
				fmt.Fprintf(s.out, "%s %s: %s\n", s.styles.ErrorPrefix, name, msg)
			}
		}
	} else {
		s.lastBlocked = ""
	}

	if s.closed {
		return
	}
	switch snap.State {
	case form.StateSubmitted:
		s.closed = true
		fmt.Fprintln(s.out, s.styles.accent("submitted"))
	case form.StateCancelled:
		s.closed = true
		fmt.Fprintln(s.out, s.styles.dim("cancelled"))
	}
}
