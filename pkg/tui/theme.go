package tui

import (
	theme "github.com/goliatone/go-theme"
)

// Styles holds the prefixes and ANSI sequences the session uses when
// printing. Keep minimal to avoid coupling session logic to terminal
// specifics.
type Styles struct {
	HeaderPrefix string
	InfoPrefix   string
	ErrorPrefix  string
	RequiredMark string
	Accent       string
	Dim          string
	Reset        string
}

// DefaultStyles returns the stock terminal styling.
func DefaultStyles() Styles {
	return Styles{
		HeaderPrefix: "?",
		InfoPrefix:   "i",
		ErrorPrefix:  "✗",
		RequiredMark: "*",
		Accent:       "\x1b[36m",
		Dim:          "\x1b[2m",
		Reset:        "\x1b[0m",
	}
}

// StylesFromTheme overlays recognized theme tokens onto the defaults.
// Token keys: tui.header, tui.info, tui.error, tui.required, tui.accent,
// tui.dim. Unknown tokens are ignored.
func StylesFromTheme(cfg *theme.RendererConfig) Styles {
	s := DefaultStyles()
	if cfg == nil || len(cfg.Tokens) == 0 {
		return s
	}
	apply := func(key string, dst *string) {
		if v, ok := cfg.Tokens[key]; ok && v != "" {
			*dst = v
		}
	}
	apply("tui.header", &s.HeaderPrefix)
	apply("tui.info", &s.InfoPrefix)
	apply("tui.error", &s.ErrorPrefix)
	apply("tui.required", &s.RequiredMark)
	apply("tui.accent", &s.Accent)
	apply("tui.dim", &s.Dim)
	return s
}

func (s Styles) accent(text string) string {
	if s.Accent == "" {
		return text
	}
	return s.Accent + text + s.Reset
}

func (s Styles) dim(text string) string {
	if s.Dim == "" {
		return text
	}
	return s.Dim + text + s.Reset
}
