// Package validate applies field constraints to raw candidate input. Every
// function is a pure function of the candidate and the constraints passed in,
// so all editors share identical semantics and boundary behavior is testable
// in one place.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rule identifiers carried by violations.
const (
	RuleRequired  = "required"
	RuleType      = "type"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleFormat    = "format"
	RuleMinimum   = "minimum"
	RuleMaximum   = "maximum"
	RuleEnum      = "enum"
)

// String formats checked when Constraints.Format is set.
const (
	FormatEmail    = "email"
	FormatURI      = "uri"
	FormatDate     = "date"
	FormatDateTime = "date-time"
)

// Constraints carries the optional bounds a field declares. Nil pointers mean
// the bound is absent. Choices applies to enum fields only.
type Constraints struct {
	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp
	Format    string
	Minimum   *float64
	Maximum   *float64
	Choices   []string
}

// Violation names the failed rule and explains it in terms the user can act
// on.
type Violation struct {
	Rule   string
	Reason string
}

func (v *Violation) Error() string { return v.Reason }

func violationf(rule, format string, args ...any) *Violation {
	return &Violation{Rule: rule, Reason: fmt.Sprintf(format, args...)}
}

// Required is the canonical violation for an empty required field.
func Required() *Violation {
	return &Violation{Rule: RuleRequired, Reason: "required field empty"}
}

// String checks length, pattern, and format constraints against text.
func String(text string, c Constraints) error {
	n := len([]rune(text))
	if c.MinLength != nil && n < *c.MinLength {
		return violationf(RuleMinLength, "need %d more chars", *c.MinLength-n)
	}
	if c.MaxLength != nil && n > *c.MaxLength {
		return violationf(RuleMaxLength, "too long by %d chars", n-*c.MaxLength)
	}
	if c.Pattern != nil && !c.Pattern.MatchString(text) {
		return violationf(RulePattern, "does not match pattern %s", c.Pattern.String())
	}
	if c.Format != "" {
		return checkFormat(text, c.Format)
	}
	return nil
}

// Integer parses text as a base-10 integer and checks the numeric bounds.
func Integer(text string, c Constraints) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, violationf(RuleType, "not a valid integer")
	}
	if err := bounds(float64(v), c); err != nil {
		return 0, err
	}
	return v, nil
}

// Number parses text as a float and checks the numeric bounds.
func Number(text string, c Constraints) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, violationf(RuleType, "not a valid number")
	}
	if err := bounds(v, c); err != nil {
		return 0, err
	}
	return v, nil
}

// Enum checks membership of choice in the declared choice set.
func Enum(choice string, c Constraints) (string, error) {
	for _, opt := range c.Choices {
		if opt == choice {
			return choice, nil
		}
	}
	return "", violationf(RuleEnum, "value %q not in choices", choice)
}

func bounds(v float64, c Constraints) error {
	if c.Minimum != nil && v < *c.Minimum {
		return violationf(RuleMinimum, "must be ≥ %s", formatBound(*c.Minimum))
	}
	if c.Maximum != nil && v > *c.Maximum {
		return violationf(RuleMaximum, "must be ≤ %s", formatBound(*c.Maximum))
	}
	return nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func checkFormat(text, format string) error {
	switch format {
	case FormatEmail:
		if _, err := mail.ParseAddress(text); err != nil {
			return violationf(RuleFormat, "invalid email format")
		}
	case FormatURI:
		u, err := url.Parse(text)
		if err != nil || u.Scheme == "" {
			return violationf(RuleFormat, "invalid URI format")
		}
	case FormatDate:
		if _, err := time.Parse("2006-01-02", text); err != nil {
			return violationf(RuleFormat, "invalid date (use YYYY-MM-DD)")
		}
	case FormatDateTime:
		if !parseDateTime(text) {
			return violationf(RuleFormat, "invalid datetime (use ISO 8601)")
		}
	}
	return nil
}

func parseDateTime(text string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if _, err := time.Parse(layout, text); err == nil {
			return true
		}
	}
	return false
}
