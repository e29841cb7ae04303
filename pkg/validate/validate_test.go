package validate

import (
	"errors"
	"regexp"
	"testing"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestString_LengthBounds(t *testing.T) {
	c := Constraints{MinLength: intPtr(3), MaxLength: intPtr(5)}

	cases := []struct {
		name string
		text string
		rule string
	}{
		{"below min", "ab", RuleMinLength},
		{"exact min", "abc", ""},
		{"exact max", "abcde", ""},
		{"above max", "abcdef", RuleMaxLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := String(tc.text, c)
			assertRule(t, err, tc.rule)
		})
	}
}

func TestString_Pattern(t *testing.T) {
	c := Constraints{Pattern: regexp.MustCompile(`^[a-z]+$`)}

	if err := String("abc", c); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	err := String("ABC", c)
	assertRule(t, err, RulePattern)
}

func TestString_Formats(t *testing.T) {
	cases := []struct {
		format string
		text   string
		rule   string
	}{
		{FormatEmail, "user@example.com", ""},
		{FormatEmail, "not-an-email", RuleFormat},
		{FormatURI, "https://example.com", ""},
		{FormatURI, "://broken", RuleFormat},
		{FormatDate, "2024-02-29", ""},
		{FormatDate, "2024-13-01", RuleFormat},
		{FormatDateTime, "2024-01-02T15:04:05Z", ""},
		{FormatDateTime, "2024-01-02 15:04:05", ""},
		{FormatDateTime, "yesterday", RuleFormat},
	}
	for _, tc := range cases {
		t.Run(tc.format+"/"+tc.text, func(t *testing.T) {
			err := String(tc.text, Constraints{Format: tc.format})
			assertRule(t, err, tc.rule)
		})
	}
}

func TestInteger_Bounds(t *testing.T) {
	c := Constraints{Minimum: floatPtr(1), Maximum: floatPtr(10)}

	cases := []struct {
		text string
		want int64
		rule string
	}{
		{"0", 0, RuleMinimum},
		{"1", 1, ""},
		{"10", 10, ""},
		{"11", 0, RuleMaximum},
		{"abc", 0, RuleType},
		{"3.5", 0, RuleType},
		{"", 0, RuleType},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := Integer(tc.text, c)
			assertRule(t, err, tc.rule)
			if tc.rule == "" && got != tc.want {
				t.Fatalf("Integer(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestNumber_Bounds(t *testing.T) {
	c := Constraints{Minimum: floatPtr(0.5), Maximum: floatPtr(2.5)}

	if _, err := Number("0.5", c); err != nil {
		t.Fatalf("exact min rejected: %v", err)
	}
	if _, err := Number("2.5", c); err != nil {
		t.Fatalf("exact max rejected: %v", err)
	}
	_, err := Number("0.49", c)
	assertRule(t, err, RuleMinimum)
	_, err = Number("2.51", c)
	assertRule(t, err, RuleMaximum)
	_, err = Number("1.2.3", c)
	assertRule(t, err, RuleType)
}

func TestEnum(t *testing.T) {
	c := Constraints{Choices: []string{"red", "green", "blue"}}

	got, err := Enum("green", c)
	if err != nil || got != "green" {
		t.Fatalf("Enum(green) = %q, %v", got, err)
	}
	_, err = Enum("mauve", c)
	assertRule(t, err, RuleEnum)
}

func assertRule(t *testing.T, err error, rule string) {
	t.Helper()
	if rule == "" {
		if err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
		return
	}
	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected *Violation, got %v", err)
	}
	if v.Rule != rule {
		t.Fatalf("rule = %q, want %q (reason %q)", v.Rule, rule, v.Reason)
	}
	if v.Reason == "" {
		t.Fatalf("violation %q missing reason", v.Rule)
	}
}
