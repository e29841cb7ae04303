package elicit

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips markup from server-supplied text before it reaches the
// terminal. Entities are unescaped after stripping so plain prose like
// "a < b" survives intact.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	cleaned := textPolicy.Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
