package sanitize

import (
	"regexp"
	"strings"
)

// Compiled once at package load; Sanitize is called on every message of
// every request.
var (
	// scriptTagPattern matches <script ...>...</script> pairs, including
	// multi-line bodies, case-insensitively.
	scriptTagPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)

	// javascriptPattern matches the javascript: URL scheme.
	javascriptPattern = regexp.MustCompile(`(?i)javascript:`)

	// specialCharsPattern matches every character that is not
	// alphanumeric, whitespace, or basic punctuation.
	specialCharsPattern = regexp.MustCompile(`[^\w\s.,!?\-()'"]+`)
)

// Sanitizer strips script-like and unsafe substrings from free-text
// input before it is forwarded upstream.
type Sanitizer struct{}

// New creates a new Sanitizer.
func New() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize removes injection attempts from content and returns the
// cleaned text. The steps run in a fixed order:
//
//  1. Remove <script ...>...</script> tag pairs (any casing, any body)
//  2. Remove the literal "javascript:" (any casing)
//  3. Remove every character outside the allowed set
//     (alphanumeric, whitespace, and . , ! ? - ( ) ' ")
//  4. Trim leading and trailing whitespace
//
// Sanitize is pure and never fails; the result may be empty.
func (s *Sanitizer) Sanitize(content string) string {
	content = scriptTagPattern.ReplaceAllString(content, "")
	content = javascriptPattern.ReplaceAllString(content, "")
	content = specialCharsPattern.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
