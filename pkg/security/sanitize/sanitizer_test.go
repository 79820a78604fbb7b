package sanitize

import (
	"strings"
	"testing"
)

func TestSanitizeRemovesScriptTags(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic script tag",
			input: "Hello <script>alert('xss')</script> world",
			want:  "Hello  world",
		},
		{
			name:  "uppercase script tag",
			input: "Hello <SCRIPT>alert(1)</SCRIPT> world",
			want:  "Hello  world",
		},
		{
			name:  "mixed case with attributes",
			input: `<ScRiPt type="text/javascript">evil()</sCrIpT>after`,
			want:  "after",
		},
		{
			name:  "multi-line body",
			input: "a<script>\nline1\nline2\n</script>b",
			want:  "ab",
		},
		{
			name:  "no script tag",
			input: "plain text",
			want:  "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.Contains(strings.ToLower(got), "<script") {
				t.Errorf("Sanitize(%q) left a <script substring: %q", tt.input, got)
			}
		})
	}
}

func TestSanitizeRemovesJavascriptScheme(t *testing.T) {
	s := New()

	for _, input := range []string{
		"click javascript:alert(1)",
		"click JAVASCRIPT:alert(1)",
		"click JavaScript:alert(1)",
	} {
		got := s.Sanitize(input)
		if strings.Contains(strings.ToLower(got), "javascript:") {
			t.Errorf("Sanitize(%q) left javascript: substring: %q", input, got)
		}
	}
}

func TestSanitizeRemovesSpecialCharacters(t *testing.T) {
	s := New()

	tests := []struct {
		input string
		want  string
	}{
		// Allowed punctuation is kept.
		{`Keep . , ! ? - ( ) ' " these`, `Keep . , ! ? - ( ) ' " these`},
		// Angle brackets, semicolons, and symbols are stripped.
		{"a<b>c;d&e", "abcde"},
		{"price: $100 #tag @user", "price 100 tag user"},
		{"under_score stays", "under_score stays"},
	}

	for _, tt := range tests {
		got := s.Sanitize(tt.input)
		if got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	s := New()

	if got := s.Sanitize("  padded  "); got != "padded" {
		t.Errorf("Sanitize trimmed = %q, want %q", got, "padded")
	}
	if got := s.Sanitize("   "); got != "" {
		t.Errorf("Sanitize(whitespace) = %q, want empty", got)
	}
	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(empty) = %q, want empty", got)
	}
}
