package privacy

import (
	"log/slog"
	"regexp"
	"sync"
)

// Built-in pattern names. The order they are applied in is fixed; see
// defaultPatterns.
const (
	KindCreditCard = "credit_card"
	KindSSN        = "ssn"
	KindEmail      = "email"
	KindPhone      = "phone"
	KindAPIKey     = "api_key"
	KindPassword   = "password"
	KindToken      = "token"
)

// pattern pairs a compiled regex with the placeholder it rewrites
// matches to.
type pattern struct {
	kind        string
	regex       *regexp.Regexp
	replacement string
}

// defaultPatterns returns the built-in PII patterns in application
// order. The order matters: earlier patterns consume their matches
// before later, broader ones run. credit_card must precede api_key so a
// 16-digit run is reported as a card number, and email must precede
// password/token so an address inside a credential assignment is
// classified as an email first.
func defaultPatterns() []pattern {
	return []pattern{
		{KindCreditCard, regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`), "[REDACTED_CREDIT_CARD]"},
		{KindSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[REDACTED_SSN]"},
		{KindEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`), "[REDACTED_EMAIL]"},
		{KindPhone, regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`), "[REDACTED_PHONE]"},
		{KindAPIKey, regexp.MustCompile(`[A-Za-z0-9]{32,}`), "[REDACTED_API_KEY]"},
		{KindPassword, regexp.MustCompile(`(?i)password[:\s=]+\S+`), "[REDACTED_PASSWORD]"},
		{KindToken, regexp.MustCompile(`(?i)token[:\s=]+\S+`), "[REDACTED_TOKEN]"},
	}
}

// Filter detects and redacts personally identifiable information in
// message content. A disabled filter detects nothing and returns
// content unchanged.
//
// Filter is safe for concurrent use; LoadPatternFile may swap the
// custom pattern set while requests are being served.
type Filter struct {
	mu       sync.RWMutex
	defaults []pattern
	custom   []pattern
	enabled  bool
	logger   *slog.Logger
}

// New creates a Filter with the built-in pattern set.
func New(enabled bool, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{
		defaults: defaultPatterns(),
		enabled:  enabled,
		logger:   logger,
	}
}

// Enabled reports whether the filter is active.
func (f *Filter) Enabled() bool {
	return f.enabled
}

// patternsLocked returns the full application order: built-ins first,
// then custom patterns in file order. Callers must hold at least a
// read lock.
func (f *Filter) patternsLocked() []pattern {
	if len(f.custom) == 0 {
		return f.defaults
	}
	all := make([]pattern, 0, len(f.defaults)+len(f.custom))
	all = append(all, f.defaults...)
	all = append(all, f.custom...)
	return all
}

// Finding is a single PII match: the pattern that matched and the
// matched text.
type Finding struct {
	Kind        string
	MatchedText string
}

// Detect returns one Finding per match, grouped by pattern in
// application order and in text order within each pattern. Detection
// runs against the original content for every pattern, so overlapping
// matches are all reported.
func (f *Filter) Detect(content string) []Finding {
	if !f.enabled || content == "" {
		return nil
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var findings []Finding
	for _, p := range f.patternsLocked() {
		for _, match := range p.regex.FindAllString(content, -1) {
			findings = append(findings, Finding{Kind: p.kind, MatchedText: match})
		}
	}
	return findings
}

// Redact replaces every PII match in content with its placeholder.
// Patterns are applied sequentially in order, each against the output
// of the previous one. Redact is idempotent: placeholders do not match
// any built-in pattern.
func (f *Filter) Redact(content string) string {
	if !f.enabled || content == "" {
		return content
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, p := range f.patternsLocked() {
		content = p.regex.ReplaceAllString(content, p.replacement)
	}
	return content
}

// Violation records the PII kinds found in a single message.
type Violation struct {
	// Index is the position of the offending message in the request.
	Index int `json:"index"`

	// Kinds lists the PII pattern names that matched, in application
	// order.
	Kinds []string `json:"kinds"`
}

// Check scans a slice of message contents and returns one Violation
// per message that contains PII. Kinds are deduplicated from the
// per-match findings, keeping pattern application order. A nil result
// means the batch is clean.
func (f *Filter) Check(contents []string) []Violation {
	if !f.enabled {
		return nil
	}

	var violations []Violation
	for i, content := range contents {
		findings := f.Detect(content)
		if len(findings) == 0 {
			continue
		}
		var kinds []string
		seen := make(map[string]bool, len(findings))
		for _, finding := range findings {
			if !seen[finding.Kind] {
				seen[finding.Kind] = true
				kinds = append(kinds, finding.Kind)
			}
		}
		violations = append(violations, Violation{Index: i, Kinds: kinds})
	}
	return violations
}
