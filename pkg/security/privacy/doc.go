// Package privacy detects and redacts personally identifiable
// information in chat message content.
//
// A Filter carries an ordered list of regex patterns: the built-in set
// (credit cards, SSNs, emails, phone numbers, API keys, passwords,
// tokens) followed by any custom patterns loaded from a YAML file.
// Detection reports which kinds of PII a message contains; redaction
// rewrites every match to a "[REDACTED_*]" placeholder. The pattern
// file can be hot-reloaded with a PatternWatcher.
package privacy
