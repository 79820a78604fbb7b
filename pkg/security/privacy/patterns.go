package privacy

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// PatternFile is the on-disk format for custom redaction patterns.
type PatternFile struct {
	Patterns []PatternEntry `yaml:"patterns"`
}

// PatternEntry describes a single custom pattern.
type PatternEntry struct {
	// Name identifies the pattern in detection results.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the text matches are rewritten to. If empty,
	// "[REDACTED_<NAME>]" is used.
	Replacement string `yaml:"replacement"`
}

// LoadPatternFile reads custom redaction patterns from a YAML file and
// installs them after the built-in set. Entries whose regex does not
// compile are skipped with a warning; the file as a whole only fails
// on read or parse errors. Calling LoadPatternFile again replaces the
// previous custom set.
func (f *Filter) LoadPatternFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read pattern file: %w", err)
	}

	var file PatternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse pattern file: %w", err)
	}

	custom := make([]pattern, 0, len(file.Patterns))
	for _, entry := range file.Patterns {
		if entry.Name == "" || entry.Pattern == "" {
			f.logger.Warn("Skipping custom pattern with empty name or pattern",
				"name", entry.Name,
			)
			continue
		}

		regex, err := regexp.Compile(entry.Pattern)
		if err != nil {
			f.logger.Warn("Skipping invalid custom pattern",
				"name", entry.Name,
				"error", err,
			)
			continue
		}

		replacement := entry.Replacement
		if replacement == "" {
			replacement = fmt.Sprintf("[REDACTED_%s]", strings.ToUpper(entry.Name))
		}

		custom = append(custom, pattern{
			kind:        entry.Name,
			regex:       regex,
			replacement: replacement,
		})
	}

	f.mu.Lock()
	f.custom = custom
	f.mu.Unlock()

	f.logger.Info("Loaded custom redaction patterns",
		"path", path,
		"count", len(custom),
	)
	return nil
}
