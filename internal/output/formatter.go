// Package output renders a generation result to stdout in the requested
// format.
package output

import "fmt"

// Format selects how test cases are rendered.
type Format string

const (
	// FormatJSON renders {"test_cases": [...]} pretty-printed.
	FormatJSON Format = "json"
	// FormatText renders one numbered test case per line.
	FormatText Format = "text"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q (must be \"json\" or \"text\")", s)
	}
}

// Result holds the test cases produced for one feature description.
type Result struct {
	TestCases []string `json:"test_cases"`
}

// Formatter formats a Result into output bytes.
type Formatter interface {
	Format(result *Result) ([]byte, error)
}

// New returns the Formatter for the given format.
func New(f Format) Formatter {
	if f == FormatText {
		return NewTextFormatter()
	}
	return NewJSONFormatter()
}
