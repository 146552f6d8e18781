package output

import (
	"fmt"
	"strings"
)

// TextFormatter outputs a Result as a numbered plain-text list.
type TextFormatter struct{}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format renders one numbered test case per line.
func (f *TextFormatter) Format(result *Result) ([]byte, error) {
	var b strings.Builder
	for i, tc := range result.TestCases {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tc)
	}
	return []byte(b.String()), nil
}
