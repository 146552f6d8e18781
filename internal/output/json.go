package output

import "encoding/json"

// JSONFormatter outputs a Result as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format marshals the Result as indented JSON. An empty result renders as an
// empty array, never null.
func (f *JSONFormatter) Format(result *Result) ([]byte, error) {
	out := *result
	if out.TestCases == nil {
		out.TestCases = []string{}
	}
	return json.MarshalIndent(&out, "", "  ")
}
