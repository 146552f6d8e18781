package generator

import (
	"encoding/json"
	"strings"
)

// ParseError is returned when the model's response is neither usable JSON nor
// contains any non-empty lines to fall back on.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "model response was not valid JSON and contained no usable lines"
}

// Interpret extracts test cases from the model's raw response text. It tries
// strict JSON first: either a bare array of strings or an object with a
// "test_cases" array. Anything else degrades to splitting the text into
// trimmed non-empty lines. Only if that also yields nothing is it an error.
func Interpret(raw string) ([]string, error) {
	if cases, ok := parseJSON(raw); ok {
		return cases, nil
	}

	var cases []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cases = append(cases, trimmed)
		}
	}
	if len(cases) == 0 {
		return nil, &ParseError{Raw: raw}
	}
	return cases, nil
}

// parseJSON attempts the two accepted JSON shapes. No repair or partial
// parsing: a response that is valid JSON in any other shape falls through to
// the line splitter.
func parseJSON(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	var arr []string
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		return arr, true
	}

	var obj struct {
		TestCases []string `json:"test_cases"`
	}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil && obj.TestCases != nil {
		return obj.TestCases, true
	}

	return nil, false
}
