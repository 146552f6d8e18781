// Package runner maps the error taxonomy onto process exit codes.
package runner

import (
	"errors"
	"fmt"

	"github.com/julianshen/testgen/internal/manager"
)

// Exit codes. A user-declined download is a normal abort, not a failure, and
// usage errors are detected before any network activity.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks bad arguments or configuration. Using a typed error
// instead of os.Exit ensures deferred cleanup runs.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode returns the process exit code for an error from a command run.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, manager.ErrDeclined) {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}
