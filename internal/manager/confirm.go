package manager

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// PromptConfirmer asks the user a yes/no question: a huh confirm form when
// stdin is a terminal, a plain y/n line read otherwise (pipes, tests).
type PromptConfirmer struct {
	in         io.Reader
	out        io.Writer
	isTerminal bool
}

// NewStdinConfirmer creates a PromptConfirmer wired to the process stdin.
func NewStdinConfirmer() *PromptConfirmer {
	return &PromptConfirmer{
		in:         os.Stdin,
		out:        os.Stderr,
		isTerminal: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Confirm asks the question and reports the user's answer. Aborting the form
// (ctrl-c) and EOF on a non-terminal stdin both count as a decline.
func (c *PromptConfirmer) Confirm(title string) (bool, error) {
	if c.isTerminal {
		var ok bool
		err := huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return ok, nil
	}

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprintf(c.out, "%s (y/n): ", title)
		if !scanner.Scan() {
			return false, scanner.Err()
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Please answer 'y' or 'n'.")
	}
}
