package manager

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianshen/testgen/internal/ollama"
)

// progressLine renders the pull stream as one carriage-return-rewritten line.
type progressLine struct {
	bar     progress.Model
	out     io.Writer
	written bool
}

func newProgressLine(out io.Writer) *progressLine {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return &progressLine{bar: bar, out: out}
}

func (l *progressLine) render(p ollama.PullProgress) {
	l.written = true
	if p.Total > 0 {
		frac := float64(p.Completed) / float64(p.Total)
		fmt.Fprintf(l.out, "\r%-24s %s %s/%s   ",
			p.Status, l.bar.ViewAs(frac), formatBytes(p.Completed), formatBytes(p.Total))
		return
	}
	fmt.Fprintf(l.out, "\r%-72s", p.Status)
}

// finish terminates the progress line so later output starts on a fresh row.
func (l *progressLine) finish() {
	if l.written {
		fmt.Fprintln(l.out)
	}
}

// formatBytes formats a byte count into a human-readable string
// (e.g., "4.0 GB", "512.0 MB").
func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
