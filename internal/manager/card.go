package manager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianshen/testgen/internal/registry"
)

var (
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true).Width(12)
)

// renderCard prints the model information panel shown before the download
// confirmation. A nil card means registry metadata was unavailable.
func (m *Manager) renderCard(card *registry.ModelCard) {
	if card == nil {
		fmt.Fprintln(m.out, "It will be downloaded from the Ollama registry; size unknown.")
		return
	}

	rows := []struct{ label, value string }{
		{"Model", card.Name},
		{"Size", formatBytes(card.Size)},
		{"Parameters", orUnknown(card.ParameterSize)},
		{"Family", orUnknown(card.Family)},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(row.value)
	}
	fmt.Fprintln(m.out, cardStyle.Render(b.String()))
	fmt.Fprintln(m.out, "Download time depends on your connection and the model size.")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
