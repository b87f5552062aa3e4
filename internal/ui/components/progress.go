package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluentcheck/internal/ui/theme"
)

// ScoreBar renders a labeled 0-100 score as a horizontal bar.
type ScoreBar struct {
	Label string
	Score int
	Width int
}

// NewScoreBar creates a score bar. Width covers label, bar and value.
func NewScoreBar(label string, score, width int) ScoreBar {
	return ScoreBar{Label: label, Score: score, Width: width}
}

// View renders the score bar.
func (b ScoreBar) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(14).
		Render(b.Label)

	value := b.valueStyle().Render(fmt.Sprintf(" %3d", b.Score))

	barWidth := max(4, b.Width-lipgloss.Width(label)-lipgloss.Width(value)-1)
	filled := min(max(barWidth*b.Score/100, 0), barWidth)

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	return label + " " + bar + value
}

func (b ScoreBar) valueStyle() lipgloss.Style {
	return theme.ScoreColor(b.Score).Bold(true)
}
