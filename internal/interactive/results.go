package interactive

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/report"
	"github.com/abhisek/fluentcheck/internal/ui/layout"
	"github.com/abhisek/fluentcheck/internal/ui/theme"
)

// resultScreen shows a scrollable evaluation report.
type resultScreen struct {
	result evaluator.Result
	note   string
	offset int

	// lines caches the rendered report for the last width.
	lines []string
	width int
}

func newResultScreen(result evaluator.Result, note string) *resultScreen {
	return &resultScreen{result: result, note: note}
}

func (s *resultScreen) Init() tea.Cmd { return nil }

func (s *resultScreen) Title() string { return "Evaluation" }

func (s *resultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "New evaluation"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *resultScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		s.offset--
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset -= 10
	case "pgdown", "space":
		s.offset += 10
	case "home", "g":
		s.offset = 0
	case "esc", "n", "q":
		return s, popScreen
	}
	s.offset = max(s.offset, 0)
	return s, nil
}

func (s *resultScreen) render(width int) []string {
	if s.lines == nil || s.width != width {
		out := report.Evaluation(s.result, width)
		if s.note != "" {
			out += "\n" + theme.Warning.Render(s.note) + "\n"
		}
		s.lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
		s.width = width
	}
	return s.lines
}

func (s *resultScreen) View(width, height int) string {
	lines := s.render(max(width-4, 20))

	height = max(height-2, 1)
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))

	return lipglossPad(strings.Join(lines[s.offset:end], "\n"), width)
}

func lipglossPad(content string, width int) string {
	return lipgloss.NewStyle().Padding(1, 2).Width(width).Render(content)
}
