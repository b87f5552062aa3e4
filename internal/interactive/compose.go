package interactive

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/ui/components"
	"github.com/abhisek/fluentcheck/internal/ui/layout"
	"github.com/abhisek/fluentcheck/internal/ui/theme"
)

// evaluatedMsg carries a finished evaluation back to the app.
type evaluatedMsg struct {
	sentences []string
	result    evaluator.Result
}

// composeScreen collects sentences one line at a time.
type composeScreen struct {
	input      components.SentenceInput
	sentences  []string
	evaluating bool
	evaluate   EvaluateFunc
}

func newComposeScreen(evaluate EvaluateFunc) *composeScreen {
	return &composeScreen{
		input:    components.NewSentenceInput("Type a sentence and press Enter"),
		evaluate: evaluate,
	}
}

func (s *composeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *composeScreen) Title() string {
	return "Write"
}

func (s *composeScreen) KeyHints() []layout.KeyHint {
	if s.evaluating {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Add sentence / evaluate when empty"},
		{Key: "Ctrl+D", Description: "Remove last"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *composeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if s.evaluating {
		return s, nil
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if v := s.input.Take(); v != "" {
				s.sentences = append(s.sentences, v)
				return s, nil
			}
			if len(s.sentences) == 0 {
				return s, nil
			}
			s.evaluating = true
			return s, s.evaluateCmd()
		case "ctrl+d":
			if len(s.sentences) > 0 {
				s.sentences = s.sentences[:len(s.sentences)-1]
			}
			return s, nil
		case "esc":
			s.input.Take()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *composeScreen) evaluateCmd() tea.Cmd {
	sentences := slices.Clone(s.sentences)
	evaluate := s.evaluate
	return func() tea.Msg {
		return evaluatedMsg{
			sentences: sentences,
			result:    evaluate(context.Background(), sentences),
		}
	}
}

func (s *composeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Hint.Render("Write a few sentences in English. Press Enter on an empty line to evaluate them."))
	b.WriteString("\n\n")

	// Show the most recent sentences that fit above the input.
	visible := s.sentences
	if room := max(height-6, 1); len(visible) > room {
		visible = visible[len(visible)-room:]
	}
	first := len(s.sentences) - len(visible)
	for i, sent := range visible {
		b.WriteString(theme.Label.Render(fmt.Sprintf("%3d. ", first+i+1)))
		b.WriteString(theme.Body.Render(sent))
		b.WriteString("\n")
	}
	if len(s.sentences) > 0 {
		b.WriteString("\n")
	}

	if s.evaluating {
		b.WriteString(theme.Warning.Render(fmt.Sprintf("Evaluating %d sentences…", len(s.sentences))))
	} else {
		b.WriteString(s.input.View())
	}

	return lipglossPad(b.String(), width)
}
