// Package interactive is a terminal UI that collects sentences and shows
// their evaluation.
package interactive

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/ui/layout"
)

// EvaluateFunc evaluates sentences; (*evaluator.Evaluator).Evaluate fits.
type EvaluateFunc func(ctx context.Context, sentences []string) evaluator.Result

// Options configures the interactive app.
type Options struct {
	Evaluate EvaluateFunc

	// OnResult, when set, is called with each finished evaluation (e.g. to
	// store it). An error is shown under the report.
	OnResult func(sentences []string, result evaluator.Result) error
}

// appModel is the root Bubble Tea model.
type appModel struct {
	opts   Options
	router *router
	width  int
	height int
}

func newAppModel(opts Options) appModel {
	return appModel{
		opts:   opts,
		router: newRouter(newComposeScreen(opts.Evaluate)),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.router.active().Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case evaluatedMsg:
		var note string
		if m.opts.OnResult != nil {
			if err := m.opts.OnResult(msg.sentences, msg.result); err != nil {
				note = fmt.Sprintf("Evaluation not saved: %v", err)
			}
		}
		// Going back from the report starts a fresh evaluation.
		cmd := m.router.reset(
			newComposeScreen(m.opts.Evaluate),
			newResultScreen(msg.result, note),
		)
		return m, cmd
	}

	return m, m.router.update(msg)
}

// sentenceCount is shown in the header: sentences collected so far, or
// evaluated in the report on screen.
func (m appModel) sentenceCount() int {
	switch s := m.router.active().(type) {
	case *composeScreen:
		return len(s.sentences)
	case *resultScreen:
		return s.result.BasicStats.TotalSentences
	}
	return 0
}

func (m appModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

// render draws the full frame for the current window size.
func (m appModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.active()
	header := layout.RenderHeader(active.Title(), m.sentenceCount(), m.width)
	footer := layout.RenderFooter(active.KeyHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := active.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	if opts.Evaluate == nil {
		return fmt.Errorf("interactive: Evaluate is required")
	}
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run interactive UI: %w", err)
	}
	return nil
}
