package interactive

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/fluentcheck/internal/evaluator"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// stubEvaluator records the sentences it was asked to evaluate.
type stubEvaluator struct {
	calls [][]string
}

func (s *stubEvaluator) evaluate(_ context.Context, sentences []string) evaluator.Result {
	s.calls = append(s.calls, sentences)
	res := evaluator.EmptyResult()
	res.BasicStats.TotalSentences = len(sentences)
	res.Overall.Score = 64
	res.Overall.Grade = "C"
	res.Recommendations = []string{"Keep writing."}
	return res
}

func testApp(onResult func([]string, evaluator.Result) error) (appModel, *stubEvaluator) {
	stub := &stubEvaluator{}
	m := newAppModel(Options{Evaluate: stub.evaluate, OnResult: onResult})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(appModel), stub
}

func typeSentence(t *testing.T, m appModel, sentence string) appModel {
	t.Helper()
	compose, ok := m.router.active().(*composeScreen)
	if !ok {
		t.Fatalf("active screen = %T, want compose", m.router.active())
	}
	compose.input.Model.SetValue(sentence)
	updated, _ := m.Update(specialKey(tea.KeyEnter))
	return updated.(appModel)
}

// submit presses Enter on an empty line and runs the evaluation command.
func submit(t *testing.T, m appModel) appModel {
	t.Helper()
	updated, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected an evaluation command")
	}
	msg := cmd()
	if _, ok := msg.(evaluatedMsg); !ok {
		t.Fatalf("command produced %T, want evaluatedMsg", msg)
	}
	updated, _ = updated.Update(msg)
	return updated.(appModel)
}

func TestCompose_AddsSentences(t *testing.T) {
	m, stub := testApp(nil)

	m = typeSentence(t, m, "  I am agree.  ")
	m = typeSentence(t, m, "She don't like coffee.")

	compose := m.router.active().(*composeScreen)
	if got := compose.sentences; len(got) != 2 || got[0] != "I am agree." {
		t.Fatalf("sentences = %q", got)
	}
	if compose.input.Value() != "" {
		t.Errorf("input not cleared: %q", compose.input.Value())
	}
	if len(stub.calls) != 0 {
		t.Error("evaluation should not run while adding sentences")
	}
}

func TestCompose_EmptyEnterWithoutSentences(t *testing.T) {
	m, _ := testApp(nil)

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command with nothing to evaluate")
	}
}

func TestCompose_RemoveLast(t *testing.T) {
	m, _ := testApp(nil)
	m = typeSentence(t, m, "One.")
	m = typeSentence(t, m, "Two.")

	updated, _ := m.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	m = updated.(appModel)

	if got := m.router.active().(*composeScreen).sentences; len(got) != 1 || got[0] != "One." {
		t.Fatalf("sentences = %q", got)
	}
}

func TestEvaluate_ShowsReport(t *testing.T) {
	var saved []string
	m, stub := testApp(func(sentences []string, _ evaluator.Result) error {
		saved = sentences
		return nil
	})

	m = typeSentence(t, m, "Yesterday I go to the store.")
	m = typeSentence(t, m, "I am happy today.")
	m = submit(t, m)

	if len(stub.calls) != 1 || len(stub.calls[0]) != 2 {
		t.Fatalf("evaluate calls = %q", stub.calls)
	}
	if len(saved) != 2 {
		t.Errorf("OnResult sentences = %q", saved)
	}
	if _, ok := m.router.active().(*resultScreen); !ok {
		t.Fatalf("active screen = %T, want result", m.router.active())
	}

	view := ansi.Strip(m.render())
	for _, want := range []string{"Evaluation", "2 sentences", "64/100", "Keep writing."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// Esc returns to an empty compose screen.
	updated, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	updated, _ = updated.Update(cmd())
	m = updated.(appModel)

	compose, ok := m.router.active().(*composeScreen)
	if !ok {
		t.Fatalf("active screen = %T, want compose", m.router.active())
	}
	if len(compose.sentences) != 0 {
		t.Errorf("expected a fresh compose screen, got %q", compose.sentences)
	}
}

func TestEvaluate_SaveErrorShownAsNote(t *testing.T) {
	m, _ := testApp(func([]string, evaluator.Result) error {
		return errors.New("disk full")
	})

	m = typeSentence(t, m, "Hello there.")
	m = submit(t, m)

	view := ansi.Strip(m.render())
	if !strings.Contains(view, "Evaluation not saved: disk full") {
		t.Error("expected save error note in view")
	}
}

func TestCompose_IgnoresKeysWhileEvaluating(t *testing.T) {
	m, _ := testApp(nil)
	m = typeSentence(t, m, "Hello there.")

	updated, _ := m.Update(specialKey(tea.KeyEnter))
	m = updated.(appModel)

	compose := m.router.active().(*composeScreen)
	if !compose.evaluating {
		t.Fatal("expected evaluating state")
	}
	if _, cmd := m.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}); cmd != nil {
		t.Error("expected keys to be ignored while evaluating")
	}
	if len(compose.sentences) != 1 {
		t.Error("sentences changed while evaluating")
	}
	if !strings.Contains(ansi.Strip(m.render()), "Evaluating 1 sentences") {
		t.Error("expected evaluating message")
	}
}

func TestResultScreen_Scroll(t *testing.T) {
	s := newResultScreen(evaluator.EmptyResult(), "")
	s.View(80, 5)

	var scr Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	if s.offset != 2 {
		t.Fatalf("offset = %d, want 2", s.offset)
	}

	scr.Update(specialKey(tea.KeyUp))
	scr.Update(specialKey(tea.KeyUp))
	scr.Update(specialKey(tea.KeyUp))
	if s.offset != 0 {
		t.Fatalf("offset = %d, want 0", s.offset)
	}

	// Scrolling past the end is clamped on render.
	s.offset = 1000
	s.View(80, 5)
	if s.offset >= len(s.lines) {
		t.Fatalf("offset %d not clamped to %d lines", s.offset, len(s.lines))
	}
}

func TestView_TooSmall(t *testing.T) {
	m, _ := testApp(nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	if !strings.Contains(ansi.Strip(updated.(appModel).render()), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := testApp(nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
