package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// maxSentenceLength bounds a single typed sentence.
const maxSentenceLength = 500

// SentenceInput wraps bubbles/textinput for entering one sentence at a time.
type SentenceInput struct {
	Model textinput.Model
}

// NewSentenceInput creates a focused sentence input.
func NewSentenceInput(placeholder string) SentenceInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = maxSentenceLength
	ti.Focus()

	return SentenceInput{Model: ti}
}

// Init returns the initial command.
func (s SentenceInput) Init() tea.Cmd {
	return s.Model.Focus()
}

// Update handles messages.
func (s SentenceInput) Update(msg tea.Msg) (SentenceInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the input.
func (s SentenceInput) View() string {
	return s.Model.View()
}

// Value returns the trimmed input.
func (s SentenceInput) Value() string {
	return strings.TrimSpace(s.Model.Value())
}

// Take returns the trimmed input and clears the field.
func (s *SentenceInput) Take() string {
	v := s.Value()
	s.Model.Reset()
	return v
}
