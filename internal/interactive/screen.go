package interactive

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluentcheck/internal/ui/layout"
)

// Screen is one view of the interactive app.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title is shown in the header.
	Title() string

	// KeyHints are shown in the footer.
	KeyHints() []layout.KeyHint
}

// popScreenMsg returns to the previous screen.
type popScreenMsg struct{}

func popScreen() tea.Msg { return popScreenMsg{} }

// router is a stack of screens; the top one is active.
type router struct {
	stack []Screen
}

func newRouter(initial Screen) *router {
	return &router{stack: []Screen{initial}}
}

// reset replaces the whole stack and initializes the new top screen.
func (r *router) reset(screens ...Screen) tea.Cmd {
	r.stack = screens
	if top := r.active(); top != nil {
		return top.Init()
	}
	return nil
}

// pop removes the top screen, keeping at least one.
func (r *router) pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.active().Init()
}

func (r *router) active() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *router) depth() int {
	return len(r.stack)
}

// update forwards msg to the active screen.
func (r *router) update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(popScreenMsg); ok {
		return r.pop()
	}

	top := r.active()
	if top == nil {
		return nil
	}
	updated, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}
