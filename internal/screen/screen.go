package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/KazantsevJS/mindflip/internal/ui/layout"
)

// Screen is one page of the study UI.
type Screen interface {
	// Init returns a command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body, without header or footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressProvider is implemented by screens that report progress through
// a deck, shown on the right of the header.
type ProgressProvider interface {
	Progress() (done, total int)
}
