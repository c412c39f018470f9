package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/KazantsevJS/mindflip/internal/router"
	"github.com/KazantsevJS/mindflip/internal/screen"
	"github.com/KazantsevJS/mindflip/internal/ui/layout"
)

// AppModel is the root Bubble Tea model. It owns the frame and delegates
// the body to the active screen.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(initial screen.Screen) AppModel {
	return AppModel{router: router.New(initial)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var (
		title    string
		progress string
		hints    = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	)
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.ProgressProvider); ok {
			done, total := p.Progress()
			progress = fmt.Sprintf("%d/%d  ", done, total)
		}
		if kh, ok := active.(screen.KeyHintProvider); ok {
			hints = kh.KeyHints()
		}
	}

	header := layout.RenderHeader(title, progress, m.width)
	footer := layout.RenderFooter(hints, m.width)
	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run shows initial full-screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, initial screen.Screen) error {
	p := tea.NewProgram(newAppModel(initial), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run study UI: %w", err)
	}
	return nil
}
