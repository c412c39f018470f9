package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/KazantsevJS/mindflip/internal/router"
	"github.com/KazantsevJS/mindflip/internal/screen"
	"github.com/KazantsevJS/mindflip/internal/ui/layout"
	"github.com/KazantsevJS/mindflip/internal/ui/theme"
)

// Result is what a finished study session reports.
type Result struct {
	Topic    string
	Total    int
	Known    int
	Unknown  int
	Duration time.Duration
}

// KnownRatio is the share of graded cards marked known.
func (r Result) KnownRatio() float64 {
	graded := r.Known + r.Unknown
	if graded == 0 {
		return 0
	}
	return float64(r.Known) / float64(graded)
}

// Screen displays the session summary.
type Screen struct {
	result Result
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(r Result) *Screen {
	return &Screen{result: r}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Session Summary"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	r := s.result
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Session complete!"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), r.Topic))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := theme.Known.Render(fmt.Sprintf("Known: %d", r.Known)) +
		"        " +
		theme.Unknown.Render(fmt.Sprintf("Again: %d", r.Unknown)) +
		"        " +
		lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("Cards: %d", r.Total))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stats))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("%.0f%% known", r.KnownRatio()*100)))
	return b.String()
}
