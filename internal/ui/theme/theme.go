package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Primary matches the default subject color.
var (
	Primary   = lipgloss.Color("#E052C4") // Orchid
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#F5F5F4") // Stone
	TextDim   = lipgloss.Color("#A8A29E")
	BgCard    = lipgloss.Color("#292524")
	Border    = lipgloss.Color("#44403C")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Card faces.
var (
	CardLabel = lipgloss.NewStyle().
			Foreground(TextDim).
			Bold(true)

	CardFront = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Foreground(Text).
			Padding(1, 3).
			Align(lipgloss.Center)

	CardBack = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Foreground(Text).
			Padding(1, 3).
			Align(lipgloss.Center)
)

var (
	Known = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Unknown = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
