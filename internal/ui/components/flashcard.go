package components

import (
	"charm.land/lipgloss/v2"

	"github.com/KazantsevJS/mindflip/internal/ui/theme"
)

// Flashcard renders one face of a card.
type Flashcard struct {
	Question string
	Answer   string
	Flipped  bool
	Width    int
}

// View renders the question, or the answer once flipped.
func (f Flashcard) View() string {
	label, text, style := "QUESTION", f.Question, theme.CardFront
	if f.Flipped {
		label, text, style = "ANSWER", f.Answer, theme.CardBack
	}

	width := max(min(f.Width-4, 64), 20)
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.CardLabel.Render(label),
		"",
		lipgloss.NewStyle().Width(width-8).Align(lipgloss.Center).Render(text),
	)
	return style.Width(width).Render(body)
}
