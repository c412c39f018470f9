package study

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/KazantsevJS/mindflip/internal/ui/components"
	"github.com/KazantsevJS/mindflip/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if len(s.cards) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				theme.Title.Render("No cards to study"),
				"",
				theme.Subtitle.Render("Add one with: mindflip card add"),
			))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar(s.index, len(s.cards), min(width-8, 60)).View()))
	b.WriteString("\n\n")

	if s.index < len(s.cards) {
		c := s.cards[s.index]
		card := components.Flashcard{
			Question: c.Question,
			Answer:   c.Answer,
			Flipped:  s.flipped,
			Width:    width,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card.View()))
		b.WriteString("\n\n")
	}

	tally := theme.Known.Render("known "+strconv.Itoa(s.known)) + "    " + theme.Unknown.Render("again "+strconv.Itoa(s.unknown))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, tally))
	b.WriteString("\n")

	switch {
	case s.pending:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("saving...")))
	case s.err != nil:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Unknown.Render("Could not save review: "+s.err.Error())))
	}
	return b.String()
}
