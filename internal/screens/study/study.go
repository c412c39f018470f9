// Package study is the flashcard carousel: one card at a time, flipped on
// demand and graded known or unknown.
package study

import (
	"context"
	"io"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/KazantsevJS/mindflip/internal/router"
	"github.com/KazantsevJS/mindflip/internal/screen"
	"github.com/KazantsevJS/mindflip/internal/screens/summary"
	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
	"github.com/KazantsevJS/mindflip/internal/ui/layout"
)

// Reviewer records a verdict against a stored card.
type Reviewer interface {
	RecordReview(ctx context.Context, cardID int64, outcome spacedrep.Outcome) (*store.Card, error)
}

// Screen walks a topic's cards in order.
type Screen struct {
	ctx      context.Context
	reviewer Reviewer
	log      *slog.Logger
	now      func() time.Time
	keys     keyMap

	sessionID string
	topic     store.Topic
	cards     []store.Card
	started   time.Time

	index   int
	flipped bool
	pending bool
	known   int
	unknown int
	err     error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.ProgressProvider = (*Screen)(nil)

// Option configures a Screen.
type Option func(*Screen)

func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Screen) { s.now = now }
}

// New creates a study session over cards, which are shown in the given order.
func New(ctx context.Context, reviewer Reviewer, topic store.Topic, cards []store.Card, opts ...Option) *Screen {
	s := &Screen{
		ctx:       ctx,
		reviewer:  reviewer,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
		keys:      defaultKeys(),
		sessionID: uuid.NewString(),
		topic:     topic,
		cards:     cards,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session_id", s.sessionID, "topic_id", topic.ID)
	s.started = s.now()
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.log.Info("study session started", "cards", len(s.cards))
	return nil
}

func (s *Screen) Title() string {
	return s.topic.Name
}

func (s *Screen) KeyHints() []layout.KeyHint {
	bindings := s.keys.bindings()
	if len(s.cards) == 0 {
		bindings = []key.Binding{s.keys.Quit}
	}
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc})
	}
	return hints
}

// Progress reports how many cards have been graded.
func (s *Screen) Progress() (done, total int) {
	return s.index, len(s.cards)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	case reviewRecordedMsg:
		return s.handleRecorded(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		s.log.Info("study session abandoned", "graded", s.index, "cards", len(s.cards))
		return s, tea.Quit
	case len(s.cards) == 0 || s.pending:
		return s, nil
	case key.Matches(msg, s.keys.Flip):
		s.flipped = !s.flipped
		return s, nil
	case key.Matches(msg, s.keys.Known):
		return s, s.grade(spacedrep.Known)
	case key.Matches(msg, s.keys.Unknown):
		return s, s.grade(spacedrep.Unknown)
	}
	return s, nil
}

func (s *Screen) grade(outcome spacedrep.Outcome) tea.Cmd {
	s.pending = true
	s.err = nil
	ctx, reviewer, cardID := s.ctx, s.reviewer, s.cards[s.index].ID
	return func() tea.Msg {
		card, err := reviewer.RecordReview(ctx, cardID, outcome)
		return reviewRecordedMsg{CardID: cardID, Outcome: outcome, Card: card, Err: err}
	}
}

func (s *Screen) handleRecorded(msg reviewRecordedMsg) (screen.Screen, tea.Cmd) {
	s.pending = false
	if msg.Err != nil {
		// Stay on the card so the verdict can be retried.
		s.err = msg.Err
		s.log.Error("record review", "card_id", msg.CardID, "error", msg.Err)
		return s, nil
	}

	if msg.Outcome == spacedrep.Known {
		s.known++
	} else {
		s.unknown++
	}
	s.log.Debug("card graded", "card_id", msg.CardID, "outcome", string(msg.Outcome))

	s.index++
	s.flipped = false
	if s.index < len(s.cards) {
		return s, nil
	}
	return s, s.finish()
}

func (s *Screen) finish() tea.Cmd {
	res := summary.Result{
		Topic:    s.topic.Name,
		Total:    len(s.cards),
		Known:    s.known,
		Unknown:  s.unknown,
		Duration: s.now().Sub(s.started),
	}
	s.log.Info("study session finished", "known", res.Known, "unknown", res.Unknown, "duration", res.Duration)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(res)}
	}
}
