package spacedrep

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/KazantsevJS/mindflip/internal/store"
)

// CardStore is the slice of the card repository the scheduler needs.
type CardStore interface {
	Get(ctx context.Context, id int64) (*store.Card, error)
	UpdateReviewState(ctx context.Context, id int64, u store.ReviewUpdate) (*store.Card, error)
}

// Scheduler records review outcomes against stored cards.
type Scheduler struct {
	cards CardStore
	now   func() time.Time
	log   *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source used as the review time.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithLogger sets the logger for review records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// NewScheduler creates a scheduler backed by cards.
func NewScheduler(cards CardStore, opts ...Option) *Scheduler {
	s := &Scheduler{
		cards: cards,
		now:   time.Now,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordReview applies outcome to the card and returns the stored result.
// Store errors, including not-found, are returned as they come.
func (s *Scheduler) RecordReview(ctx context.Context, cardID int64, outcome Outcome) (*store.Card, error) {
	if !outcome.valid() {
		return nil, ErrInvalidOutcome
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, err
	}

	next, err := StateOf(card).Next(outcome, s.now())
	if err != nil {
		return nil, err
	}

	updated, err := s.cards.UpdateReviewState(ctx, cardID, store.ReviewUpdate{
		TimesReviewed:  next.TimesReviewed,
		LastReviewedAt: *next.LastReviewedAt,
		NextReviewAt:   *next.NextReviewAt,
		EaseFactor:     next.EaseFactor,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("review recorded",
		"card_id", cardID,
		"outcome", string(outcome),
		"ease_from", card.EaseFactor,
		"ease_to", updated.EaseFactor,
		"next_review_at", updated.NextReviewAt,
	)
	return updated, nil
}
