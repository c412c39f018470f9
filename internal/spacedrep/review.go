package spacedrep

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/KazantsevJS/mindflip/internal/store"
)

// ErrInvalidOutcome is returned for an outcome other than known or unknown.
var ErrInvalidOutcome = errors.New("invalid review outcome")

// Outcome is the learner's verdict on a card.
type Outcome string

const (
	Known   Outcome = "known"
	Unknown Outcome = "unknown"
)

// ParseOutcome accepts "known"/"unknown" and the y/n shorthands.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "known", "k", "y", "yes":
		return Known, nil
	case "unknown", "u", "n", "no":
		return Unknown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
}

func (o Outcome) valid() bool {
	return o == Known || o == Unknown
}

// ReviewState holds the scheduling state of a single card.
type ReviewState struct {
	EaseFactor     float64    `json:"ease_factor"`
	TimesReviewed  int        `json:"times_reviewed"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	NextReviewAt   *time.Time `json:"next_review_at"`
}

// StateOf extracts the review state of a card.
func StateOf(c *store.Card) ReviewState {
	return ReviewState{
		EaseFactor:     c.EaseFactor,
		TimesReviewed:  c.TimesReviewed,
		LastReviewedAt: c.LastReviewedAt,
		NextReviewAt:   c.NextReviewAt,
	}
}

// Next computes the state after a review at now. The receiver is not modified.
//
// A known card gains KnownEaseStep (capped at MaxEaseFactor) and is due
// again after ceil(newEase*2) days, computed from the updated ease. An
// unknown card loses UnknownEaseStep (floored at MinEaseFactor) and is due
// the next day.
func (rs ReviewState) Next(outcome Outcome, now time.Time) (ReviewState, error) {
	if !outcome.valid() {
		return rs, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}

	now = now.UTC()
	next := ReviewState{
		TimesReviewed:  rs.TimesReviewed + 1,
		LastReviewedAt: &now,
	}

	var days int
	if outcome == Known {
		next.EaseFactor = math.Min(rs.EaseFactor+KnownEaseStep, MaxEaseFactor)
		days = IntervalDays(next.EaseFactor)
	} else {
		next.EaseFactor = math.Max(rs.EaseFactor-UnknownEaseStep, MinEaseFactor)
		days = RelearnIntervalDays
	}

	due := now.AddDate(0, 0, days)
	next.NextReviewAt = &due
	return next, nil
}

// IntervalDays returns the number of days until the next review for a
// known card with the given ease.
func IntervalDays(ease float64) int {
	return int(math.Ceil(ease * IntervalMultiplier))
}

// IsDue returns true if the card has been reviewed and its next review
// is at or before now.
func (rs ReviewState) IsDue(now time.Time) bool {
	return rs.NextReviewAt != nil && !now.Before(*rs.NextReviewAt)
}

// OverdueDays returns how many days past due the card is. Returns 0 if
// not yet due or never reviewed.
func (rs ReviewState) OverdueDays(now time.Time) float64 {
	if !rs.IsDue(now) {
		return 0
	}
	return now.Sub(*rs.NextReviewAt).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due or never reviewed.
func (rs ReviewState) DaysUntilReview(now time.Time) int {
	if rs.NextReviewAt == nil || rs.IsDue(now) {
		return 0
	}
	return int(rs.NextReviewAt.Sub(now).Hours()/24.0) + 1
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew    ReviewStatus = "new"
	ReviewDue    ReviewStatus = "due"
	ReviewNotDue ReviewStatus = "scheduled"
)

// Status returns the review status for display.
func (rs ReviewState) Status(now time.Time) ReviewStatus {
	switch {
	case rs.LastReviewedAt == nil:
		return ReviewNew
	case rs.IsDue(now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// FilterStudyable keeps the cards worth studying at now: new cards and
// cards that are due. Order is preserved.
func FilterStudyable(cards []store.Card, now time.Time) []store.Card {
	out := make([]store.Card, 0, len(cards))
	for _, c := range cards {
		if st := StateOf(&c).Status(now); st == ReviewNew || st == ReviewDue {
			out = append(out, c)
		}
	}
	return out
}
