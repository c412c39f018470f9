package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedTopic(t *testing.T, s *Store) *Topic {
	t.Helper()
	ctx := context.Background()
	subj, err := s.Subjects().Create(ctx, SubjectInput{Name: "Biology"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	topic, err := s.Topics().Create(ctx, TopicInput{Name: "Cells", SubjectID: subj.ID})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func TestCardCreateDefaults(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	ctx := context.Background()

	card, err := s.Cards().Create(ctx, CardInput{Question: "What is a ribosome?", Answer: "A protein factory", TopicID: topic.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if card.DifficultyLevel != DefaultDifficulty {
		t.Errorf("difficulty = %d, want %d", card.DifficultyLevel, DefaultDifficulty)
	}
	if card.EaseFactor != DefaultEaseFactor {
		t.Errorf("ease = %v, want %v", card.EaseFactor, DefaultEaseFactor)
	}
	if card.TimesReviewed != 0 || card.Reviewed() || card.NextReviewAt != nil {
		t.Errorf("new card has review state: %+v", card)
	}
	if card.Position != 0 {
		t.Errorf("position = %d, want 0", card.Position)
	}

	got, err := s.Cards().Get(ctx, card.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Question != card.Question || got.Answer != card.Answer || got.TopicID != topic.ID ||
		got.DifficultyLevel != card.DifficultyLevel || !got.CreatedAt.Equal(card.CreatedAt) {
		t.Errorf("get = %+v, want %+v", got, card)
	}
}

func TestCardValidation(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CardInput
	}{
		{"empty question", CardInput{Question: " ", Answer: "a", TopicID: topic.ID}},
		{"empty answer", CardInput{Question: "q", Answer: "", TopicID: topic.ID}},
		{"no topic", CardInput{Question: "q", Answer: "a"}},
		{"difficulty too high", CardInput{Question: "q", Answer: "a", TopicID: topic.ID, DifficultyLevel: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Cards().Create(ctx, tt.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCardUnknownTopic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Cards().Create(ctx, CardInput{Question: "q", Answer: "a", TopicID: 7}); !errors.Is(err, ErrConstraint) {
		t.Errorf("err = %v, want ErrConstraint", err)
	}
}

func TestCardUpdatePartial(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	other, _ := s.Topics().Create(context.Background(), TopicInput{Name: "Other", SubjectID: topic.SubjectID})
	ctx := context.Background()

	card, _ := s.Cards().Create(ctx, CardInput{Question: "2+2", Answer: "4", TopicID: topic.ID, DifficultyLevel: 1})
	got, err := s.Cards().Update(ctx, card.ID, CardPatch{Answer: ptr("four"), TopicID: ptr(other.ID)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Answer != "four" || got.TopicID != other.ID {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Question != "2+2" || got.DifficultyLevel != 1 || got.EaseFactor != card.EaseFactor {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(card.UpdatedAt) {
		t.Error("updated_at not refreshed")
	}

	if _, err := s.Cards().Update(ctx, 404, CardPatch{Answer: ptr("x")}); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing card: err = %v, want ErrCardNotFound", err)
	}
}

func TestCardUpdateReviewState(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	ctx := context.Background()

	card, _ := s.Cards().Create(ctx, CardInput{Question: "q", Answer: "a", TopicID: topic.ID})
	reviewed := time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)
	next := reviewed.AddDate(0, 0, 5)

	got, err := s.Cards().UpdateReviewState(ctx, card.ID, ReviewUpdate{
		TimesReviewed:  1,
		LastReviewedAt: reviewed,
		NextReviewAt:   next,
		EaseFactor:     2.15,
	})
	if err != nil {
		t.Fatalf("update review state: %v", err)
	}
	if got.TimesReviewed != 1 || got.EaseFactor != 2.15 {
		t.Errorf("review state = %+v", got)
	}
	if got.LastReviewedAt == nil || !got.LastReviewedAt.Equal(reviewed) {
		t.Errorf("last_reviewed_at = %v, want %v", got.LastReviewedAt, reviewed)
	}
	if got.NextReviewAt == nil || !got.NextReviewAt.Equal(next) {
		t.Errorf("next_review_at = %v, want %v", got.NextReviewAt, next)
	}

	var stored string
	if err := s.DB().QueryRow("SELECT next_review_at FROM cards WHERE id = ?", card.ID).Scan(&stored); err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if stored != "2025-02-06T08:30:00.000Z" {
		t.Errorf("stored next_review_at = %q", stored)
	}

	if _, err := s.Cards().UpdateReviewState(ctx, 404, ReviewUpdate{}); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("missing card: err = %v, want ErrCardNotFound", err)
	}
}

func TestCardDelete(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	ctx := context.Background()

	a, _ := s.Cards().Create(ctx, CardInput{Question: "a", Answer: "a", TopicID: topic.ID})
	b, _ := s.Cards().Create(ctx, CardInput{Question: "b", Answer: "b", TopicID: topic.ID})

	if err := s.Cards().Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Cards().Delete(ctx, a.ID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("second delete: err = %v, want ErrCardNotFound", err)
	}

	list, _ := s.Cards().ListByTopic(ctx, topic.ID)
	if len(list) != 1 || list[0].ID != b.ID || list[0].Position != 1 {
		t.Errorf("remaining cards = %+v, want only b at position 1", list)
	}
}

func TestCardListDue(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	review := func(q string, next time.Time) *Card {
		c, err := s.Cards().Create(ctx, CardInput{Question: q, Answer: "a", TopicID: topic.ID})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		c, err = s.Cards().UpdateReviewState(ctx, c.ID, ReviewUpdate{
			TimesReviewed: 1, LastReviewedAt: next.AddDate(0, 0, -1), NextReviewAt: next, EaseFactor: 2.5,
		})
		if err != nil {
			t.Fatalf("review: %v", err)
		}
		return c
	}

	late := review("late", now.Add(-time.Hour))
	early := review("early", now.AddDate(0, 0, -3))
	review("future", now.AddDate(0, 0, 2))
	exact := review("exact", now)
	if _, err := s.Cards().Create(ctx, CardInput{Question: "new", Answer: "a", TopicID: topic.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	due, err := s.Cards().ListDue(ctx, now, 0)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	want := []int64{early.ID, late.ID, exact.ID}
	if len(due) != len(want) {
		t.Fatalf("due = %d cards, want %d", len(due), len(want))
	}
	for i, c := range due {
		if c.ID != want[i] {
			t.Errorf("due[%d] = %d (%s), want %d", i, c.ID, c.Question, want[i])
		}
	}

	limited, _ := s.Cards().ListDue(ctx, now, 2)
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d cards", len(limited))
	}
}

func TestStatsAndReset(t *testing.T) {
	s := openTestStore(t)
	topic := seedTopic(t, s)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	a, _ := s.Cards().Create(ctx, CardInput{Question: "a", Answer: "a", TopicID: topic.ID})
	s.Cards().Create(ctx, CardInput{Question: "b", Answer: "b", TopicID: topic.ID})
	s.Cards().UpdateReviewState(ctx, a.ID, ReviewUpdate{
		TimesReviewed: 2, LastReviewedAt: now.AddDate(0, 0, -2), NextReviewAt: now.AddDate(0, 0, -1), EaseFactor: 1.5,
	})

	st, err := s.Stats(ctx, now)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := Stats{Subjects: 1, Topics: 1, Cards: 2, ReviewedCards: 1, DueCards: 1, AvgEaseFactor: 2.0, TotalReviews: 2}
	if *st != want {
		t.Errorf("stats = %+v, want %+v", *st, want)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, _ = s.Stats(ctx, now)
	if *st != (Stats{}) {
		t.Errorf("stats after reset = %+v", *st)
	}
}
