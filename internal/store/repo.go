package store

import (
	"context"
	"time"
)

// Subject is a top-level study category.
type Subject struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Topic groups cards within a subject.
type Topic struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SubjectID int64     `json:"subject_id"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Card is a single question/answer pair within a topic, together with
// its review state.
type Card struct {
	ID              int64      `json:"id"`
	Question        string     `json:"question"`
	Answer          string     `json:"answer"`
	TopicID         int64      `json:"topic_id"`
	Position        int        `json:"position"`
	DifficultyLevel int        `json:"difficulty_level"`
	TimesReviewed   int        `json:"times_reviewed"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at"`
	NextReviewAt    *time.Time `json:"next_review_at"`
	EaseFactor      float64    `json:"ease_factor"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Reviewed reports whether at least one review has been recorded.
func (c *Card) Reviewed() bool {
	return c.LastReviewedAt != nil
}

// Defaults for new cards.
const (
	DefaultDifficulty = 3
	DefaultEaseFactor = 2.5
)

// SubjectInput is the payload for creating a subject. An empty Color
// falls back to the store's default color.
type SubjectInput struct {
	Name  string `validate:"required,max=200"`
	Color string `validate:"omitempty,hexcolor"`
}

// TopicInput is the payload for creating a topic.
type TopicInput struct {
	Name      string `validate:"required,max=200"`
	SubjectID int64  `validate:"required,gt=0"`
	Color     string `validate:"omitempty,hexcolor"`
}

// CardInput is the payload for creating a card. DifficultyLevel 0 means
// DefaultDifficulty.
type CardInput struct {
	Question        string `validate:"required"`
	Answer          string `validate:"required"`
	TopicID         int64  `validate:"required,gt=0"`
	DifficultyLevel int    `validate:"omitempty,min=1,max=5"`
}

// SubjectPatch lists the subject fields an update may change.
// Nil fields are left untouched.
type SubjectPatch struct {
	Name     *string `validate:"omitnil,min=1,max=200"`
	Color    *string `validate:"omitnil,hexcolor"`
	Position *int    `validate:"omitnil,min=0"`
}

// TopicPatch lists the topic fields an update may change. Setting
// SubjectID moves the topic, cards included, to another subject.
type TopicPatch struct {
	Name      *string `validate:"omitnil,min=1,max=200"`
	SubjectID *int64  `validate:"omitnil,gt=0"`
	Color     *string `validate:"omitnil,hexcolor"`
	Position  *int    `validate:"omitnil,min=0"`
}

// CardPatch lists the card fields an update may change. Review state is
// absent on purpose: only UpdateReviewState writes it.
type CardPatch struct {
	Question        *string `validate:"omitnil,min=1"`
	Answer          *string `validate:"omitnil,min=1"`
	TopicID         *int64  `validate:"omitnil,gt=0"`
	Position        *int    `validate:"omitnil,min=0"`
	DifficultyLevel *int    `validate:"omitnil,min=1,max=5"`
}

// ReviewUpdate is the review state written after a review is scored.
type ReviewUpdate struct {
	TimesReviewed  int
	LastReviewedAt time.Time
	NextReviewAt   time.Time
	EaseFactor     float64
}

// SubjectRepo manages subjects.
type SubjectRepo interface {
	// List returns every subject ordered by position, then creation time.
	List(ctx context.Context) ([]Subject, error)

	Get(ctx context.Context, id int64) (*Subject, error)
	Create(ctx context.Context, in SubjectInput) (*Subject, error)
	Update(ctx context.Context, id int64, p SubjectPatch) (*Subject, error)

	// Delete removes the subject with its topics and their cards.
	Delete(ctx context.Context, id int64) error
}

// TopicRepo manages topics.
type TopicRepo interface {
	// ListBySubject returns the subject's topics ordered by position,
	// then creation time. An unknown subject yields an empty slice.
	ListBySubject(ctx context.Context, subjectID int64) ([]Topic, error)

	Get(ctx context.Context, id int64) (*Topic, error)
	Create(ctx context.Context, in TopicInput) (*Topic, error)
	Update(ctx context.Context, id int64, p TopicPatch) (*Topic, error)

	// Delete removes the topic and its cards.
	Delete(ctx context.Context, id int64) error
}

// CardRepo manages cards.
type CardRepo interface {
	// ListByTopic returns the topic's cards ordered by position, then
	// creation time. An unknown topic yields an empty slice.
	ListByTopic(ctx context.Context, topicID int64) ([]Card, error)

	Get(ctx context.Context, id int64) (*Card, error)
	Create(ctx context.Context, in CardInput) (*Card, error)
	Update(ctx context.Context, id int64, p CardPatch) (*Card, error)
	Delete(ctx context.Context, id int64) error

	// UpdateReviewState overwrites the card's review state.
	UpdateReviewState(ctx context.Context, id int64, u ReviewUpdate) (*Card, error)

	// ListDue returns reviewed cards whose next review is at or before now,
	// earliest first. limit <= 0 means no limit.
	ListDue(ctx context.Context, now time.Time, limit int) ([]Card, error)
}
