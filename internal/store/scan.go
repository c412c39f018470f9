package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	entitySubject = "subject"
	entityTopic   = "topic"
	entityCard    = "card"

	tableSubjects = "subjects"
	tableTopics   = "topics"
	tableCards    = "cards"
)

// Column lists match the field order of the scan functions below.
var (
	subjectColumns = []string{"id", "name", "color", "position", "created_at", "updated_at"}
	topicColumns   = []string{"id", "name", "subject_id", "color", "position", "created_at", "updated_at"}
	cardColumns    = []string{
		"id", "question", "answer", "topic_id", "position", "difficulty_level",
		"times_reviewed", "last_reviewed_at", "next_review_at", "ease_factor",
		"created_at", "updated_at",
	}
)

// timeLayout is ISO-8601 UTC with millisecond precision. Values sort
// lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Rows written by older versions used SQLite's datetime('now').
var legacyTimeLayouts = []string{"2006-01-02 15:04:05", time.RFC3339Nano}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range legacyTimeLayouts {
		if lt, lerr := time.Parse(layout, s); lerr == nil {
			return lt.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanner abstracts over *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func scanSubject(sc scanner) (*Subject, error) {
	var (
		s                Subject
		color            sql.NullString
		position         sql.NullInt64
		created, updated string
	)
	if err := sc.Scan(&s.ID, &s.Name, &color, &position, &created, &updated); err != nil {
		return nil, err
	}
	s.Color = stringOr(color, DefaultColor)
	s.Position = int(position.Int64)

	var err error
	if s.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanTopic(sc scanner) (*Topic, error) {
	var (
		t                Topic
		color            sql.NullString
		position         sql.NullInt64
		created, updated string
	)
	if err := sc.Scan(&t.ID, &t.Name, &t.SubjectID, &color, &position, &created, &updated); err != nil {
		return nil, err
	}
	t.Color = stringOr(color, DefaultColor)
	t.Position = int(position.Int64)

	var err error
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanCard(sc scanner) (*Card, error) {
	var (
		c                        Card
		position, difficulty     sql.NullInt64
		timesReviewed            sql.NullInt64
		lastReviewed, nextReview sql.NullString
		ease                     sql.NullFloat64
		created, updated         string
	)
	err := sc.Scan(
		&c.ID,
		&c.Question,
		&c.Answer,
		&c.TopicID,
		&position,
		&difficulty,
		&timesReviewed,
		&lastReviewed,
		&nextReview,
		&ease,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	c.Position = int(position.Int64)
	c.DifficultyLevel = DefaultDifficulty
	if difficulty.Valid {
		c.DifficultyLevel = int(difficulty.Int64)
	}
	c.TimesReviewed = int(timesReviewed.Int64)
	c.EaseFactor = DefaultEaseFactor
	if ease.Valid {
		c.EaseFactor = ease.Float64
	}

	if c.LastReviewedAt, err = parseNullTime(lastReviewed); err != nil {
		return nil, fmt.Errorf("last_reviewed_at: %w", err)
	}
	if c.NextReviewAt, err = parseNullTime(nextReview); err != nil {
		return nil, fmt.Errorf("next_review_at: %w", err)
	}
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}

func stringOr(ns sql.NullString, def string) string {
	if !ns.Valid || ns.String == "" {
		return def
	}
	return ns.String
}

// queryAll runs sel and decodes every row with scan. Rows are closed
// before returning so the single connection is free for the next query.
func queryAll[T any](ctx context.Context, q querier, sel *entsql.Selector, scan func(scanner) (*T, error)) ([]T, error) {
	query, args := sel.Query()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// queryOne runs sel and decodes a single row, returning missing when
// there is none.
func queryOne[T any](ctx context.Context, q querier, sel *entsql.Selector, scan func(scanner) (*T, error), missing error) (*T, error) {
	query, args := sel.Query()
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, missing
	}
	return v, err
}
