package store

import (
	"context"
	"database/sql"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Stats summarizes the contents of the store.
type Stats struct {
	Subjects      int     `json:"subjects"`
	Topics        int     `json:"topics"`
	Cards         int     `json:"cards"`
	ReviewedCards int     `json:"reviewed_cards"`
	DueCards      int     `json:"due_cards"`
	AvgEaseFactor float64 `json:"avg_ease_factor"`
	TotalReviews  int     `json:"total_reviews"`
}

// Stats counts entities and review progress as of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	var st Stats
	counts := []struct {
		dst   *int
		table string
		where *entsql.Predicate
	}{
		{&st.Subjects, tableSubjects, nil},
		{&st.Topics, tableTopics, nil},
		{&st.Cards, tableCards, nil},
		{&st.ReviewedCards, tableCards, entsql.NotNull("last_reviewed_at")},
		{&st.DueCards, tableCards, entsql.And(
			entsql.NotNull("next_review_at"),
			entsql.LTE("next_review_at", formatTime(now)),
		)},
	}
	for _, c := range counts {
		b := builder()
		sel := b.Select(entsql.Count("*")).From(b.Table(c.table))
		if c.where != nil {
			sel.Where(c.where)
		}
		query, args := sel.Query()
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(c.dst); err != nil {
			return nil, &OpError{Op: "stats", Entity: c.table, Err: err}
		}
	}

	b := builder()
	query, args := b.Select("AVG(ease_factor)", "SUM(times_reviewed)").From(b.Table(tableCards)).Query()
	var (
		avg   sql.NullFloat64
		total sql.NullInt64
	)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&avg, &total); err != nil {
		return nil, &OpError{Op: "stats", Entity: entityCard, Err: err}
	}
	st.AvgEaseFactor = avg.Float64
	st.TotalReviews = int(total.Int64)
	return &st, nil
}

// Reset deletes every subject, and with them all topics and cards.
func (s *Store) Reset(ctx context.Context) error {
	err := s.write(ctx, func(tx *sql.Tx) error {
		query, args := builder().Delete(tableSubjects).Query()
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return &OpError{Op: "reset", Err: err}
	}
	return nil
}
