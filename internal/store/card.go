package store

import (
	"context"
	"database/sql"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type cardRepo struct {
	s *Store
}

func (r *cardRepo) selectCards() *entsql.Selector {
	b := builder()
	return b.Select(cardColumns...).From(b.Table(tableCards))
}

func (r *cardRepo) ListByTopic(ctx context.Context, topicID int64) ([]Card, error) {
	sel := r.selectCards().
		Where(entsql.EQ("topic_id", topicID)).
		OrderBy("position", "created_at", "id")
	out, err := queryAll(ctx, r.s.db, sel, scanCard)
	if err != nil {
		return nil, &OpError{Op: "list", Entity: entityCard, Err: err}
	}
	return out, nil
}

func (r *cardRepo) Get(ctx context.Context, id int64) (*Card, error) {
	sel := r.selectCards().Where(entsql.EQ("id", id))
	c, err := queryOne(ctx, r.s.db, sel, scanCard, ErrCardNotFound)
	if err != nil {
		return nil, &OpError{Op: "get", Entity: entityCard, ID: id, Err: err}
	}
	return c, nil
}

func (r *cardRepo) Create(ctx context.Context, in CardInput) (*Card, error) {
	in.Question = clean(in.Question)
	in.Answer = clean(in.Answer)
	if err := r.s.check(in); err != nil {
		return nil, &OpError{Op: "create", Entity: entityCard, Err: err}
	}
	if in.DifficultyLevel == 0 {
		in.DifficultyLevel = DefaultDifficulty
	}

	var id int64
	err := r.s.write(ctx, func(tx *sql.Tx) error {
		pos, err := nextPosition(ctx, tx, tableCards, "topic_id", in.TopicID)
		if err != nil {
			return err
		}
		// Review state is left to the column defaults.
		now := formatTime(r.s.now())
		id, err = insert(ctx, tx, builder().Insert(tableCards).
			Columns("question", "answer", "topic_id", "position", "difficulty_level", "created_at", "updated_at").
			Values(in.Question, in.Answer, in.TopicID, pos, in.DifficultyLevel, now, now))
		return err
	})
	if err != nil {
		return nil, &OpError{Op: "create", Entity: entityCard, ID: id, Err: err}
	}
	return r.Get(ctx, id)
}

func (r *cardRepo) Update(ctx context.Context, id int64, p CardPatch) (*Card, error) {
	p.Question = cleanPtr(p.Question)
	p.Answer = cleanPtr(p.Answer)
	if err := r.s.check(p); err != nil {
		return nil, &OpError{Op: "update", Entity: entityCard, ID: id, Err: err}
	}

	upd := builder().Update(tableCards)
	if p.Question != nil {
		upd.Set("question", *p.Question)
	}
	if p.Answer != nil {
		upd.Set("answer", *p.Answer)
	}
	if p.TopicID != nil {
		upd.Set("topic_id", *p.TopicID)
	}
	if p.Position != nil {
		upd.Set("position", *p.Position)
	}
	if p.DifficultyLevel != nil {
		upd.Set("difficulty_level", *p.DifficultyLevel)
	}
	return r.apply(ctx, "update", id, upd)
}

func (r *cardRepo) UpdateReviewState(ctx context.Context, id int64, u ReviewUpdate) (*Card, error) {
	upd := builder().Update(tableCards).
		Set("times_reviewed", u.TimesReviewed).
		Set("last_reviewed_at", formatTime(u.LastReviewedAt)).
		Set("next_review_at", formatTime(u.NextReviewAt)).
		Set("ease_factor", u.EaseFactor)
	return r.apply(ctx, "review", id, upd)
}

// apply stamps updated_at, runs upd against card id and re-reads the row.
func (r *cardRepo) apply(ctx context.Context, op string, id int64, upd *entsql.UpdateBuilder) (*Card, error) {
	upd.Set("updated_at", formatTime(r.s.now())).Where(entsql.EQ("id", id))
	err := r.s.write(ctx, func(tx *sql.Tx) error {
		return update(ctx, tx, upd, ErrCardNotFound)
	})
	if err != nil {
		return nil, &OpError{Op: op, Entity: entityCard, ID: id, Err: err}
	}
	return r.Get(ctx, id)
}

func (r *cardRepo) Delete(ctx context.Context, id int64) error {
	if err := r.s.remove(ctx, tableCards, entityCard, id); err != nil {
		return &OpError{Op: "delete", Entity: entityCard, ID: id, Err: err}
	}
	return nil
}

func (r *cardRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]Card, error) {
	sel := r.selectCards().
		Where(entsql.And(
			entsql.NotNull("next_review_at"),
			entsql.LTE("next_review_at", formatTime(now)),
		)).
		OrderBy("next_review_at", "position", "id")
	if limit > 0 {
		sel.Limit(limit)
	}
	out, err := queryAll(ctx, r.s.db, sel, scanCard)
	if err != nil {
		return nil, &OpError{Op: "list due", Entity: entityCard, Err: err}
	}
	return out, nil
}
