package store

import (
	"context"
	"database/sql"

	entsql "entgo.io/ent/dialect/sql"
)

type topicRepo struct {
	s *Store
}

func (r *topicRepo) selectTopics() *entsql.Selector {
	b := builder()
	return b.Select(topicColumns...).From(b.Table(tableTopics))
}

func (r *topicRepo) ListBySubject(ctx context.Context, subjectID int64) ([]Topic, error) {
	sel := r.selectTopics().
		Where(entsql.EQ("subject_id", subjectID)).
		OrderBy("position", "created_at", "id")
	out, err := queryAll(ctx, r.s.db, sel, scanTopic)
	if err != nil {
		return nil, &OpError{Op: "list", Entity: entityTopic, Err: err}
	}
	return out, nil
}

func (r *topicRepo) Get(ctx context.Context, id int64) (*Topic, error) {
	sel := r.selectTopics().Where(entsql.EQ("id", id))
	t, err := queryOne(ctx, r.s.db, sel, scanTopic, ErrTopicNotFound)
	if err != nil {
		return nil, &OpError{Op: "get", Entity: entityTopic, ID: id, Err: err}
	}
	return t, nil
}

func (r *topicRepo) Create(ctx context.Context, in TopicInput) (*Topic, error) {
	in.Name = clean(in.Name)
	if err := r.s.check(in); err != nil {
		return nil, &OpError{Op: "create", Entity: entityTopic, Err: err}
	}

	var id int64
	err := r.s.write(ctx, func(tx *sql.Tx) error {
		pos, err := nextPosition(ctx, tx, tableTopics, "subject_id", in.SubjectID)
		if err != nil {
			return err
		}
		now := formatTime(r.s.now())
		id, err = insert(ctx, tx, builder().Insert(tableTopics).
			Columns("name", "subject_id", "color", "position", "created_at", "updated_at").
			Values(in.Name, in.SubjectID, r.s.colorOrDefault(in.Color), pos, now, now))
		return err
	})
	if err != nil {
		return nil, &OpError{Op: "create", Entity: entityTopic, ID: id, Err: err}
	}
	return r.Get(ctx, id)
}

func (r *topicRepo) Update(ctx context.Context, id int64, p TopicPatch) (*Topic, error) {
	p.Name = cleanPtr(p.Name)
	p.Color = lowerPtr(p.Color)
	if err := r.s.check(p); err != nil {
		return nil, &OpError{Op: "update", Entity: entityTopic, ID: id, Err: err}
	}

	upd := builder().Update(tableTopics)
	if p.Name != nil {
		upd.Set("name", *p.Name)
	}
	if p.SubjectID != nil {
		upd.Set("subject_id", *p.SubjectID)
	}
	if p.Color != nil {
		upd.Set("color", *p.Color)
	}
	if p.Position != nil {
		upd.Set("position", *p.Position)
	}
	upd.Set("updated_at", formatTime(r.s.now())).Where(entsql.EQ("id", id))

	err := r.s.write(ctx, func(tx *sql.Tx) error {
		return update(ctx, tx, upd, ErrTopicNotFound)
	})
	if err != nil {
		return nil, &OpError{Op: "update", Entity: entityTopic, ID: id, Err: err}
	}
	return r.Get(ctx, id)
}

func (r *topicRepo) Delete(ctx context.Context, id int64) error {
	if err := r.s.remove(ctx, tableTopics, entityTopic, id); err != nil {
		return &OpError{Op: "delete", Entity: entityTopic, ID: id, Err: err}
	}
	return nil
}
