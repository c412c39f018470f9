package store

import (
	"context"
	"database/sql"

	entsql "entgo.io/ent/dialect/sql"
)

type subjectRepo struct {
	s *Store
}

func (r *subjectRepo) selectSubjects() *entsql.Selector {
	b := builder()
	return b.Select(subjectColumns...).From(b.Table(tableSubjects))
}

func (r *subjectRepo) List(ctx context.Context) ([]Subject, error) {
	sel := r.selectSubjects().OrderBy("position", "created_at", "id")
	out, err := queryAll(ctx, r.s.db, sel, scanSubject)
	if err != nil {
		return nil, &OpError{Op: "list", Entity: entitySubject, Err: err}
	}
	return out, nil
}

func (r *subjectRepo) Get(ctx context.Context, id int64) (*Subject, error) {
	sel := r.selectSubjects().Where(entsql.EQ("id", id))
	subj, err := queryOne(ctx, r.s.db, sel, scanSubject, ErrSubjectNotFound)
	if err != nil {
		return nil, &OpError{Op: "get", Entity: entitySubject, ID: id, Err: err}
	}
	return subj, nil
}

func (r *subjectRepo) Create(ctx context.Context, in SubjectInput) (*Subject, error) {
	in.Name = clean(in.Name)
	if err := r.s.check(in); err != nil {
		return nil, &OpError{Op: "create", Entity: entitySubject, Err: err}
	}

	var id int64
	err := r.s.write(ctx, func(tx *sql.Tx) error {
		pos, err := nextPosition(ctx, tx, tableSubjects, "", 0)
		if err != nil {
			return err
		}
		now := formatTime(r.s.now())
		id, err = insert(ctx, tx, builder().Insert(tableSubjects).
			Columns("name", "color", "position", "created_at", "updated_at").
			Values(in.Name, r.s.colorOrDefault(in.Color), pos, now, now))
		return err
	})
	if err != nil {
		return nil, &OpError{Op: "create", Entity: entitySubject, ID: id, Err: err}
	}
	return r.Get(ctx, id)
}

func (r *subjectRepo) Update(ctx context.Context, id int64, p SubjectPatch) (*Subject, error) {
	p.Name = cleanPtr(p.Name)
	p.Color = lowerPtr(p.Color)
	if err := r.s.check(p); err != nil {
		return nil, &OpError{Op: "update", Entity: entitySubject, ID: id, Err: err}
	}

	upd := builder().Update(tableSubjects)
	if p.Name != nil {
		upd.Set("name", *p.Name)
	}
	if p.Color != nil {
		upd.Set("color", *p.Color)
	}
	if p.Position != nil {
		upd.Set("position", *p.Position)
	}
	upd.Set("updated_at", formatTime(r.s.now())).Where(entsql.EQ("id", id))

	err := r.s.write(ctx, func(tx *sql.Tx) error {
		return update(ctx, tx, upd, ErrSubjectNotFound)
	})
	if err != nil {
		return nil, &OpError{Op: "update", Entity: entitySubject, ID: id, Err: err}
	}
	return r.Get(ctx, id)
}

func (r *subjectRepo) Delete(ctx context.Context, id int64) error {
	if err := r.s.remove(ctx, tableSubjects, entitySubject, id); err != nil {
		return &OpError{Op: "delete", Entity: entitySubject, ID: id, Err: err}
	}
	return nil
}
