package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// write runs fn in a transaction, commits and flushes. A mutation is
// complete only once the flush has succeeded.
func (s *Store) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit: %w", err))
	}
	return s.flush(ctx)
}

// nextPosition returns max(position)+1 within the scope, or 0 when the
// scope is empty. parentCol is empty for root entities.
func nextPosition(ctx context.Context, q querier, table, parentCol string, parentID int64) (int, error) {
	b := builder()
	sel := b.Select("COALESCE(MAX(position), -1) + 1").From(b.Table(table))
	if parentCol != "" {
		sel.Where(entsql.EQ(parentCol, parentID))
	}
	query, args := sel.Query()

	var pos int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&pos); err != nil {
		return 0, fmt.Errorf("next position in %s: %w", table, err)
	}
	return pos, nil
}

// exists reports whether table has a row with the given id.
func exists(ctx context.Context, q querier, table string, id int64) (bool, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(table)).
		Where(entsql.EQ("id", id)).
		Query()

	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func insert(ctx context.Context, q querier, ins *entsql.InsertBuilder) (int64, error) {
	query, args := ins.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// update runs upd and reports missing when no row matched.
func update(ctx context.Context, q querier, upd *entsql.UpdateBuilder, missing error) error {
	query, args := upd.Query()
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

// remove deletes the row with id after checking it exists. Dependent
// rows go with it through ON DELETE CASCADE.
func (s *Store) remove(ctx context.Context, table, entity string, id int64) error {
	return s.write(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, table, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(entity)
		}
		query, args := builder().Delete(table).Where(entsql.EQ("id", id)).Query()
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}
