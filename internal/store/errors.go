package store

import (
	"errors"
	"fmt"
	"strconv"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConstraint is returned when a write is rejected by the database,
	// e.g. a topic created under a subject that does not exist.
	// The driver error is wrapped alongside it.
	ErrConstraint = errors.New("constraint violation")

	// ErrIO is returned when a mutation was applied but could not be
	// flushed to the database file.
	ErrIO = errors.New("flush to disk failed")

	// ErrInit is returned when the database cannot be opened or migrated.
	ErrInit = errors.New("store initialization failed")

	// ErrInvalidInput is returned when a create or update payload fails
	// validation before reaching the database.
	ErrInvalidInput = errors.New("invalid input")

	ErrSubjectNotFound = fmt.Errorf("%w: subject", ErrNotFound)
	ErrTopicNotFound   = fmt.Errorf("%w: topic", ErrNotFound)
	ErrCardNotFound    = fmt.Errorf("%w: card", ErrNotFound)
)

// OpError records the operation, entity and id a store failure happened on.
type OpError struct {
	Op     string // "create", "update", ...
	Entity string // "subject", "topic", "card"; empty for store-level ops
	ID     int64  // 0 when no id applies
	Err    error
}

func (e *OpError) Error() string {
	s := e.Op
	if e.Entity != "" {
		s += " " + e.Entity
	}
	if e.ID != 0 {
		s += " " + strconv.FormatInt(e.ID, 10)
	}
	return s + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// classify tags driver constraint failures with ErrConstraint.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var serr *sqlite.Error
	if errors.As(err, &serr) && serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return err
}

func notFound(entity string) error {
	switch entity {
	case entitySubject:
		return ErrSubjectNotFound
	case entityTopic:
		return ErrTopicNotFound
	case entityCard:
		return ErrCardNotFound
	}
	return ErrNotFound
}
