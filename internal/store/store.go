package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DefaultColor is the color given to subjects and topics created without one.
const DefaultColor = "#e052c4"

// Store owns the database handle and hands out the entity repositories.
// A Store is meant to be opened once by the application and closed on exit.
type Store struct {
	db   *sql.DB
	path string

	now          func() time.Time
	log          *slog.Logger
	defaultColor string
	validate     *validator.Validate

	recovered string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for migrations and recovery warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithDefaultColor sets the color used when a subject or topic is created
// without one.
func WithDefaultColor(c string) Option {
	return func(s *Store) { s.defaultColor = c }
}

// Open opens (or creates) the SQLite database at path, applies pragmas,
// runs migrations and flushes the result to disk.
//
// If the existing file is not a readable database it is moved aside to
// <path>.corrupt-<unix> and a fresh database is created in its place.
// Recovered reports the moved-aside path in that case.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:         path,
		now:          time.Now,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultColor: DefaultColor,
		validate:     newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if path == "" {
		return nil, &OpError{Op: "open", Err: fmt.Errorf("%w: empty database path", ErrInit)}
	}

	db, err := s.open(ctx)
	if err != nil && isUnreadable(err) {
		aside, rerr := moveAside(path, s.now())
		if rerr != nil {
			return nil, &OpError{Op: "open", Err: fmt.Errorf("%w: move unreadable database aside: %w", ErrInit, rerr)}
		}
		s.log.Warn("database file unreadable, starting with a fresh database",
			"path", path, "moved_to", aside, "error", err)
		s.recovered = aside
		db, err = s.open(ctx)
	}
	if err != nil {
		return nil, &OpError{Op: "open", Err: fmt.Errorf("%w: %w", ErrInit, err)}
	}
	s.db = db

	if err := s.flush(ctx); err != nil {
		db.Close()
		return nil, &OpError{Op: "open", Err: err}
	}
	return s, nil
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(s.path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer: every operation, flush included, goes through one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := probe(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db, s.log); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close flushes outstanding WAL content and closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	ferr := s.flush(context.Background())
	cerr := s.db.Close()
	s.db = nil
	return errors.Join(ferr, cerr)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Recovered returns the path the unreadable database file was moved to
// during Open, or "" if no recovery happened.
func (s *Store) Recovered() string {
	return s.recovered
}

// Subjects returns the subject repository.
func (s *Store) Subjects() SubjectRepo {
	return &subjectRepo{s: s}
}

// Topics returns the topic repository.
func (s *Store) Topics() TopicRepo {
	return &topicRepo{s: s}
}

// Cards returns the card repository.
func (s *Store) Cards() CardRepo {
	return &cardRepo{s: s}
}

// pragmas are applied by the driver on every new connection.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// probe forces SQLite to read the file header so an unreadable file
// fails here rather than halfway through a migration.
func probe(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&n); err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	return nil
}

// flush checkpoints the WAL into the main database file. It runs after
// every mutation so the file on disk always holds the complete state.
func (s *Store) flush(ctx context.Context) error {
	var busy, logFrames, checkpointed int
	err := s.db.QueryRowContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)").Scan(&busy, &logFrames, &checkpointed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if busy != 0 {
		return fmt.Errorf("%w: checkpoint blocked (%d of %d frames written)", ErrIO, checkpointed, logFrames)
	}
	return nil
}

func isUnreadable(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

// moveAside renames path and its WAL/SHM companions out of the way.
func moveAside(path string, now time.Time) (string, error) {
	aside := fmt.Sprintf("%s.corrupt-%d", path, now.Unix())
	if err := os.Rename(path, aside); err != nil {
		return "", err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Rename(path+suffix, aside+suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return aside, nil
}

// DefaultDBPath resolves the database file path:
// 1. $XDG_DATA_HOME/mindflip/mindflip.db
// 2. ~/.local/share/mindflip/mindflip.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mindflip", "mindflip.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
