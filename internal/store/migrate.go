package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/0001_init.sql
var initSchema string

// migration upgrades the schema by one version inside a transaction.
type migration struct {
	version int
	name    string
	up      func(ctx context.Context, tx *sql.Tx) error
}

// migrations are applied in order; the schema version is kept in
// PRAGMA user_version so the file holds no bookkeeping table.
var migrations = []migration{
	{version: 1, name: "init", up: migrateInit},
	{version: 2, name: "topic color", up: migrateTopicColor},
}

// SchemaVersion is the user_version of a fully migrated database.
func SchemaVersion() int {
	return migrations[len(migrations)-1].version
}

func migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		log.Debug("applied migration", "version", m.version, "name", m.name)
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate to v%d: begin: %w", m.version, err)
	}
	defer tx.Rollback()

	if err := m.up(ctx, tx); err != nil {
		return fmt.Errorf("migrate to v%d (%s): %w", m.version, m.name, err)
	}
	// PRAGMA does not take bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("set user_version %d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate to v%d: commit: %w", m.version, err)
	}
	return nil
}

func migrateInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, initSchema)
	return err
}

// migrateTopicColor adds topics.color to files created before topics
// carried a color. Fresh databases already have it from the init schema.
func migrateTopicColor(ctx context.Context, tx *sql.Tx) error {
	ok, err := hasColumn(ctx, tx, "topics", "color")
	if err != nil || ok {
		return err
	}
	_, err = tx.ExecContext(ctx, "ALTER TABLE topics ADD COLUMN color TEXT DEFAULT '"+DefaultColor+"'")
	return err
}

func hasColumn(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect %s columns: %w", table, err)
	}
	return n > 0, nil
}
