// Package cmd wires the mindflip command line: configuration, logging,
// the store and one subcommand per operation.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/config"
	"github.com/KazantsevJS/mindflip/internal/logger"
	"github.com/KazantsevJS/mindflip/internal/store"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	logOut  io.Writer
	logFile *os.File
	json    bool
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "mindflip",
		Short: "Flashcards with spaced repetition",
		Long: "MindFlip keeps flashcards organized as subjects, topics and cards in a local\n" +
			"SQLite file and reschedules each card based on whether you knew it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.String("db", "", "path to the SQLite database (overrides MINDFLIP_DB)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.BoolVar(&a.json, "json", false, "print results as JSON")

	root.AddCommand(
		newSubjectCmd(a),
		newTopicCmd(a),
		newCardCmd(a),
		newReviewCmd(a),
		newDueCmd(a),
		newStudyCmd(a),
		newStatsCmd(a),
		newResetCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return exitCode(err)
	}
	return ExitOK
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	a.cfg = cfg

	a.logOut = cmd.ErrOrStderr()
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		a.logOut = f
	}
	a.log, err = logger.New(a.logOut, cfg.Log.Level, cfg.Log.Format)
	return err
}

func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// quietLog returns the logger for full-screen commands: logs only go
// somewhere when a log file was configured.
func (a *app) quietLog() *slog.Logger {
	if a.logFile == nil {
		return logger.Discard()
	}
	return a.log
}

// resolveDBPath returns the configured path, falling back to the default
// XDG location. The parent directory is created either way.
func (a *app) resolveDBPath() (string, error) {
	p := a.cfg.Database.Path
	if p == "" {
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}

// openStore opens the database for one command. The caller closes it.
func (a *app) openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := a.resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cmd.Context(), path,
		store.WithLogger(a.log),
		store.WithDefaultColor(a.cfg.Defaults.Color),
	)
	if err != nil {
		return nil, err
	}
	if moved := st.Recovered(); moved != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s was not a readable database; moved it to %s and started fresh\n", path, moved)
	}
	return st, nil
}

// withStore opens the store, runs fn and closes the store, reporting the
// first error.
func (a *app) withStore(cmd *cobra.Command, fn func(*store.Store) error) (err error) {
	st, err := a.openStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(st)
}
