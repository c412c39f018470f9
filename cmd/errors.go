package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/deck"
	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitNotFound     = 3
	ExitInvalidInput = 4
)

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// exitCode picks the exit code for err. An explicit ExitError wins;
// otherwise well-known sentinels are mapped.
func exitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, spacedrep.ErrInvalidOutcome),
		errors.Is(err, deck.ErrInvalidDocument),
		errors.Is(err, deck.ErrUnsupportedVersion):
		return ExitInvalidInput
	}
	return ExitFailure
}

// usageArgs marks argument count errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// parseID parses a positive entity id from a command argument.
func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(fmt.Errorf("invalid %s id %q", name, s))
	}
	return id, nil
}
