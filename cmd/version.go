package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/deck"
	"github.com/KazantsevJS/mindflip/internal/store"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "mindflip %s (schema %d, deck format %s)\n",
				version, store.SchemaVersion(), deck.FormatVersion)
			return err
		},
	}
}
