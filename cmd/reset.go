package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/store"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every subject, topic and card",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return usageError(errors.New("reset deletes all data; pass --yes to confirm"))
			}
			return a.withStore(cmd, func(st *store.Store) error {
				if err := st.Reset(cmd.Context()); err != nil {
					return err
				}
				a.log.Info("store reset", "path", st.Path())
				return a.emit(cmd, map[string]bool{"reset": true}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "All subjects, topics and cards deleted.")
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")
	return cmd
}
