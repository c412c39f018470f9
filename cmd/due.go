package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/store"
)

func newDueCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List reviewed cards whose next review has come",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *store.Store) error {
				cards, err := st.Cards().ListDue(cmd.Context(), a.now(), limit)
				if err != nil {
					return err
				}
				return a.emit(cmd, cards, func(w io.Writer) error {
					return printCards(w, cards)
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many cards (0 for all)")
	return cmd
}
