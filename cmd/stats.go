package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/store"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection and review statistics",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *store.Store) error {
				s, err := st.Stats(cmd.Context(), a.now())
				if err != nil {
					return err
				}
				return a.emit(cmd, s, func(w io.Writer) error {
					_, err := fmt.Fprintf(w,
						"Subjects:        %d\nTopics:          %d\nCards:           %d\n"+
							"Reviewed cards:  %d\nDue now:         %d\nTotal reviews:   %d\nAverage ease:    %.2f\n",
						s.Subjects, s.Topics, s.Cards, s.ReviewedCards, s.DueCards, s.TotalReviews, s.AvgEaseFactor)
					return err
				})
			})
		},
	}
}
