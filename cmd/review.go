package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
)

func newReviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review <card-id> known|unknown",
		Short: "Record whether you knew a card and reschedule it",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("card", args[0])
			if err != nil {
				return err
			}
			outcome, err := spacedrep.ParseOutcome(args[1])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				sched := spacedrep.NewScheduler(st.Cards(),
					spacedrep.WithClock(a.now),
					spacedrep.WithLogger(a.log),
				)
				c, err := sched.RecordReview(cmd.Context(), id, outcome)
				if err != nil {
					return err
				}
				return a.emit(cmd, c, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Card %d marked %s: ease %.2f, next review %s\n",
						c.ID, outcome, c.EaseFactor, formatWhen(c.NextReviewAt))
					return err
				})
			})
		},
	}
}
