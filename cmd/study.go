package cmd

import (
	"github.com/spf13/cobra"

	tui "github.com/KazantsevJS/mindflip/internal/app"
	"github.com/KazantsevJS/mindflip/internal/screens/study"
	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
)

func newStudyCmd(a *app) *cobra.Command {
	var dueOnly bool
	cmd := &cobra.Command{
		Use:   "study <topic-id>",
		Short: "Study a topic's cards one at a time",
		Long: "Study shows each card of the topic in order. Space or Enter flips the card,\n" +
			"→ or l marks it known, ← or h marks it for another look, q quits.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topic", args[0])
			if err != nil {
				return err
			}
			// The alt screen owns the terminal; keep logs off stderr.
			a.log = a.quietLog()
			return a.withStore(cmd, func(st *store.Store) error {
				ctx := cmd.Context()
				topic, err := st.Topics().Get(ctx, topicID)
				if err != nil {
					return err
				}
				cards, err := st.Cards().ListByTopic(ctx, topicID)
				if err != nil {
					return err
				}
				if dueOnly {
					cards = spacedrep.FilterStudyable(cards, a.now())
				}

				sched := spacedrep.NewScheduler(st.Cards(),
					spacedrep.WithClock(a.now),
					spacedrep.WithLogger(a.log),
				)
				return tui.Run(ctx, study.New(ctx, sched, *topic, cards,
					study.WithLogger(a.log),
					study.WithClock(a.now),
				))
			})
		},
	}
	cmd.Flags().BoolVar(&dueOnly, "due", false, "only new cards and cards due for review")
	return cmd
}
