package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/spacedrep"
	"github.com/KazantsevJS/mindflip/internal/store"
)

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "card",
		Aliases: []string{"cards"},
		Short:   "Manage cards within a topic",
	}
	cmd.AddCommand(
		newCardListCmd(a),
		newCardShowCmd(a),
		newCardAddCmd(a),
		newCardEditCmd(a),
		newCardRmCmd(a),
	)
	return cmd
}

func newCardListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <topic-id>",
		Short: "List a topic's cards",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topic", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				cards, err := st.Cards().ListByTopic(cmd.Context(), topicID)
				if err != nil {
					return err
				}
				return a.emit(cmd, cards, func(w io.Writer) error {
					return printCards(w, cards)
				})
			})
		},
	}
}

func printCards(w io.Writer, cards []store.Card) error {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			idString(c.ID),
			truncate(c.Question, 40),
			strconv.Itoa(c.DifficultyLevel),
			strconv.FormatFloat(c.EaseFactor, 'f', 2, 64),
			formatWhen(c.NextReviewAt),
		})
	}
	return printTable(w, []string{"ID", "QUESTION", "DIFF", "EASE", "NEXT REVIEW"}, rows)
}

func newCardShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a card with its review state",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("card", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				c, err := st.Cards().Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.emit(cmd, c, func(w io.Writer) error {
					status := spacedrep.StateOf(c).Status(a.now())
					_, err := fmt.Fprintf(w,
						"Card %d (topic %d, position %d)\n\nQ: %s\nA: %s\n\n"+
							"difficulty %d  ease %.2f  reviewed %d times  status %s\n"+
							"last review %s  next review %s\n",
						c.ID, c.TopicID, c.Position, c.Question, c.Answer,
						c.DifficultyLevel, c.EaseFactor, c.TimesReviewed, status,
						formatWhen(c.LastReviewedAt), formatWhen(c.NextReviewAt))
					return err
				})
			})
		},
	}
}

func newCardAddCmd(a *app) *cobra.Command {
	var in store.CardInput
	cmd := &cobra.Command{
		Use:   "add <topic-id>",
		Short: "Create a card",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			topicID, err := parseID("topic", args[0])
			if err != nil {
				return err
			}
			in.TopicID = topicID
			return a.withStore(cmd, func(st *store.Store) error {
				c, err := st.Cards().Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				return a.emit(cmd, c, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created card %d in topic %d\n", c.ID, c.TopicID)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVarP(&in.Question, "question", "q", "", "question text (required)")
	cmd.Flags().StringVarP(&in.Answer, "answer", "a", "", "answer text (required)")
	cmd.Flags().IntVarP(&in.DifficultyLevel, "difficulty", "d", store.DefaultDifficulty, "difficulty from 1 to 5")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")
	return cmd
}

func newCardEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a card's text, difficulty, position or topic",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("card", args[0])
			if err != nil {
				return err
			}
			var p store.CardPatch
			f := cmd.Flags()
			if f.Changed("question") {
				p.Question = stringFlag(cmd, "question")
			}
			if f.Changed("answer") {
				p.Answer = stringFlag(cmd, "answer")
			}
			if f.Changed("difficulty") {
				p.DifficultyLevel = intFlag(cmd, "difficulty")
			}
			if f.Changed("position") {
				p.Position = intFlag(cmd, "position")
			}
			if f.Changed("topic") {
				p.TopicID = int64Flag(cmd, "topic")
			}
			return a.withStore(cmd, func(st *store.Store) error {
				c, err := st.Cards().Update(cmd.Context(), id, p)
				if err != nil {
					return err
				}
				return a.emit(cmd, c, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Updated card %d\n", c.ID)
					return err
				})
			})
		},
	}
	cmd.Flags().StringP("question", "q", "", "new question")
	cmd.Flags().StringP("answer", "a", "", "new answer")
	cmd.Flags().IntP("difficulty", "d", 0, "new difficulty from 1 to 5")
	cmd.Flags().Int("position", 0, "new position")
	cmd.Flags().Int64("topic", 0, "move to this topic id")
	return cmd
}

func newCardRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a card",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("card", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				if err := st.Cards().Delete(cmd.Context(), id); err != nil {
					return err
				}
				return a.emit(cmd, map[string]int64{"deleted": id}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted card %d\n", id)
					return err
				})
			})
		},
	}
}
