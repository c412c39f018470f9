package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/store"
)

func newTopicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topic",
		Aliases: []string{"topics"},
		Short:   "Manage topics within a subject",
	}
	cmd.AddCommand(
		newTopicListCmd(a),
		newTopicAddCmd(a),
		newTopicEditCmd(a),
		newTopicRmCmd(a),
	)
	return cmd
}

func newTopicListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <subject-id>",
		Short: "List a subject's topics",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectID, err := parseID("subject", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				topics, err := st.Topics().ListBySubject(cmd.Context(), subjectID)
				if err != nil {
					return err
				}
				return a.emit(cmd, topics, func(w io.Writer) error {
					rows := make([][]string, 0, len(topics))
					for _, t := range topics {
						rows = append(rows, []string{idString(t.ID), t.Name, t.Color})
					}
					return printTable(w, []string{"ID", "NAME", "COLOR"}, rows)
				})
			})
		},
	}
}

func newTopicAddCmd(a *app) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add <subject-id> <name>",
		Short: "Create a topic",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectID, err := parseID("subject", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				t, err := st.Topics().Create(cmd.Context(), store.TopicInput{
					Name:      args[1],
					SubjectID: subjectID,
					Color:     color,
				})
				if err != nil {
					return err
				}
				return a.emit(cmd, t, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created topic %d %q\n", t.ID, t.Name)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "hex color (default from config)")
	return cmd
}

func newTopicEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename, recolor, reorder or move a topic",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("topic", args[0])
			if err != nil {
				return err
			}
			var p store.TopicPatch
			f := cmd.Flags()
			if f.Changed("name") {
				p.Name = stringFlag(cmd, "name")
			}
			if f.Changed("color") {
				p.Color = stringFlag(cmd, "color")
			}
			if f.Changed("subject") {
				p.SubjectID = int64Flag(cmd, "subject")
			}
			if f.Changed("position") {
				p.Position = intFlag(cmd, "position")
			}
			return a.withStore(cmd, func(st *store.Store) error {
				t, err := st.Topics().Update(cmd.Context(), id, p)
				if err != nil {
					return err
				}
				return a.emit(cmd, t, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Updated topic %d %q\n", t.ID, t.Name)
					return err
				})
			})
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("color", "", "new hex color")
	cmd.Flags().Int64("subject", 0, "move to this subject id")
	cmd.Flags().Int("position", 0, "new position")
	return cmd
}

func newTopicRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a topic and its cards",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("topic", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				if err := st.Topics().Delete(cmd.Context(), id); err != nil {
					return err
				}
				return a.emit(cmd, map[string]int64{"deleted": id}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted topic %d\n", id)
					return err
				})
			})
		},
	}
}
