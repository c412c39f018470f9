package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/store"
)

func newSubjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}
	cmd.AddCommand(
		newSubjectListCmd(a),
		newSubjectAddCmd(a),
		newSubjectEditCmd(a),
		newSubjectRmCmd(a),
	)
	return cmd
}

func newSubjectListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects in display order",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *store.Store) error {
				subjects, err := st.Subjects().List(cmd.Context())
				if err != nil {
					return err
				}
				return a.emit(cmd, subjects, func(w io.Writer) error {
					rows := make([][]string, 0, len(subjects))
					for _, s := range subjects {
						rows = append(rows, []string{idString(s.ID), s.Name, s.Color})
					}
					return printTable(w, []string{"ID", "NAME", "COLOR"}, rows)
				})
			})
		},
	}
}

func newSubjectAddCmd(a *app) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a subject",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(st *store.Store) error {
				s, err := st.Subjects().Create(cmd.Context(), store.SubjectInput{Name: args[0], Color: color})
				if err != nil {
					return err
				}
				return a.emit(cmd, s, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created subject %d %q\n", s.ID, s.Name)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "hex color such as #e052c4 (default from config)")
	return cmd
}

func newSubjectEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a subject's name, color or position",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("subject", args[0])
			if err != nil {
				return err
			}
			var p store.SubjectPatch
			f := cmd.Flags()
			if f.Changed("name") {
				p.Name = stringFlag(cmd, "name")
			}
			if f.Changed("color") {
				p.Color = stringFlag(cmd, "color")
			}
			if f.Changed("position") {
				p.Position = intFlag(cmd, "position")
			}
			return a.withStore(cmd, func(st *store.Store) error {
				s, err := st.Subjects().Update(cmd.Context(), id, p)
				if err != nil {
					return err
				}
				return a.emit(cmd, s, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Updated subject %d %q\n", s.ID, s.Name)
					return err
				})
			})
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("color", "", "new hex color")
	cmd.Flags().Int("position", 0, "new position")
	return cmd
}

func newSubjectRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a subject with all its topics and cards",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("subject", args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				if err := st.Subjects().Delete(cmd.Context(), id); err != nil {
					return err
				}
				return a.emit(cmd, map[string]int64{"deleted": id}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deleted subject %d\n", id)
					return err
				})
			})
		},
	}
}

// stringFlag returns a pointer to the named flag's value.
func stringFlag(cmd *cobra.Command, name string) *string {
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func intFlag(cmd *cobra.Command, name string) *int {
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func int64Flag(cmd *cobra.Command, name string) *int64 {
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}
