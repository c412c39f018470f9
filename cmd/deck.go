package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KazantsevJS/mindflip/internal/deck"
	"github.com/KazantsevJS/mindflip/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all subjects, topics and cards to a JSON or YAML deck",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := deckFormat(format, output)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(st *store.Store) error {
				doc, err := deck.Export(cmd.Context(), st, a.now())
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return deck.Encode(cmd.OutOrStdout(), doc, f)
				}
				return writeDeck(output, doc, f)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension, else json)")
	return cmd
}

func writeDeck(path string, doc *deck.Document, f deck.Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create deck file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return deck.Encode(file, doc, f)
}

// deckFormat resolves the format from an explicit flag, then the file
// extension, then JSON.
func deckFormat(flag, path string) (deck.Format, error) {
	if flag != "" {
		f, err := deck.ParseFormat(flag)
		if err != nil {
			return "", usageError(err)
		}
		return f, nil
	}
	if path != "" && path != "-" {
		if f, err := deck.FormatFromPath(path); err == nil {
			return f, nil
		}
	}
	return deck.JSON, nil
}

func newImportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append the subjects, topics and cards of a deck file",
		Long: "Import adds the deck's subjects, topics and cards as new entries. Existing\n" +
			"data is kept; review progress is not part of a deck. Use - to read stdin.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := deckFormat(format, path)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open deck file: %w", err)
				}
				defer file.Close()
				r = file
			}
			doc, err := deck.Decode(r, f)
			if err != nil {
				return err
			}

			return a.withStore(cmd, func(st *store.Store) error {
				res, err := deck.Import(cmd.Context(), st, doc)
				if err != nil {
					a.log.Error("import stopped", "subjects", res.Subjects, "topics", res.Topics, "cards", res.Cards, "error", err)
					return err
				}
				a.log.Info("deck imported", "subjects", res.Subjects, "topics", res.Topics, "cards", res.Cards)
				return a.emit(cmd, res, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Imported %d subjects, %d topics, %d cards\n", res.Subjects, res.Topics, res.Cards)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension, else json)")
	return cmd
}
