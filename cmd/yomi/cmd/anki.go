package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/f3rmion/yomi/internal/anki"
)

func newAnkiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anki",
		Short: "Work with Anki decks",
		Long:  `Commands for reading Anki .apkg files and filling them with dictionary lookups.`,
	}
	cmd.AddCommand(newAnkiInspectCmd(), newAnkiAugmentCmd(a))
	return cmd
}

func newAnkiInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.apkg>",
		Short: "Inspect an Anki deck",
		Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types (models) and their fields
  - Sample notes

Example:
  yomi anki inspect japanese.apkg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			out := cmd.OutOrStdout()

			pkg, err := anki.OpenPackage(args[0])
			if err != nil {
				return fmt.Errorf("opening package: %w", err)
			}
			defer pkg.Close()

			fmt.Fprint(out, pkg.Summary())
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Field Details:")
			for _, m := range sortedModels(pkg) {
				fmt.Fprintf(out, "  %s:\n", m.Name)
				for _, f := range m.Fields {
					fmt.Fprintf(out, "    [%d] %s\n", f.Ord, f.Name)
				}
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "Sample Notes (first %d):\n", limit)
			for _, note := range pkg.Notes[:min(max(limit, 0), len(pkg.Notes))] {
				modelName := "unknown"
				if m := pkg.GetModel(note); m != nil {
					modelName = m.Name
				}
				fmt.Fprintf(out, "\n  Note %d (Model: %s):\n", note.ID, modelName)

				names := pkg.GetFieldNames(note)
				for i, value := range note.Fields {
					name := fmt.Sprintf("Field %d", i)
					if i < len(names) {
						name = names[i]
					}
					fmt.Fprintf(out, "    %s: %s\n", name, runewidth.Truncate(anki.StripHTML(value), 60, "..."))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 5, "number of sample notes to show")
	return cmd
}

func sortedModels(pkg *anki.Package) []*anki.Model {
	models := make([]*anki.Model, 0, len(pkg.Models))
	for _, m := range pkg.Models {
		models = append(models, m)
	}
	slices.SortFunc(models, func(x, y *anki.Model) int {
		return strings.Compare(x.Name, y.Name)
	})
	return models
}

func newAnkiAugmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "augment <file.apkg>",
		Short: "Fill Anki notes with dictionary lookups",
		Long: `Look up one field of every note and write the result to new fields.

The note types of the deck get three extra fields:
  Yomi_Reading      reading of the best match
  Yomi_Meaning      glosses of the matched entries
  Yomi_Inflection   conjugation chain, when the text was conjugated

Notes whose Yomi_Meaning is already filled are left alone unless
--overwrite is given. The result is written to a new file next to the input
(deck.apkg becomes deck.yomi.apkg) unless --output is set.

Examples:
  yomi anki augment japanese.apkg
  yomi anki augment japanese.apkg --field Vocab -o out.apkg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, _ := cmd.Flags().GetString("field")
			output, _ := cmd.Flags().GetString("output")
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if output == "" {
				output = anki.AugmentedPath(args[0])
			}

			d, err := a.dictionary(cmd.Context())
			if err != nil {
				return err
			}

			pkg, err := anki.OpenPackage(args[0])
			if err != nil {
				return fmt.Errorf("opening package: %w", err)
			}
			defer pkg.Close()
			a.log.Info("opened package", "path", args[0], "notes", len(pkg.Notes))

			stats, err := anki.Augment(cmd.Context(), pkg, d, anki.AugmentOptions{
				Field:     field,
				Overwrite: overwrite,
				Render:    a.renderOptions(),
			})
			if err != nil {
				return err
			}
			if err := pkg.SaveAs(output); err != nil {
				return fmt.Errorf("saving package: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Augmented %d of %d notes (%d skipped)\nWrote %s\n",
				stats.Matched, stats.Notes, stats.Skipped, output)
			return nil
		},
	}
	cmd.Flags().StringP("field", "f", "Expression", "field holding the Japanese text")
	cmd.Flags().StringP("output", "o", "", "output .apkg file")
	cmd.Flags().Bool("overwrite", false, "replace lookups already present")
	return cmd
}
