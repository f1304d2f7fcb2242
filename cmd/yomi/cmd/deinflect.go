package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/f3rmion/yomi/internal/deinflect"
	"github.com/f3rmion/yomi/internal/dict"
)

const columnGap = "  "

func newDeinflectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deinflect <word>",
		Short: "List the dictionary forms a conjugated word may come from",
		Long: `List every candidate base form of a word without consulting the
dictionary. Each line shows the candidate, the word classes it may belong to
and the conjugations undone to reach it.

Uses data.rules from the config when set, otherwise the built-in rules.

Example:
  yomi deinflect 食べさせられた`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.rules()
			if err != nil {
				return err
			}

			var rows [][3]string
			for _, c := range table.Deinflect(args[0]) {
				rows = append(rows, [3]string{c.Word, strings.Join(deinflect.ClassNames(c.Type), ","), c.Reason})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatColumns(rows))
			return nil
		},
	}
}

// formatColumns pads the first two columns to their widest cell, counting
// terminal cells so that wide characters line up.
func formatColumns(rows [][3]string) string {
	var w [2]int
	for _, r := range rows {
		w[0] = max(w[0], runewidth.StringWidth(r[0]))
		w[1] = max(w[1], runewidth.StringWidth(r[1]))
	}

	var b strings.Builder
	for _, r := range rows {
		line := runewidth.FillRight(r[0], w[0]) + columnGap +
			runewidth.FillRight(r[1], w[1]) + columnGap + r[2]
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (a *app) rules() (*deinflect.Table, error) {
	if a.cfg.Data.Rules == "" {
		return deinflect.Default(), nil
	}
	return dict.LoadRules(a.cfg.Data.Rules)
}
