package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/render"
)

func newLookupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Look up the longest words at the start of text",
		Long: `Look up the longest dictionary words at the start of text.

Conjugated verbs and adjectives are reduced to their dictionary form and the
conjugation chain is printed after the gloss. Katakana is matched as
hiragana.

Examples:
  yomi lookup 食べられなかった
  yomi lookup -m names 山田太郎
  yomi lookup -m kanji 猫
  yomi lookup --html 読んでいる`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runLookup,
	}
	cmd.Flags().StringP("mode", "m", "words", "dictionary: words, names or kanji")
	cmd.Flags().Bool("html", false, "print HTML instead of text")
	cmd.Flags().Int("max", 0, "maximum number of entries (default from config)")
	return cmd
}

func (a *app) runLookup(cmd *cobra.Command, args []string) error {
	modeName, _ := cmd.Flags().GetString("mode")
	asHTML, _ := cmd.Flags().GetBool("html")
	limit, _ := cmd.Flags().GetInt("max")

	mode, err := dict.ParseMode(modeName)
	if err != nil {
		return err
	}
	if limit > 0 {
		a.cfg.Lookup.MaxWords = limit
		a.cfg.Lookup.MaxNames = limit
	}

	d, err := a.dictionary(cmd.Context())
	if err != nil {
		return err
	}

	text := strings.Join(args, "")
	res, err := d.Search(cmd.Context(), text, mode)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("no match for %q", text)
	}
	a.log.Debug("lookup", "text", text, "mode", res.Mode, "matched", res.MatchLen())

	out := render.Result(res, a.renderOptions())
	if asHTML {
		if out, err = render.ResultHTML(res, a.renderOptions()); err != nil {
			return err
		}
		out += "\n"
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func newKanjiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanji <character>",
		Short: "Show the kanji dictionary entry of a character",
		Long: `Show readings, meanings, radical and reference codes of a kanji.

Only the first character of the argument is looked up. The reference codes
shown are set by display.kanji_info in the config.

Examples:
  yomi kanji 猫
  yomi kanji --html 語`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asHTML, _ := cmd.Flags().GetBool("html")

			d, err := a.dictionary(cmd.Context())
			if err != nil {
				return err
			}
			k := d.KanjiSearch(args[0])
			if k == nil {
				return fmt.Errorf("no kanji entry for %q", args[0])
			}

			if asHTML {
				out, err := render.KanjiHTML(k, a.renderOptions())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), render.KanjiText(k, a.renderOptions()))
			return nil
		},
	}
	cmd.Flags().Bool("html", false, "print HTML instead of text")
	return cmd
}

func newTranslateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <sentence>",
		Short: "Split a sentence into dictionary words",
		Long: `Split a sentence into consecutive dictionary words.

At each position the best word match is taken and the scan continues after
it; characters that match nothing are skipped. The number of words is
limited by lookup.max_translate.

Example:
  yomi translate 猫が魚を食べた`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dictionary(cmd.Context())
			if err != nil {
				return err
			}

			text := strings.Join(args, "")
			res := d.Translate(text)
			if res == nil {
				return fmt.Errorf("no words found in %q", text)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.TranslateText(text, res, a.renderOptions()))
			return nil
		},
	}
}
