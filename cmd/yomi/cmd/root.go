// Package cmd contains all CLI commands for yomi.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/logging"
	"github.com/f3rmion/yomi/internal/render"
	"github.com/f3rmion/yomi/internal/tui"
)

// app holds state shared by the commands of one invocation.
type app struct {
	v *viper.Viper

	cfg       *config.Config
	configDir string
	log       *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "yomi [text]",
		Short: "Japanese dictionary lookup with deinflection",
		Long: `yomi looks up Japanese text in EDICT-style dictionaries.

It matches the longest prefix of the text against the word, name or kanji
dictionary, undoing verb and adjective conjugations on the way:
食べられなかった is found as 食べる (potential or passive < negative < past).

Running 'yomi' without a subcommand launches the interactive TUI.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config directory (default is $HOME/.config/yomi)")
	flags.String("data-dir", "", "directory holding dict.dat, kanji.dat, ...")
	flags.String("encoding", "", "data file encoding: utf-8, euc-jp, shift_jis")
	flags.BoolP("verbose", "v", false, "verbose output")

	a.v.BindPFlag("config_dir", flags.Lookup("config"))
	a.v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	a.v.BindPFlag("encoding", flags.Lookup("encoding"))
	a.v.BindPFlag("verbose", flags.Lookup("verbose"))
	a.v.SetEnvPrefix("YOMI")
	a.v.AutomaticEnv()

	root.AddCommand(
		newLookupCmd(a),
		newKanjiCmd(a),
		newTranslateCmd(a),
		newDeinflectCmd(a),
		newAnkiCmd(a),
		newInitCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration, applies flag and environment overrides and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.configDir = a.v.GetString("config_dir")
	if a.configDir == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return fmt.Errorf("finding config directory: %w", err)
		}
		a.configDir = dir
	}

	cfg, err := config.Load(a.configPath())
	if err != nil {
		return err
	}
	if dir := a.v.GetString("data_dir"); dir != "" {
		cfg.Data.Dir = dir
	}
	if enc := a.v.GetString("encoding"); enc != "" {
		cfg.Data.Encoding = enc
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.v.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	a.log = logging.NewLogger(cfg.Log, cmd.ErrOrStderr())
	return nil
}

func (a *app) configPath() string {
	return filepath.Join(a.configDir, config.FileName)
}

func (a *app) dataDir() string {
	return a.cfg.DataDir(a.configDir)
}

// dictionary opens the data files.
func (a *app) dictionary(ctx context.Context) (*dict.Dictionary, error) {
	paths := dict.DataPaths(a.dataDir())
	paths.Rules = a.cfg.Data.Rules

	d, err := dict.Open(ctx, paths, dict.Options{
		MaxWords:      a.cfg.Lookup.MaxWords,
		MaxNames:      a.cfg.Lookup.MaxNames,
		MaxTranslate:  a.cfg.Lookup.MaxTranslate,
		KanjiFallback: a.cfg.Lookup.KanjiFallback,
		Encoding:      a.cfg.Data.Encoding,
		Logger:        a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("loading dictionary from %s: %w (run 'yomi init' and copy the data files there)", a.dataDir(), err)
	}
	return d, nil
}

func (a *app) renderOptions() render.Options {
	return render.Options{
		HidePOS:     a.cfg.Display.HidePOS,
		HidePopular: a.cfg.Display.HidePopular,
		KanjiInfo:   a.cfg.Display.KanjiInfo,
	}
}

// runTUI launches the interactive application. Logs go to a file in the
// config directory so they do not draw over the screen.
func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	logFile := io.Discard
	if f, err := os.OpenFile(filepath.Join(a.configDir, "yomi.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		defer f.Close()
		logFile = f
	}
	a.log = logging.NewLogger(a.cfg.Log, logFile)

	d, err := a.dictionary(cmd.Context())
	if err != nil {
		return err
	}

	ankiDir := filepath.Join(a.configDir, "anki")
	if _, err := os.Stat(ankiDir); err != nil {
		ankiDir = ""
	}

	err = tui.Run(tui.Options{
		Dict:       d,
		Config:     a.cfg,
		ConfigPath: a.configPath(),
		DataDir:    a.dataDir(),
		AnkiDir:    ankiDir,
		Text:       strings.Join(args, " "),
	})
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive [text]",
		Aliases: []string{"i", "ui"},
		Short:   "Launch the interactive TUI",
		Long: `Launch the interactive terminal UI.

Views:
  Lookup     type text, enter searches, ctrl+n cycles words/names/kanji
  Translate  split a sentence into dictionary words
  Anki       fill lookup fields of an .apkg deck
  Settings   display and budget options`,
		RunE: a.runTUI,
	}
}
