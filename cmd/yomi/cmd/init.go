package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/yomi/internal/config"
	"github.com/f3rmion/yomi/internal/dict"
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize yomi configuration",
		Long: `Initialize yomi in your config directory.

This writes config.yaml with the default settings and creates the data
directory. Copy the dictionary files into it afterwards:
  dict.dat      word dictionary (required)
  dict.idx      word index (built on load when missing)
  names.dat     names dictionary
  names.idx     names index
  kanji.dat     kanji dictionary
  radicals.dat  radical names and components`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			out := cmd.OutOrStdout()
			path := a.configPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
			}
			if err := config.EnsureConfigDir(a.configDir, a.cfg); err != nil {
				return err
			}

			fmt.Fprintf(out, "Initializing yomi configuration in %s\n\n", a.configDir)
			if err := config.Save(path, a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "  Created %s\n", config.FileName)
			fmt.Fprintf(out, "  Created %s\n", a.dataDir())

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  1. Copy %s and the other data files to %s\n", dict.WordsFile, a.dataDir())
			fmt.Fprintln(out, "  2. Run 'yomi lookup 食べた' to test a lookup")
			fmt.Fprintln(out, "  3. Run 'yomi' to start the interactive UI")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "overwrite existing configuration")
	return cmd
}
