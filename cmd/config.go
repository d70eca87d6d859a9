package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/config"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var configPrintPath bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the shot configuration file",
	Long: `Open config.yaml in your editor (config 'editor', then $EDITOR, then vi).

Use --path to print the file location instead.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPrintPath, "path", false, "Print the config file path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := appVault.ConfigPath

	if configPrintPath {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}

	// A missing file is recreated with defaults, never with SHOT_* overrides
	if !appVault.HasConfig() {
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo("Opening config: "+path))
	return openInEditor(path)
}
