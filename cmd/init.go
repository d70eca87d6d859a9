package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/config"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
	"github.com/kamal-hamza/shot-cli/pkg/vault"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the shot vault",
	Long: `Initialize the shot data directory and configuration.

This creates the managed vault at ~/.local/share/shot/ with:
  - archive/     : Saved prompts (file backend)
  - draft.yaml   : The form you are working on (created on first edit)
  - shot.log     : Debug and activity log

and a default config at ~/.config/shot/config.yaml.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	v, err := vault.New()
	if err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to determine vault location"))
		return err
	}

	if v.Exists() {
		fmt.Fprintln(out, ui.FormatWarning("Vault already initialized"))
		fmt.Fprintln(out, ui.FormatMuted("Location: "+v.RootPath))
		return nil
	}

	fmt.Fprintln(out, ui.FormatShot("Initializing shot vault..."))
	fmt.Fprintln(out)

	if err := initVault(v); err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to initialize vault"))
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess("Vault initialized successfully!"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.RenderKeyValue("Location", v.RootPath))
	fmt.Fprintln(out, ui.RenderKeyValue("Config", v.ConfigPath))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatInfo("Next steps:"))
	fmt.Fprintln(out, ui.FormatMuted("  1. Build a shot interactively: shot compose"))
	fmt.Fprintln(out, ui.FormatMuted("  2. Or field by field: shot set scene \"A rain-soaked alley\""))
	fmt.Fprintln(out, ui.FormatMuted("  3. Archive it: shot save \"Alley chase\" --tags noir,night"))

	return nil
}

// initVault creates the directories and writes a default config unless
// one is already present
func initVault(v *vault.Vault) error {
	if err := v.Initialize(); err != nil {
		return err
	}

	if !v.HasConfig() {
		if err := config.DefaultConfig().Save(v.ConfigPath); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}
	return nil
}
