package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/adapters/clipboard"
	"github.com/kamal-hamza/shot-cli/pkg/config"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your shot installation",
	Long: `Diagnose issues with your shot setup.

Checks for:
  - Vault directory integrity
  - Configuration file validity
  - Archive readability for the configured backend
  - Draft readability
  - Clipboard support and EDITOR`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := getContext()

	fmt.Fprintln(out, ui.FormatTitle(ui.IconShot+" shot doctor"))
	fmt.Fprintln(out)

	failed, saved := 0, 0
	check := func(name string, fn func() error) {
		if !checkStep(out, name, fn) {
			failed++
		}
	}

	// 1. Vault structure
	check("Vault Directory", func() error {
		if !appVault.Exists() {
			return fmt.Errorf("not found at %s", appVault.RootPath)
		}
		return nil
	})

	check("Archive Directory", func() error {
		if _, err := os.Stat(appVault.ArchivePath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", appVault.ArchivePath)
		}
		return nil
	})

	// 2. Config
	check("Configuration File", func() error {
		if !appVault.HasConfig() {
			return fmt.Errorf("missing at %s (defaults in use)", appVault.ConfigPath)
		}
		cfg, err := config.Load(appVault.ConfigPath)
		if err != nil {
			return err
		}
		if cfg.ColorTheme != "" && !ui.IsTheme(cfg.ColorTheme) {
			return fmt.Errorf("color_theme %q is not one of %s (auto in use)",
				cfg.ColorTheme, strings.Join(ui.Themes, ", "))
		}
		return nil
	})

	// 3. Content
	check(fmt.Sprintf("Archive (%s backend)", appConfig.Backend), func() error {
		n, err := archiveService.Check(ctx)
		saved = n
		return err
	})
	if saved > 0 {
		fmt.Fprintf(out, "    %s\n", ui.StyleMuted.Render(fmt.Sprintf("%d saved prompts", saved)))
	}

	check("Draft", func() error {
		_, err := draftService.Load(ctx)
		return err
	})

	// 4. Environment
	check("Clipboard", func() error {
		if !clipboard.Available() {
			return clipboard.ErrUnavailable
		}
		return nil
	})

	check("EDITOR Variable", func() error {
		if appConfig.Editor == "" && os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})

	fmt.Fprintln(out)
	if failed > 0 {
		fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("%d checks reported problems", failed)))
	} else {
		fmt.Fprintln(out, ui.FormatSuccess("Everything looks good"))
	}
	return nil
}

// checkStep runs a check function and prints the result nicely
func checkStep(out io.Writer, name string, check func() error) bool {
	err := check()
	if err == nil {
		fmt.Fprintf(out, "%s %s\n", ui.StyleSuccess.Render(ui.IconSuccess), name)
		return true
	}

	fmt.Fprintf(out, "%s %s\n", ui.StyleError.Render(ui.IconError), name)
	fmt.Fprintf(out, "    %s\n", ui.StyleMuted.Render(err.Error()))
	return false
}
