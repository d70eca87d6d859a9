package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/ui"
	"github.com/kamal-hamza/shot-cli/pkg/vault"
)

var (
	purgeForce  bool
	purgeConfig bool
)

// purgeCmd represents the purge command
var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete the entire vault and all its contents",
	Long: `Delete the vault directory and everything in it.

This permanently deletes:
  - The prompt archive (file or sqlite backend)
  - The draft form
  - The log file

The configuration file is kept unless --config is given.
This action cannot be undone.

Examples:
  # Purge the vault with confirmation prompts
  shot purge

  # Also remove config.yaml, without asking (dangerous!)
  shot purge --config --force`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "Skip confirmation prompt (dangerous)")
	purgeCmd.Flags().BoolVar(&purgeConfig, "config", false, "Also delete the configuration file")
}

func runPurge(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !appVault.Exists() {
		fmt.Fprintln(out, ui.FormatWarning("Vault does not exist."))
		fmt.Fprintln(out, ui.FormatInfo("Vault location: "+appVault.RootPath))
		return nil
	}

	fmt.Fprintln(out, ui.StyleError.Render(ui.IconWarning+"  WARNING: DESTRUCTIVE OPERATION"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %s\n", ui.StyleBold.Render("Location:"), appVault.RootPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This will delete:")
	fmt.Fprintf(out, "  • %s\n", ui.StyleMuted.Render("All saved prompts"))
	fmt.Fprintf(out, "  • %s\n", ui.StyleMuted.Render("The draft"))
	fmt.Fprintf(out, "  • %s\n", ui.StyleMuted.Render("The log file"))
	if purgeConfig {
		fmt.Fprintf(out, "  • %s\n", ui.StyleMuted.Render("Configuration ("+appVault.ConfigPath+")"))
	}
	fmt.Fprintln(out)

	if !purgeForce && !confirmPurge(cmd.InOrStdin(), out, appVault.RootPath) {
		fmt.Fprintln(out, ui.FormatInfo("Purge cancelled."))
		return nil
	}

	fmt.Fprintln(out, ui.FormatInfo("Purging vault..."))

	if err := purgeVault(appVault, purgeConfig); err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to delete vault: "+err.Error()))
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess("Vault purged"))
	fmt.Fprintln(out, ui.FormatInfo("To create a new vault, run: shot init"))
	return nil
}

// confirmPurge asks for "yes" and then for the vault path typed back.
// Anything else, including EOF, cancels.
func confirmPurge(in io.Reader, out io.Writer, rootPath string) bool {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, ui.StyleError.Render("Are you absolutely sure you want to delete the vault? (yes/no): "))
	response, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(response)) != "yes" {
		return false
	}

	fmt.Fprintf(out, "%s %s\n",
		ui.StyleError.Render("To confirm, type the vault path:"),
		ui.StyleBold.Render(rootPath))
	fmt.Fprint(out, ui.StyleError.Render("> "))
	response, _ = reader.ReadString('\n')
	return strings.TrimSpace(response) == rootPath
}

// purgeVault removes the vault directory, and optionally the config file
// and its directory when that is left empty
func purgeVault(v *vault.Vault, withConfig bool) error {
	// The sqlite handle must be released before its file goes away
	if blobStore != nil {
		_ = blobStore.Close()
		blobStore = nil
	}

	if err := os.RemoveAll(v.RootPath); err != nil {
		return err
	}

	if !withConfig {
		return nil
	}
	if err := os.Remove(v.ConfigPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete config: %w", err)
	}
	// Only removes the directory when empty
	_ = os.Remove(filepath.Dir(v.ConfigPath))
	return nil
}
