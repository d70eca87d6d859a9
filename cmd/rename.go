package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var renameCmd = &cobra.Command{
	Use:   "rename <query> <new title...>",
	Short: "Rename a saved prompt",
	Long: `Change the title of a saved prompt. The prompt keeps its id, tags and
creation date; its update time is refreshed.

Examples:
  shot rename alley "Alley chase, final"
  shot rename 01927f3a Market at dawn`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	target, err := selectPrompt(cmd, args[:1], "rename")
	if err != nil {
		return handleSelectErr(cmd, err)
	}

	newTitle := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := domain.ValidateTitle(newTitle); err != nil {
		return err
	}
	if newTitle == target.Title {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo("Title unchanged"))
		return nil
	}

	updated, err := archiveService.Update(getContext(), target.ID, services.PromptUpdate{Title: &newTitle})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Renamed %q → %q", target.Title, updated.Title)))
	return nil
}
