package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var (
	duplicateNoLoad bool
	duplicateYes    bool
)

var duplicateCmd = &cobra.Command{
	Use:     "duplicate [query]",
	Aliases: []string{"dup"},
	Short:   "Save a new version of a prompt and load it (alias: dup)",
	Long: `Copy a saved prompt under the next free version title and load the
copy into the draft.

Versions share a base title: duplicating "Alley", "Alley v1" or
"Alley v3" all produce "Alley v4" when v3 is the highest so far.

Examples:
  shot duplicate "alley"
  shot dup --no-load`,
	RunE: runDuplicate,
}

func init() {
	duplicateCmd.Flags().BoolVar(&duplicateNoLoad, "no-load", false, "Keep the current draft")
	duplicateCmd.Flags().BoolVarP(&duplicateYes, "yes", "y", false, "Replace the draft without asking")
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	source, err := selectPrompt(cmd, args, "duplicate")
	if err != nil {
		return handleSelectErr(cmd, err)
	}

	copied, err := archiveService.Duplicate(ctx, source.ID)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatError("Failed to duplicate prompt"))
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Created %q", copied.Title)))
	printSaved(cmd, copied)

	if duplicateNoLoad || !confirmReplaceDraft(cmd, duplicateYes) {
		return nil
	}
	if err := draftService.LoadPrompt(ctx, *copied); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo("Loaded into the draft"))
	return nil
}
