package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the draft to a blank form",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fields, err := draftService.Load(ctx)
	if err != nil {
		return err
	}
	if fields.FilledCount() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo("Draft is already empty"))
		return nil
	}

	if !confirm(cmd, "Are you sure you want to clear all fields?", clearYes) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	if err := draftService.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess("Draft cleared"))
	return nil
}
