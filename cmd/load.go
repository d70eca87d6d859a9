package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var loadYes bool

var loadCmd = &cobra.Command{
	Use:   "load [query]",
	Short: "Load a saved prompt into the draft",
	Long: `Replace the draft with the fields of a saved prompt.

The query matches titles, ids (or an id prefix) and tags. Without a
query an interactive finder opens. If the draft has content you are
asked before it is replaced.

Examples:
  shot load
  shot load "alley chase"
  shot load 01927f3a`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVarP(&loadYes, "yes", "y", false, "Replace the draft without asking")
}

func runLoad(cmd *cobra.Command, args []string) error {
	prompt, err := selectPrompt(cmd, args, "load")
	if err != nil {
		return handleSelectErr(cmd, err)
	}

	if !confirmReplaceDraft(cmd, loadYes) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	if err := draftService.LoadPrompt(getContext(), *prompt); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Loaded %q into the draft", prompt.Title)))
	return nil
}

// confirmReplaceDraft asks before a non-empty draft is overwritten
func confirmReplaceDraft(cmd *cobra.Command, skip bool) bool {
	current, err := draftService.Load(getContext())
	if err != nil || current.FilledCount() == 0 {
		return true
	}
	return confirm(cmd, "The draft has unsaved content. Replace it?", skip)
}

// printSaved shows the header of a saved prompt
func printSaved(cmd *cobra.Command, p *domain.SavedPrompt) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.RenderKeyValue("Title", p.Title))
	fmt.Fprintln(out, ui.RenderKeyValue("ID", p.ID))
	fmt.Fprintln(out, ui.RenderKeyValue("Tags", p.GetTagsString()))
}
