package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete [query]",
	Aliases: []string{"rm"},
	Short:   "Delete a saved prompt (alias: rm)",
	Long: `Delete a prompt from the archive. The draft is not touched.

Examples:
  shot delete
  shot rm "alley chase"
  shot rm 01927f3a --yes`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	target, err := selectPrompt(cmd, args, "delete")
	if err != nil {
		return handleSelectErr(cmd, err)
	}

	fmt.Fprintf(out, "%s  %s\n", ui.StyleBold.Render(target.Title), ui.FormatMuted(shortID(target.ID)))
	fmt.Fprintln(out, ui.FormatMuted("saved "+target.GetDisplayDate(appConfig.DisplayDateFormat)+"  tags: "+target.GetTagsString()))

	if !confirm(cmd, "Delete this prompt from the archive?", deleteYes) {
		fmt.Fprintln(out, ui.FormatInfo("Nothing deleted"))
		return nil
	}

	if _, err := archiveService.Delete(getContext(), target.ID); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Deleted %q", target.Title)))
	return nil
}
