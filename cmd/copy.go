package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the generated prompt to the clipboard",
	Long: `Copy the prompt generated from the current draft to the system clipboard.

An empty draft produces no prompt and is reported as an error.`,
	Args: cobra.NoArgs,
	RunE: runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	prompt, err := draftService.Copy(getContext())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPrompt) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatWarning("Nothing to copy: the draft is empty"))
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatCopied(fmt.Sprintf("Prompt copied to clipboard (%d characters)", len([]rune(prompt)))))
	return nil
}
