package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var (
	saveTags string
	saveCopy bool
)

var saveCmd = &cobra.Command{
	Use:   "save [title...]",
	Short: "Save the draft to the archive",
	Long: `Save the current draft as a new archived prompt.

A missing title becomes "Untitled Prompt". Tags are comma separated;
blank entries are dropped. The draft is left as it is.

Examples:
  shot save "Alley chase"
  shot save "Alley chase" --tags "noir, night, rain"
  shot save Market --copy`,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVarP(&saveTags, "tags", "t", "", "Comma-separated tags")
	saveCmd.Flags().BoolVarP(&saveCopy, "copy", "c", false, "Also copy the prompt to the clipboard")
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()

	fields, err := draftService.Load(ctx)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(args, " "))
	if title != "" {
		if err := domain.ValidateTitle(title); err != nil {
			return err
		}
	}

	saved, err := archiveService.Save(ctx, services.SaveRequest{
		Title:    title,
		Tags:     domain.ParseTags(saveTags),
		FormData: *fields,
	})
	if err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to save prompt"))
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess("Prompt saved"))
	fmt.Fprintln(out, ui.RenderKeyValue("Title", saved.Title))
	fmt.Fprintln(out, ui.RenderKeyValue("ID", saved.ID))
	if len(saved.Tags) > 0 {
		fmt.Fprintln(out, ui.RenderKeyValue("Tags", saved.GetTagsString()))
	}

	if saveCopy || appConfig.CopyOnSave {
		if _, err := draftService.CopyFields(saved.FormData); err != nil {
			if errors.Is(err, domain.ErrEmptyPrompt) {
				fmt.Fprintln(out, ui.FormatMuted("Prompt is empty, nothing copied"))
				return nil
			}
			// The save already succeeded
			logger.Warn("copy after save failed", zap.Error(err))
			fmt.Fprintln(out, ui.FormatWarning(err.Error()))
			return nil
		}
		fmt.Fprintln(out, ui.FormatCopied("Copied to clipboard"))
	}

	return nil
}
