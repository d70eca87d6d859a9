package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag [command]",
	Short: "Manage tags on saved prompts",
	Long:  `Add or remove tags from saved prompts.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <query> <tags>",
	Short: "Add tags to a prompt",
	Example: `  shot tag add alley "noir, rain"
  shot tag add 01927f3a final`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateTags(cmd, args[0], args[1], true)
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <query> <tags>",
	Aliases: []string{"rm"},
	Short:   "Remove tags from a prompt",
	Example: `  shot tag remove alley rain`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateTags(cmd, args[0], args[1], false)
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}

func updateTags(cmd *cobra.Command, query string, tagsInput string, isAdd bool) error {
	out := cmd.OutOrStdout()

	target, err := selectPrompt(cmd, []string{query}, "tag")
	if err != nil {
		return handleSelectErr(cmd, err)
	}

	tags, changed := mergeTags(target.Tags, domain.ParseTags(tagsInput), isAdd)
	if !changed {
		fmt.Fprintln(out, ui.FormatInfo("No changes to tags."))
		return nil
	}

	updated, err := archiveService.Update(getContext(), target.ID, services.PromptUpdate{Tags: tags})
	if err != nil {
		return err
	}

	action := "Added"
	if !isAdd {
		action = "Removed"
	}

	fmt.Fprintf(out, "%s tags for '%s'\n", ui.FormatSuccess(action), updated.Title)
	fmt.Fprintln(out, ui.RenderKeyValue("Current Tags", updated.GetTagsString()))
	return nil
}

// mergeTags adds or removes tags (case-insensitive) and reports whether
// anything changed. The result is never nil so that an emptied list
// clears the tags.
func mergeTags(existing, input []string, isAdd bool) ([]string, bool) {
	result := make([]string, 0, len(existing)+len(input))
	result = append(result, existing...)
	changed := false

	contains := func(list []string, tag string) bool {
		for _, t := range list {
			if strings.EqualFold(t, tag) {
				return true
			}
		}
		return false
	}

	if isAdd {
		for _, t := range input {
			if !contains(result, t) {
				result = append(result, t)
				changed = true
			}
		}
		return result, changed
	}

	kept := make([]string, 0, len(result))
	for _, e := range result {
		if contains(input, e) {
			changed = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, changed
}
