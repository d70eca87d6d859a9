package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Edit the action rows of the draft",
	Long: `Edit the list of actions. Rows are numbered from 1; blank rows are
kept in the draft but left out of the generated prompt.

Examples:
  shot action add "She turns toward the camera"
  shot action set 2 "The train doors slide shut"
  shot action remove 3`,
	RunE: runActionList,
}

var actionAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Append an action row (blank if no text)",
	RunE:  runActionAdd,
}

var actionSetCmd = &cobra.Command{
	Use:   "set <n> <text...>",
	Short: "Replace action row n",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runActionSet,
}

var actionRemoveCmd = &cobra.Command{
	Use:     "remove <n>",
	Aliases: []string{"rm"},
	Short:   "Remove action row n (the last row cannot be removed)",
	Args:    cobra.ExactArgs(1),
	RunE:    runActionRemove,
}

func init() {
	actionCmd.AddCommand(actionAddCmd)
	actionCmd.AddCommand(actionSetCmd)
	actionCmd.AddCommand(actionRemoveCmd)
}

func runActionList(cmd *cobra.Command, args []string) error {
	fields, err := draftService.Load(getContext())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderActions(fields.Actions))
	return nil
}

func runActionAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	fields, err := draftService.Update(getContext(), func(f *domain.ShotFields) error {
		f.AddAction(text)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Added action %d", len(fields.Actions))))
	return nil
}

func runActionSet(cmd *cobra.Command, args []string) error {
	n, err := parseRow(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	if _, err := draftService.Update(getContext(), func(f *domain.ShotFields) error {
		return f.SetAction(n, text)
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Action %d set", n)))
	return nil
}

func runActionRemove(cmd *cobra.Command, args []string) error {
	n, err := parseRow(args[0])
	if err != nil {
		return err
	}

	fields, err := draftService.Update(getContext(), func(f *domain.ShotFields) error {
		return f.RemoveAction(n)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(fmt.Sprintf("Removed action %d (%d left)", n, len(fields.Actions))))
	return nil
}

func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidActionIndex, s)
	}
	return n, nil
}

// renderActions lists rows with their numbers, marking blank ones
func renderActions(actions []string) string {
	var b strings.Builder
	for i, a := range actions {
		text := a
		if strings.TrimSpace(a) == "" {
			text = ui.FormatMuted("(blank)")
		}
		fmt.Fprintf(&b, "  %s %s\n", ui.StyleAccent.Render(fmt.Sprintf("%d.", i+1)), text)
	}
	return b.String()
}
