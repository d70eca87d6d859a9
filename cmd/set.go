package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var setCmd = &cobra.Command{
	Use:   "set <field> <value...>",
	Short: "Set a field of the draft",
	Long: `Set one field of the working draft. An empty value clears it.

Fields (aliases in brackets):
  scene         [description, scene-description]
  shot          [camera-shot]
  lens          [camera-lens]
  notes         [cinematography-notes, camera-notes]
  lighting
  mood
  audio
  dialogue

Use "-" as the value to read it from stdin (multi-line text).
Actions are edited with 'shot action'.

Examples:
  shot set scene "A neon-lit alley in the rain"
  shot set lens 35mm anamorphic
  shot set dialogue - < lines.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	field, err := domain.ResolveField(args[0])
	if err != nil {
		return err
	}
	if field == domain.FieldActions {
		return errors.New("actions are a list: use 'shot action add|set|remove'")
	}

	value := strings.Join(args[1:], " ")
	if value == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		value = strings.TrimRight(string(data), "\n")
	}

	if _, err := draftService.Update(ctx, func(f *domain.ShotFields) error {
		return f.Set(field, value)
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if value == "" {
		fmt.Fprintln(out, ui.FormatSuccess("Cleared "+fieldLabel(field)))
	} else {
		fmt.Fprintln(out, ui.FormatSuccess(fieldLabel(field)+" set"))
	}
	return nil
}
