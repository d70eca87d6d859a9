package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var (
	showDraft bool
	showRaw   bool
)

var showCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"preview"},
	Short:   "Print the generated prompt for the draft (alias: preview)",
	Long: `Print the prompt assembled from the current draft.

  --draft   list the raw field values instead
  --raw     print the bare prompt text (for piping)`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showDraft, "draft", "d", false, "Show the raw draft fields")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the prompt without decoration")
}

func runShow(cmd *cobra.Command, args []string) error {
	fields, err := draftService.Load(getContext())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showDraft {
		printFields(out, *fields)
		return nil
	}

	prompt := domain.GeneratePrompt(*fields)
	if showRaw {
		if prompt != "" {
			fmt.Fprintln(out, prompt)
		}
		return nil
	}

	printPrompt(out, prompt)
	return nil
}

// printPrompt shows prompt text in a box, or a hint when it is empty
func printPrompt(out io.Writer, prompt string) {
	if prompt == "" {
		fmt.Fprintln(out, ui.FormatMuted("Fill in some fields to generate a prompt."))
		return
	}
	fmt.Fprintln(out, ui.RenderPrompt(prompt, 0))
	fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d characters", len([]rune(prompt)))))
}

var fieldLabels = map[string]string{
	domain.FieldSceneDescription:    "Scene Description",
	domain.FieldCameraShot:          "Camera Shot",
	domain.FieldCameraLens:          "Camera Lens",
	domain.FieldCinematographyNotes: "Cinematography Notes",
	domain.FieldLighting:            "Lighting",
	domain.FieldMood:                "Mood",
	domain.FieldActions:             "Actions",
	domain.FieldAudio:               "Audio",
	domain.FieldDialogue:            "Dialogue",
}

// fieldLabel returns the display name of a canonical field
func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// printFields lists every field of a form, actions last
func printFields(out io.Writer, f domain.ShotFields) {
	for _, field := range domain.TextFields {
		value, _ := f.Get(field)
		if value == "" {
			value = ui.FormatMuted("-")
		} else if strings.Contains(value, "\n") {
			value = "\n    " + strings.ReplaceAll(value, "\n", "\n    ")
		}
		fmt.Fprintln(out, ui.RenderKeyValue(fieldLabel(field), value))
	}
	fmt.Fprintln(out, ui.RenderKeyValue(fieldLabel(domain.FieldActions), ""))
	fmt.Fprint(out, renderActions(f.Actions))
}
