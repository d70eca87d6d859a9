package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/reference"
)

var (
	guideRaw   bool
	guideWidth int
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the prompting guide",
	Long: `Render the built-in guide to writing video prompts: prompt anatomy,
camera language, lighting, motion and timing, and common pitfalls.`,
	Args: cobra.NoArgs,
	RunE: runGuide,
}

func init() {
	guideCmd.Flags().BoolVar(&guideRaw, "raw", false, "Print the markdown source")
	guideCmd.Flags().IntVarP(&guideWidth, "width", "w", 80, "Word wrap width")
}

func runGuide(cmd *cobra.Command, args []string) error {
	if guideRaw {
		fmt.Fprint(cmd.OutOrStdout(), reference.Guide())
		return nil
	}

	style := "auto"
	if appConfig != nil {
		style = appConfig.ColorTheme
	}

	out, err := reference.RenderGuide(style, guideWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
