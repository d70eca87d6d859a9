package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags with their prompt counts",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	tags := listService.Tags(getContext())
	if len(tags) == 0 {
		fmt.Fprintln(out, ui.FormatInfo("No tags yet"))
		return nil
	}

	fmt.Fprintln(out, ui.FormatTitle("Tags"))
	fmt.Fprintln(out)

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Tag", Width: 20, MaxWidth: 40, Align: "left"},
		{Header: "Prompts", Width: 7, Align: "right"},
	})
	for _, tc := range tags {
		table.AddRow([]string{ui.IconTag + " " + tc.Tag, fmt.Sprintf("%d", tc.Count)})
	}
	fmt.Fprint(out, table.Render())
	return nil
}
