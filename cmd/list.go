package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var (
	listSearch    string
	listTagFilter string
	listSortBy    string
	listReverse   bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved prompts",
	Aliases: []string{"ls"},
	Long: `List archived prompts in a table.

--search matches the title or scene description (case-insensitive),
--tag keeps prompts carrying exactly that tag. Sorting defaults to the
config (default_sort, reverse_sort).

Examples:
  shot list
  shot list --search alley
  shot list --tag noir --sort title
  shot ls --sort updated --reverse`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by title or scene description")
	listCmd.Flags().StringVar(&listTagFilter, "tag", "", "Filter prompts by tag")
	// Sort defaults to "date", but we handle config override in runList
	listCmd.Flags().StringVar(&listSortBy, "sort", "date", "Sort by field (date, updated, title, none)")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "Reverse sort order")
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// If the flag was NOT changed by the user, use the config default
	if !cmd.Flags().Changed("sort") {
		listSortBy = appConfig.DefaultSort
	}
	if !cmd.Flags().Changed("reverse") {
		listReverse = appConfig.ReverseSort
	}
	sortBy := listSortBy
	if sortBy == "none" {
		sortBy = ""
	}

	req := services.ListRequest{
		Search:  listSearch,
		Tag:     listTagFilter,
		SortBy:  sortBy,
		Reverse: listReverse,
	}

	resp, err := listService.Execute(getContext(), req)
	if err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to list prompts"))
		return err
	}

	if len(resp.Prompts) == 0 {
		switch {
		case resp.Total == 0:
			fmt.Fprintln(out, ui.FormatWarning("No saved prompts"))
			fmt.Fprintln(out, ui.FormatInfo("Save your first prompt with: shot save \"My Shot\""))
		default:
			fmt.Fprintln(out, ui.FormatWarning("No prompts match your filters"))
		}
		return nil
	}

	title := "Saved Prompts"
	if listTagFilter != "" {
		title = fmt.Sprintf("Saved Prompts (tag: %s)", listTagFilter)
	}
	fmt.Fprintln(out, ui.FormatTitle(title))
	fmt.Fprintln(out)

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: shortIDLen, Align: "left"},
		{Header: "Title", Width: 28, MaxWidth: 32, Align: "left"},
		{Header: "Date", Width: 10, Align: "left"},
		{Header: "Tags", Width: 16, MaxWidth: 24, Align: "left"},
		{Header: "Preview", Width: 30, MaxWidth: 48, Align: "left"},
	})

	for _, p := range resp.Prompts {
		table.AddRow([]string{
			shortID(p.ID),
			p.Title,
			p.GetDisplayDate(appConfig.DisplayDateFormat),
			p.GetTagsString(),
			listService.Preview(p.FormData),
		})
	}

	fmt.Fprint(out, table.Render())
	fmt.Fprintln(out)

	if len(resp.Prompts) == resp.Total {
		fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("Total: %d prompts", resp.Total)))
	} else {
		fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("Showing %d of %d prompts", len(resp.Prompts), resp.Total)))
	}

	return nil
}
