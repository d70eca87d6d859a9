package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var statsChart string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics and activity",
	Long: `Analyze the prompt archive and display:
  - Prompt, tag and version counts
  - Average prompt length and filled fields
  - 7-day save activity and streak
  - Top tags

--chart writes an HTML page with a tag chart and a 30-day activity chart.

Examples:
  shot stats
  shot stats --chart stats.html`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsChart, "chart", "", "Write an HTML chart page to this file")
}

// archiveStats is the aggregate view of the archive
type archiveStats struct {
	Total      int
	Tagged     int
	Versions   int
	TotalChars int
	AvgFilled  float64
	Tags       []services.TagCount // most used first
	Activity   map[string]int      // "YYYY-MM-DD" (local) -> saves
	Streak     int
	Latest     *domain.SavedPrompt
}

// computeStats aggregates prompts relative to now
func computeStats(prompts []domain.SavedPrompt, now time.Time) archiveStats {
	st := archiveStats{
		Total:    len(prompts),
		Activity: make(map[string]int),
	}

	tagCounts := make(map[string]int)
	var tagOrder []string
	filled := 0
	var latest time.Time

	for i := range prompts {
		p := &prompts[i]

		if len(p.Tags) > 0 {
			st.Tagged++
		}
		for _, t := range p.Tags {
			if _, seen := tagCounts[t]; !seen {
				tagOrder = append(tagOrder, t)
			}
			tagCounts[t]++
		}

		if domain.BaseTitle(p.Title) != p.Title {
			st.Versions++
		}

		st.TotalChars += len([]rune(p.Prompt()))
		filled += p.FormData.FilledCount()

		if created := p.Created(); !created.IsZero() {
			st.Activity[created.Local().Format("2006-01-02")]++
		}
		if updated := p.Updated(); st.Latest == nil || updated.After(latest) {
			latest = updated
			st.Latest = p
		}
	}

	if st.Total > 0 {
		st.AvgFilled = float64(filled) / float64(st.Total)
	}

	for _, t := range tagOrder {
		st.Tags = append(st.Tags, services.TagCount{Tag: t, Count: tagCounts[t]})
	}
	sort.SliceStable(st.Tags, func(i, j int) bool {
		return st.Tags[i].Count > st.Tags[j].Count
	})

	st.Streak = calculateStreak(st.Activity, now)
	return st
}

func runStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	prompts := archiveService.GetAll(getContext())
	now := time.Now()
	st := computeStats(prompts, now)

	fmt.Fprintln(out, ui.FormatShot("Analyzing archive..."))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatTitle("Archive Analytics"))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Saved Prompts:"), st.Total)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Tagged:"), st.Tagged)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Unique Tags:"), len(st.Tags))
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Versions:"), st.Versions)

	avgChars := 0
	if st.Total > 0 {
		avgChars = st.TotalChars / st.Total
	}
	fmt.Fprintf(w, "%s\t%d chars/prompt\n", ui.StyleBold.Render("Average Length:"), avgChars)
	fmt.Fprintf(w, "%s\t%.1f\n", ui.StyleBold.Render("Fields Filled:"), st.AvgFilled)
	w.Flush()
	fmt.Fprintln(out)

	renderHeatmap(out, st.Activity, now)

	streakIcon := "🔥"
	if st.Streak == 0 {
		streakIcon = "🧊"
	}
	fmt.Fprintf(out, "%s %s %d days\n", streakIcon, ui.StyleBold.Render("Current Streak:"), st.Streak)
	if st.Latest != nil {
		fmt.Fprintf(out, "   %s %s (%s)\n", ui.StyleMuted.Render("Last updated:"),
			st.Latest.Updated().Local().Format("Jan 02"), st.Latest.Title)
	}
	fmt.Fprintln(out)

	renderTopTags(out, st.Tags)

	if statsChart != "" {
		if err := writeStatsChart(statsChart, st, now); err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.FormatSuccess("Chart written to "+statsChart))
	}

	return nil
}

// calculateStreak counts consecutive days with saves, looking back from
// today (or yesterday, so a streak survives until the day is over)
func calculateStreak(activity map[string]int, now time.Time) int {
	day := now
	if activity[day.Format("2006-01-02")] == 0 {
		day = day.AddDate(0, 0, -1)
		if activity[day.Format("2006-01-02")] == 0 {
			return 0
		}
	}

	streak := 0
	for activity[day.Format("2006-01-02")] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// renderHeatmap prints a GitHub-style activity row
func renderHeatmap(out io.Writer, activity map[string]int, now time.Time) {
	fmt.Fprintln(out, ui.StyleHeader.Render("Activity (Last 7 Days)"))

	var blocks, labels []string
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		block := "⬜"
		if activity[day.Format("2006-01-02")] > 0 {
			block = "🟩"
		}
		blocks = append(blocks, block)
		// Emojis are two cells wide
		labels = append(labels, fmt.Sprintf("%-4s", day.Format("Mon")))
	}

	fmt.Fprintln(out, strings.Join(blocks, "  "))
	fmt.Fprintln(out, ui.StyleMuted.Render(strings.Join(labels, "")))
}

// renderTopTags displays a horizontal bar chart of the five biggest tags
func renderTopTags(out io.Writer, tags []services.TagCount) {
	if len(tags) == 0 {
		return
	}

	fmt.Fprintln(out, ui.StyleHeader.Render("Top Tags"))

	limit := min(5, len(tags))
	maxCount := tags[0].Count
	barWidth := 20

	for _, t := range tags[:limit] {
		length := int(math.Ceil(float64(t.Count) / float64(maxCount) * float64(barWidth)))
		fmt.Fprintf(out, "%s %-15s %s\n",
			ui.StyleAccent.Render(strings.Repeat("█", length)),
			t.Tag,
			ui.StyleMuted.Render(fmt.Sprintf("%d", t.Count)),
		)
	}
}

// writeStatsChart renders the tag and activity charts to an HTML page
func writeStatsChart(path string, st archiveStats, now time.Time) error {
	tagBar := charts.NewBar()
	tagBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Prompts per tag"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	tagNames := make([]string, len(st.Tags))
	tagData := make([]opts.BarData, len(st.Tags))
	for i, t := range st.Tags {
		tagNames[i] = t.Tag
		tagData[i] = opts.BarData{Value: t.Count}
	}
	tagBar.SetXAxis(tagNames).AddSeries("Prompts", tagData)

	activityBar := charts.NewBar()
	activityBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Saves, last 30 days"}),
	)
	var days []string
	var saves []opts.BarData
	for i := 29; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		days = append(days, day[5:])
		saves = append(saves, opts.BarData{Value: st.Activity[day]})
	}
	activityBar.SetXAxis(days).AddSeries("Saves", saves)

	page := components.NewPage()
	page.PageTitle = "shot archive stats"
	page.AddCharts(tagBar, activityBar)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
