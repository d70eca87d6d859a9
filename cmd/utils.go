package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

// errCancelled is returned when the user backs out of a picker or prompt
var errCancelled = errors.New("cancelled")

// GetPreferredEditor returns the editor command from config, env, or default
func GetPreferredEditor() string {
	// 1. Check Config
	if appConfig != nil && appConfig.Editor != "" {
		return appConfig.Editor
	}
	// 2. Check Environment
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	// 3. Fallback
	return "vi"
}

// openInEditor runs the preferred editor on path and waits for it
func openInEditor(path string) error {
	c := exec.Command(GetPreferredEditor(), path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// listAllPrompts returns the archive in the configured default order
func listAllPrompts(cmd *cobra.Command) ([]domain.SavedPrompt, error) {
	req := services.ListRequest{
		SortBy:  appConfig.DefaultSort,
		Reverse: appConfig.ReverseSort,
	}
	if req.SortBy == "none" {
		req.SortBy = ""
	}

	resp, err := listService.Execute(getContext(), req)
	if err != nil {
		return nil, err
	}
	return resp.Prompts, nil
}

// selectPrompt resolves the optional [query] argument to one saved prompt.
// No query opens a fuzzy finder over the whole archive; a query with several
// matches shows a numbered list. verb is used in the prompts ("load", "delete").
func selectPrompt(cmd *cobra.Command, args []string, verb string) (*domain.SavedPrompt, error) {
	out := cmd.OutOrStdout()

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		prompts, err := listAllPrompts(cmd)
		if err != nil {
			return nil, err
		}
		if len(prompts) == 0 {
			fmt.Fprintln(out, ui.FormatWarning("No saved prompts"))
			return nil, errCancelled
		}
		if len(prompts) == 1 {
			return &prompts[0], nil
		}
		return findPrompt(prompts, verb)
	}

	query := strings.Join(args, " ")
	resp, err := listService.Search(getContext(), services.SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Total == 0:
		fmt.Fprintln(out, ui.FormatWarning("No prompts found matching: "+query))
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, query)
	case resp.Total == 1 || resp.Prompts[0].ID == query:
		return &resp.Prompts[0], nil
	}

	labels := make([]string, len(resp.Prompts))
	for i, p := range resp.Prompts {
		labels[i] = ui.StyleBold.Render(p.Title) + " " + ui.StyleMuted.Render("("+shortID(p.ID)+")")
	}

	idx, err := chooseFromList(cmd.InOrStdin(), out, labels, "Select a prompt to "+verb)
	if err != nil {
		return nil, err
	}
	return &resp.Prompts[idx], nil
}

// findPrompt runs the interactive fuzzy finder with a prompt preview
func findPrompt(prompts []domain.SavedPrompt, verb string) (*domain.SavedPrompt, error) {
	idx, err := fuzzyfinder.Find(
		prompts,
		func(i int) string {
			return prompts[i].Title
		},
		fuzzyfinder.WithPromptString(fmt.Sprintf("%s> ", verb)),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return promptPreview(prompts[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errCancelled
		}
		return nil, err
	}
	return &prompts[idx], nil
}

// promptPreview is the fuzzy finder side panel for one saved prompt
func promptPreview(p domain.SavedPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", p.Title)
	fmt.Fprintf(&b, "ID:      %s\n", p.ID)
	fmt.Fprintf(&b, "Created: %s\n", p.GetDisplayDate(appConfig.DisplayDateFormat))
	fmt.Fprintf(&b, "Tags:    %s\n\n", p.GetTagsString())

	text := p.Prompt()
	if text == "" {
		text = "(empty prompt)"
	}
	b.WriteString(text)
	return b.String()
}

// chooseFromList prints a numbered list and reads a selection, retrying
// until the input is a valid number
func chooseFromList(in io.Reader, out io.Writer, labels []string, question string) (int, error) {
	fmt.Fprintln(out, ui.FormatInfo(fmt.Sprintf("Found %d matches:", len(labels))))
	fmt.Fprintln(out)

	for i, label := range labels {
		fmt.Fprintf(out, "  %d. %s\n", i+1, label)
	}
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, ui.StyleInfo.Render(fmt.Sprintf("%s (1-%d): ", question, len(labels))))

		input, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(input) == "" {
			// EOF: nothing more will arrive
			return 0, errCancelled
		}

		selection, convErr := strconv.Atoi(strings.TrimSpace(input))
		if convErr != nil {
			fmt.Fprintln(out, ui.FormatWarning("Invalid input. Please enter a number."))
			continue
		}

		if selection < 1 || selection > len(labels) {
			fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("Please enter a number between 1 and %d.", len(labels))))
			continue
		}

		fmt.Fprintln(out)
		return selection - 1, nil
	}
}

// confirm asks a y/n question. skip answers yes without asking (--yes).
func confirm(cmd *cobra.Command, question string, skip bool) bool {
	if skip {
		return true
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.StyleWarning.Render(question+" (y/n): "))
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

// shortIDLen keeps the millisecond part of a v7 UUID, enough to tell
// prompts apart in a listing and to select them by prefix
const shortIDLen = 13

// shortID trims an id for listings
func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// handleSelectErr turns a cancelled picker into a quiet no-op
func handleSelectErr(cmd *cobra.Command, err error) error {
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMuted("Cancelled."))
		return nil
	}
	return err
}
