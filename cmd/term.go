package cmd

import (
	"errors"
	"fmt"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/reference"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var termListOnly bool

var termCmd = &cobra.Command{
	Use:   "term [group] [query...]",
	Short: "Look up a reference term and insert it into the draft",
	Long: `Browse the built-in cinematography reference and insert a term into
the matching field of the draft.

Groups: camera-shot, camera-lens, cinematography-notes, lighting, mood, actions
(field aliases such as "shot", "lens" or "notes" also work).

Without a group, the groups are listed. Without a query, an interactive
finder opens. A query with several matches shows a numbered list.

Text fields get ", <term>" appended; actions fill the first blank row.

Examples:
  shot term lighting              # pick interactively
  shot term shot close            # "Close-Up", "Extreme Close-Up", ...
  shot term lens 85mm
  shot term mood --list`,
	RunE: runTerm,
}

func init() {
	termCmd.Flags().BoolVarP(&termListOnly, "list", "l", false, "List matching terms without inserting")
}

func runTerm(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	catalog, err := reference.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintln(out, ui.FormatTitle("Reference Groups"))
		fmt.Fprintln(out)
		for _, g := range catalog.Groups {
			fmt.Fprintf(out, "  %s  %s\n", ui.StyleSuccess.Render(g.Name), ui.FormatMuted(g.Title))
		}
		return nil
	}

	group, err := catalog.Group(args[0])
	if err != nil {
		return err
	}
	query := strings.Join(args[1:], " ")

	if termListOnly {
		printTerms(cmd, group.Find(query))
		return nil
	}

	term, err := selectTerm(cmd, group, query)
	if err != nil {
		return handleSelectErr(cmd, err)
	}

	if _, err := draftService.Update(getContext(), func(f *domain.ShotFields) error {
		return f.InsertTerm(group.Field, term.Term)
	}); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Inserted %q into %s", term.Term, fieldLabel(group.Field))))
	return nil
}

// selectTerm picks one term from the group for query
func selectTerm(cmd *cobra.Command, group *reference.Group, query string) (*reference.Term, error) {
	if strings.TrimSpace(query) == "" {
		terms := group.Terms()
		idx, err := fuzzyfinder.Find(
			terms,
			func(i int) string {
				return terms[i].Term
			},
			fuzzyfinder.WithPromptString(group.Title+"> "),
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return fmt.Sprintf("%s\n%s\n\n%s", terms[i].Term, terms[i].Section, terms[i].Description)
			}),
		)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil, errCancelled
			}
			return nil, err
		}
		return &terms[idx], nil
	}

	matches := group.Find(query)
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: no %s term matching %q", domain.ErrNotFound, group.Name, query)
	case len(matches) == 1 || strings.EqualFold(matches[0].Term, strings.TrimSpace(query)):
		return &matches[0], nil
	}

	labels := make([]string, len(matches))
	for i, t := range matches {
		labels[i] = ui.StyleBold.Render(t.Term) + " " + ui.FormatMuted(t.Description)
	}
	idx, err := chooseFromList(cmd.InOrStdin(), cmd.OutOrStdout(), labels, "Select a term")
	if err != nil {
		return nil, err
	}
	return &matches[idx], nil
}

// printTerms lists terms under their section headings
func printTerms(cmd *cobra.Command, terms []reference.Term) {
	out := cmd.OutOrStdout()
	if len(terms) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No matching terms"))
		return
	}

	section := ""
	for _, t := range terms {
		if t.Section != section {
			if section != "" {
				fmt.Fprintln(out)
			}
			section = t.Section
			fmt.Fprintln(out, ui.StyleSection.Render(section))
		}
		fmt.Fprintf(out, "  %s  %s\n", ui.StyleBold.Render(t.Term), ui.FormatMuted(t.Description))
	}
}
