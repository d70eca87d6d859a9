package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

var (
	exportFormat string
	exportTag    string
)

// ExportProfile defines how one output format is written
type ExportProfile struct {
	Extension string
	// Bundle formats write one file for the whole archive
	Bundle bool
	Render func(p domain.SavedPrompt) ([]byte, error)
}

// Registry of supported formats
var exportProfiles = map[string]ExportProfile{
	"json": {
		Extension: "json",
		Bundle:    true,
	},
	"text": {
		Extension: "txt",
		Render: func(p domain.SavedPrompt) ([]byte, error) {
			return []byte(p.Prompt() + "\n"), nil
		},
	},
	"markdown": {
		Extension: "md",
		Render:    renderMarkdown,
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [output]",
	Short: "Export saved prompts (JSON, text, Markdown)",
	Long: `Export the archive.

Formats:
  - json (default): one file in the archive's own format, readable by
    'shot import'. [output] is the file (default: shot-prompts.json).
  - text: one .txt per prompt holding the generated prompt.
  - markdown: one .md per prompt with YAML frontmatter (title, tags,
    dates) and the prompt as the body.
  For text and markdown, [output] is a directory (default: shot-export).

Examples:
  shot export
  shot export backup.json
  shot export -f markdown ~/notes/prompts --tag noir`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import prompts from a JSON export",
	Long: `Add the prompts of a JSON export to the archive. Prompts whose id is
already present are skipped, so importing the same file twice is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, text, markdown)")
	exportCmd.Flags().StringVar(&exportTag, "tag", "", "Only export prompts with this tag")
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	profile, ok := exportProfiles[strings.ToLower(exportFormat)]
	if !ok {
		return fmt.Errorf("unknown format %q (use json, text or markdown)", exportFormat)
	}

	resp, err := listService.Execute(getContext(), services.ListRequest{Tag: exportTag})
	if err != nil {
		return err
	}
	if len(resp.Prompts) == 0 {
		fmt.Fprintln(out, ui.FormatWarning("Nothing to export"))
		return nil
	}

	if profile.Bundle {
		target := "shot-prompts." + profile.Extension
		if len(args) > 0 {
			target = args[0]
		}

		data, err := json.MarshalIndent(resp.Prompts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode prompts: %w", err)
		}
		if err := os.WriteFile(target, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Exported %d prompts to %s", len(resp.Prompts), target)))
		return nil
	}

	dir := "shot-export"
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, p := range resp.Prompts {
		data, err := profile.Render(p)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, exportFilename(p, profile.Extension))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Exported %d prompts to %s/", len(resp.Prompts), dir)))
	return nil
}

// exportFilename names a per-prompt file; the short id keeps versions
// and equal titles apart
func exportFilename(p domain.SavedPrompt, ext string) string {
	return fmt.Sprintf("%s-%s.%s", domain.GenerateSlug(p.Title), shortID(p.ID), ext)
}

type markdownFrontmatter struct {
	Title   string   `yaml:"title"`
	ID      string   `yaml:"id"`
	Tags    []string `yaml:"tags"`
	Created string   `yaml:"created"`
	Updated string   `yaml:"updated"`
}

// renderMarkdown writes a prompt as a Markdown note with frontmatter
func renderMarkdown(p domain.SavedPrompt) ([]byte, error) {
	fm, err := yaml.Marshal(markdownFrontmatter{
		Title:   p.Title,
		ID:      p.ID,
		Tags:    p.Tags,
		Created: p.CreatedAt,
		Updated: p.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	b.WriteString("```text\n")
	b.WriteString(p.Prompt())
	b.WriteString("\n```\n")
	return []byte(b.String()), nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var prompts []domain.SavedPrompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return fmt.Errorf("%s is not a prompt export: %w", args[0], err)
	}

	added, err := archiveService.Import(getContext(), prompts)
	if err != nil {
		return err
	}

	skipped := len(prompts) - added
	msg := fmt.Sprintf("Imported %d prompts", added)
	if skipped > 0 {
		msg += fmt.Sprintf(" (%d already present)", skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatSuccess(msg))
	return nil
}
