package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// TableColumn describes one column of a Table. Width is a minimum; cells
// longer than MaxWidth (when set) are cut with "…". Align is "left",
// "right" or "center".
type TableColumn struct {
	Header   string
	Width    int
	MaxWidth int
	Align    string
}

func (c TableColumn) position() lipgloss.Position {
	switch c.Align {
	case "right":
		return lipgloss.Right
	case "center":
		return lipgloss.Center
	}
	return lipgloss.Left
}

// Table renders rows of plain text under an underlined header, striping
// alternate rows.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

func NewTable(columns []TableColumn) *Table {
	return &Table{Columns: columns}
}

func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// Render lays the table out. Missing cells render blank and extra cells
// are dropped.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	cells := t.clippedCells()
	widths := t.columnWidths(cells)

	var b strings.Builder

	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = align(col.Header, widths[i], lipgloss.Left)
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(header, columnGap)) + "\n")
	b.WriteString(StyleTableBorder.Render(strings.Join(rule, columnGap)) + "\n")

	for r, row := range cells {
		line := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			line[i] = align(row[i], widths[i], col.position())
		}
		style := StyleTableRow
		if r%2 == 1 {
			style = StyleTableRowAlt
		}
		b.WriteString(style.Render(strings.Join(line, columnGap)) + "\n")
	}

	return b.String()
}

// clippedCells normalizes every row to the column count and applies MaxWidth.
func (t *Table) clippedCells() [][]string {
	out := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if i >= len(row) {
				continue
			}
			cell := row[i]
			if col.MaxWidth > 0 {
				cell = Truncate(cell, col.MaxWidth)
			}
			out[r][i] = cell
		}
	}
	return out
}

func (t *Table) columnWidths(cells [][]string) []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(col.Width, lipgloss.Width(col.Header))
		for _, row := range cells {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// align pads s to width display cells. Content wider than width is
// returned unchanged.
func align(s string, width int, pos lipgloss.Position) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return lipgloss.PlaceHorizontal(width, pos, s)
}

// Truncate shortens s to at most max display cells, ending in "…".
// Newlines are flattened to spaces.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// RenderPrompt frames generated prompt text in a rounded box
func RenderPrompt(text string, width int) string {
	style := StylePromptBox
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(text)
}

func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", StyleAccent.Render(key), value)
}
