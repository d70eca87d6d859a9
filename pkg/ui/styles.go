package ui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme paints with
type Palette struct {
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Primary lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	Muted   lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Default lipgloss.TerminalColor
}

// terminalPalette uses the 16 ANSI colors so the user's terminal scheme applies
var terminalPalette = Palette{
	Success: lipgloss.AdaptiveColor{Light: "2", Dark: "2"},
	Error:   lipgloss.AdaptiveColor{Light: "1", Dark: "1"},
	Primary: lipgloss.AdaptiveColor{Light: "5", Dark: "5"},
	Info:    lipgloss.AdaptiveColor{Light: "6", Dark: "6"},
	Muted:   lipgloss.AdaptiveColor{Light: "8", Dark: "8"},
	Warning: lipgloss.AdaptiveColor{Light: "3", Dark: "3"},
	Accent:  lipgloss.AdaptiveColor{Light: "4", Dark: "4"},
	Default: lipgloss.AdaptiveColor{Light: "0", Dark: "7"},
}

// monoPalette disables color; emphasis comes from bold and faint only
var monoPalette = Palette{
	Success: lipgloss.NoColor{},
	Error:   lipgloss.NoColor{},
	Primary: lipgloss.NoColor{},
	Info:    lipgloss.NoColor{},
	Muted:   lipgloss.NoColor{},
	Warning: lipgloss.NoColor{},
	Accent:  lipgloss.NoColor{},
	Default: lipgloss.NoColor{},
}

// Themes accepted by SetTheme (config color_theme)
var Themes = []string{"auto", "dark", "light", "mono"}

var (
	// Active colors, set by SetTheme
	ColorSuccess lipgloss.TerminalColor
	ColorError   lipgloss.TerminalColor
	ColorPrimary lipgloss.TerminalColor
	ColorInfo    lipgloss.TerminalColor
	ColorMuted   lipgloss.TerminalColor
	ColorWarning lipgloss.TerminalColor
	ColorAccent  lipgloss.TerminalColor
	ColorDefault lipgloss.TerminalColor

	// Base styles
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StylePrimary lipgloss.Style
	StyleInfo    lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleAccent  lipgloss.Style

	// Component styles
	StyleTitle       lipgloss.Style
	StyleHeader      lipgloss.Style
	StyleSubtle      lipgloss.Style
	StyleBold        lipgloss.Style
	StyleTableHeader lipgloss.Style
	StyleTableRow    lipgloss.Style
	StyleTableRowAlt lipgloss.Style
	StyleTableBorder lipgloss.Style
	StylePromptBox   lipgloss.Style
	StyleSection     lipgloss.Style

	// Status icons
	IconSuccess = "✔"
	IconError   = "✘"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
	IconShot    = "🎬"
	IconCopy    = "📋"
	IconTag     = "🏷"
)

var activeTheme string

func init() {
	SetTheme("auto")
}

// SetTheme applies a color theme. "dark" and "light" pin the background
// detection, "mono" drops color, anything else (including "auto") lets
// lipgloss detect the terminal.
func SetTheme(theme string) {
	if !IsTheme(theme) {
		theme = "auto"
	}
	palette := terminalPalette
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "mono":
		palette = monoPalette
	}
	activeTheme = theme
	applyPalette(palette)
}

// IsTheme reports whether name is one of Themes
func IsTheme(name string) bool {
	return slices.Contains(Themes, name)
}

// ActiveTheme returns the theme set last, normalized
func ActiveTheme() string {
	return activeTheme
}

func applyPalette(p Palette) {
	ColorSuccess, ColorError, ColorPrimary, ColorInfo = p.Success, p.Error, p.Primary, p.Info
	ColorMuted, ColorWarning, ColorAccent, ColorDefault = p.Muted, p.Warning, p.Accent, p.Default

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)

	StyleTitle = StylePrimary.Underline(true)
	StyleHeader = StylePrimary
	StyleSubtle = StyleMuted.Italic(true)
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleSection = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)

	StyleTableHeader = StylePrimary.Align(lipgloss.Left)
	StyleTableRow = lipgloss.NewStyle().Foreground(ColorDefault)
	StyleTableRowAlt = StyleTableRow.Faint(true)
	StyleTableBorder = StyleMuted

	StylePromptBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1)
}

// FormatSuccess returns a success message with icon
func FormatSuccess(msg string) string {
	return StyleSuccess.Render(IconSuccess + " " + msg)
}

// FormatError returns an error message with icon
func FormatError(msg string) string {
	return StyleError.Render(IconError + " " + msg)
}

// FormatInfo returns an info message with icon
func FormatInfo(msg string) string {
	return StyleInfo.Render(IconInfo + " " + msg)
}

// FormatWarning returns a warning message with icon
func FormatWarning(msg string) string {
	return StyleWarning.Render(IconWarning + " " + msg)
}

// FormatShot returns a message prefixed with the clapperboard icon
func FormatShot(msg string) string {
	return StylePrimary.Render(IconShot + " " + msg)
}

// FormatCopied returns a clipboard confirmation
func FormatCopied(msg string) string {
	return StyleSuccess.Render(IconCopy + " " + msg)
}

func FormatTitle(title string) string {
	return StyleTitle.Render(title)
}

func FormatMuted(text string) string {
	return StyleMuted.Render(text)
}
