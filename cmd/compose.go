package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

// composeCmd represents the compose command
var composeCmd = &cobra.Command{
	Use:     "compose",
	Aliases: []string{"form"},
	Short:   "Fill in the shot form with a live prompt preview (alias: form)",
	Long: `Open a full-screen form for the draft with the generated prompt
updating beside it as you type.

Keyboard Shortcuts:
  Tab / Shift+Tab   Next / previous field
  Ctrl+N            Add an action row
  Ctrl+X            Remove the focused action row
  Ctrl+S            Save to the archive (title and tags)
  Ctrl+Y            Copy the prompt to the clipboard
  Ctrl+R            Clear all fields
  PgUp / PgDn       Scroll the preview
  F1                Toggle help
  Esc / Ctrl+C      Quit (the draft is kept)`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	fields, err := draftService.Load(ctx)
	if err != nil {
		return err
	}

	m := newComposeModel(ctx, *fields)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running form: %w", err)
	}

	fm, ok := final.(composeModel)
	if !ok {
		return nil
	}
	printPrompt(cmd.OutOrStdout(), domain.GeneratePrompt(fm.fields))
	if fm.quitErr != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatError("Draft not saved on exit"))
		return fm.quitErr
	}
	return nil
}

// Form modes
type composeMode int

const (
	composeEdit composeMode = iota
	composeSave
	composeConfirmClear
)

type statusMsg struct {
	message string
	style   lipgloss.Style
}

type clearMessageMsg struct{}

type promptSavedMsg struct {
	prompt *domain.SavedPrompt
	err    error
}

type promptCopiedMsg struct {
	chars int
	err   error
}

var fieldPlaceholders = map[string]string{
	domain.FieldSceneDescription:    "Describe the scene, setting, and overall visual style...",
	domain.FieldCameraShot:          "e.g., Wide Shot, Close-Up, Tracking Shot",
	domain.FieldCameraLens:          "e.g., 35mm, 85mm portrait lens, Anamorphic",
	domain.FieldCinematographyNotes: "Camera movement, framing, composition...",
	domain.FieldLighting:            "e.g., Golden hour, Neon glow, Soft overcast",
	domain.FieldMood:                "e.g., Tense, Melancholic, Euphoric",
	domain.FieldActions:             "Describe an action...",
	domain.FieldAudio:               "Ambient sound, music, effects...",
	domain.FieldDialogue:            "Spoken lines...",
}

// formRow is one editable field of the form
type formRow struct {
	field     string
	action    int // 1-based action row, 0 for text fields
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func newFormRow(field string, action int, value string) formRow {
	r := formRow{
		field:     field,
		action:    action,
		multiline: field == domain.FieldSceneDescription || field == domain.FieldDialogue,
	}

	if r.multiline {
		ta := textarea.New()
		ta.Placeholder = fieldPlaceholders[field]
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.SetHeight(3)
		ta.SetValue(value)
		ta.Blur()
		r.area = ta
		return r
	}

	ti := textinput.New()
	ti.Placeholder = fieldPlaceholders[field]
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.SetValue(value)
	r.input = ti
	return r
}

func (r *formRow) label() string {
	if r.action > 0 {
		return fmt.Sprintf("Action %d", r.action)
	}
	return fieldLabel(r.field)
}

func (r *formRow) value() string {
	if r.multiline {
		return r.area.Value()
	}
	return r.input.Value()
}

func (r *formRow) focus() tea.Cmd {
	if r.multiline {
		return r.area.Focus()
	}
	return r.input.Focus()
}

func (r *formRow) blur() {
	if r.multiline {
		r.area.Blur()
		return
	}
	r.input.Blur()
}

func (r *formRow) setWidth(w int) {
	if r.multiline {
		r.area.SetWidth(w)
		return
	}
	r.input.Width = w - 2
}

func (r *formRow) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if r.multiline {
		r.area, cmd = r.area.Update(msg)
	} else {
		r.input, cmd = r.input.Update(msg)
	}
	return cmd
}

func (r *formRow) view(focused bool) string {
	labelStyle := ui.StyleMuted
	if focused {
		labelStyle = ui.StylePrimary
	}

	body := r.input.View()
	if r.multiline {
		body = r.area.View()
	}
	return labelStyle.Render(r.label()) + "\n" + body
}

// composeModel is the full-screen form
type composeModel struct {
	ctx    context.Context
	fields domain.ShotFields
	rows   []formRow
	focus  int
	mode   composeMode

	titleInput textinput.Model
	tagsInput  textinput.Model
	saveFocus  int

	preview viewport.Model
	help    help.Model
	keys    composeKeyMap

	width  int
	height int
	ready  bool

	message       string
	messageStyle  lipgloss.Style
	messageExpiry time.Time

	// quitErr is the draft save error from the final quit, reported once
	// the alt screen is gone
	quitErr error
}

// Key bindings
type composeKeyMap struct {
	Next         key.Binding
	Prev         key.Binding
	AddAction    key.Binding
	RemoveAction key.Binding
	Save         key.Binding
	Copy         key.Binding
	Clear        key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Help         key.Binding
	Quit         key.Binding
	Submit       key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
}

func (k composeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.Copy, k.AddAction, k.Help, k.Quit}
}

func (k composeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.ScrollUp, k.ScrollDown},
		{k.AddAction, k.RemoveAction, k.Clear},
		{k.Save, k.Copy, k.Help, k.Quit},
	}
}

var composeKeys = composeKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	AddAction: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "add action"),
	),
	RemoveAction: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "remove action"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "clear form"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll preview up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll preview down"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

func newComposeModel(ctx context.Context, fields domain.ShotFields) composeModel {
	fields = fields.Clone()
	if len(fields.Actions) == 0 {
		fields.Actions = []string{""}
	}

	title := textinput.New()
	title.Placeholder = domain.DefaultTitle
	title.Prompt = "Title › "
	title.CharLimit = 200

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"
	tags.Prompt = "Tags  › "

	m := composeModel{
		ctx:        ctx,
		fields:     fields,
		mode:       composeEdit,
		titleInput: title,
		tagsInput:  tags,
		preview:    viewport.New(40, 10),
		help:       help.New(),
		keys:       composeKeys,
	}
	m.rebuildRows(0)
	return m
}

func (m composeModel) Init() tea.Cmd {
	return m.rows[m.focus].focus()
}

// rebuildRows recreates the inputs from the fields and focuses row focus
func (m *composeModel) rebuildRows(focus int) {
	var rows []formRow
	for _, field := range domain.TextFields {
		if field == domain.FieldAudio {
			for i, action := range m.fields.Actions {
				rows = append(rows, newFormRow(domain.FieldActions, i+1, action))
			}
		}
		value, _ := m.fields.Get(field)
		rows = append(rows, newFormRow(field, 0, value))
	}
	m.rows = rows

	m.focus = max(0, min(focus, len(m.rows)-1))
	m.rows[m.focus].focus()
	m.applySizes()
	m.refreshPreview()
}

// rowIndex finds the row showing field (and action row n for actions)
func (m composeModel) rowIndex(field string, action int) int {
	for i, r := range m.rows {
		if r.field == field && r.action == action {
			return i
		}
	}
	return 0
}

// syncRow copies the value of row i into the fields
func (m *composeModel) syncRow(i int) {
	r := &m.rows[i]
	if r.action > 0 {
		_ = m.fields.SetAction(r.action, r.value())
	} else {
		_ = m.fields.Set(r.field, r.value())
	}
	m.refreshPreview()
}

func (m *composeModel) formWidth() int {
	if m.width == 0 {
		return 50
	}
	return m.width * 55 / 100
}

func (m *composeModel) applySizes() {
	inner := m.formWidth() - 4
	for i := range m.rows {
		m.rows[i].setWidth(inner)
	}
	m.titleInput.Width = inner - 10
	m.tagsInput.Width = inner - 10

	if m.width > 0 {
		m.preview.Width = max(10, m.width-m.formWidth()-4)
	}
	if m.height > 0 {
		m.preview.Height = max(5, m.height-8)
	}
}

func (m *composeModel) refreshPreview() {
	prompt := domain.GeneratePrompt(m.fields)
	if prompt == "" {
		m.preview.SetContent(ui.StyleSubtle.Render("Your generated prompt will appear here..."))
		return
	}
	m.preview.SetContent(lipgloss.NewStyle().Width(m.preview.Width).Render(prompt))
}

// persist writes the current form to the draft file
func (m *composeModel) persist() tea.Cmd {
	fields := m.fields.Clone()
	if err := draftService.Save(m.ctx, &fields); err != nil {
		return m.setStatus("Draft not saved: "+err.Error(), ui.StyleError)
	}
	return nil
}

// setStatus shows a message in the footer for a few seconds
func (m *composeModel) setStatus(message string, style lipgloss.Style) tea.Cmd {
	m.message = message
	m.messageStyle = style
	m.messageExpiry = time.Now().Add(3 * time.Second)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}

func (m composeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.applySizes()
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case composeSave:
			return m.updateSave(msg)
		case composeConfirmClear:
			return m.updateConfirmClear(msg)
		default:
			return m.updateEdit(msg)
		}

	case statusMsg:
		return m, m.setStatus(msg.message, msg.style)

	case clearMessageMsg:
		if time.Now().After(m.messageExpiry) {
			m.message = ""
		}
		return m, nil

	case promptSavedMsg:
		if msg.err != nil {
			return m, m.setStatus("Save failed: "+msg.err.Error(), ui.StyleError)
		}
		m.mode = composeEdit
		m.titleInput.SetValue("")
		m.tagsInput.SetValue("")
		m.titleInput.Blur()
		m.tagsInput.Blur()

		cmds := []tea.Cmd{
			m.rows[m.focus].focus(),
			m.setStatus(ui.IconSuccess+" Saved \""+msg.prompt.Title+"\"", ui.StyleSuccess),
		}
		if appConfig != nil && appConfig.CopyOnSave {
			cmds = append(cmds, m.copyPrompt())
		}
		return m, tea.Batch(cmds...)

	case promptCopiedMsg:
		if msg.err != nil {
			return m, m.setStatus(msg.err.Error(), ui.StyleWarning)
		}
		return m, m.setStatus(fmt.Sprintf("%s Copied %d characters", ui.IconCopy, msg.chars), ui.StyleSuccess)
	}

	// Cursor blink and other internal messages
	if m.mode == composeSave {
		return m.updateSaveInputs(msg)
	}
	return m, m.rows[m.focus].update(msg)
}

func (m composeModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		fields := m.fields.Clone()
		m.quitErr = draftService.Save(m.ctx, &fields)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(-1)

	case key.Matches(msg, m.keys.Save):
		m.rows[m.focus].blur()
		m.mode = composeSave
		m.saveFocus = 0
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.Copy):
		return m, tea.Batch(m.persist(), m.copyPrompt())

	case key.Matches(msg, m.keys.AddAction):
		m.fields.AddAction("")
		m.rebuildRows(m.rowIndex(domain.FieldActions, len(m.fields.Actions)))
		return m, tea.Batch(m.persist(), m.rows[m.focus].focus())

	case key.Matches(msg, m.keys.RemoveAction):
		row := m.rows[m.focus]
		if row.action == 0 {
			return m, m.setStatus("Move to an action row to remove it", ui.StyleWarning)
		}
		if err := m.fields.RemoveAction(row.action); err != nil {
			return m, m.setStatus("At least one action row is kept", ui.StyleWarning)
		}
		m.rebuildRows(m.rowIndex(domain.FieldActions, max(1, row.action-1)))
		return m, tea.Batch(m.persist(), m.rows[m.focus].focus())

	case key.Matches(msg, m.keys.Clear):
		if m.fields.FilledCount() == 0 {
			return m, m.setStatus("The form is already empty", ui.StyleMuted)
		}
		m.mode = composeConfirmClear
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.preview.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.preview.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	cmd := m.rows[m.focus].update(msg)
	m.syncRow(m.focus)
	return m, cmd
}

// moveFocus steps through the rows, saving the draft as a field is left
func (m *composeModel) moveFocus(delta int) tea.Cmd {
	m.rows[m.focus].blur()
	persistCmd := m.persist()
	m.focus = (m.focus + delta + len(m.rows)) % len(m.rows)
	return tea.Batch(persistCmd, m.rows[m.focus].focus())
}

func (m composeModel) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.mode = composeEdit
		m.titleInput.Blur()
		m.tagsInput.Blur()
		return m, m.rows[m.focus].focus()

	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		m.saveFocus = 1 - m.saveFocus
		if m.saveFocus == 0 {
			m.tagsInput.Blur()
			return m, m.titleInput.Focus()
		}
		m.titleInput.Blur()
		return m, m.tagsInput.Focus()

	case key.Matches(msg, m.keys.Submit):
		title := strings.TrimSpace(m.titleInput.Value())
		if title != "" {
			if err := domain.ValidateTitle(title); err != nil {
				return m, m.setStatus(err.Error(), ui.StyleError)
			}
		}
		return m, tea.Batch(m.persist(), m.savePrompt(title, domain.ParseTags(m.tagsInput.Value())))
	}

	return m.updateSaveInputs(msg)
}

func (m composeModel) updateSaveInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.saveFocus == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	}
	return m, cmd
}

func (m composeModel) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.fields = *domain.NewShotFields()
		m.rebuildRows(0)
		m.mode = composeEdit
		return m, tea.Batch(
			m.persist(),
			m.rows[m.focus].focus(),
			m.setStatus("Form cleared", ui.StyleSuccess),
		)

	case key.Matches(msg, m.keys.Cancel):
		m.mode = composeEdit
	}
	return m, nil
}

func (m composeModel) savePrompt(title string, tags []string) tea.Cmd {
	ctx := m.ctx
	fields := m.fields.Clone()
	return func() tea.Msg {
		p, err := archiveService.Save(ctx, services.SaveRequest{
			Title:    title,
			Tags:     tags,
			FormData: fields,
		})
		return promptSavedMsg{prompt: p, err: err}
	}
}

func (m composeModel) copyPrompt() tea.Cmd {
	fields := m.fields.Clone()
	return func() tea.Msg {
		prompt, err := draftService.CopyFields(fields)
		return promptCopiedMsg{chars: len([]rune(prompt)), err: err}
	}
}

func (m composeModel) View() string {
	if !m.ready {
		return "\n  Loading form..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(5, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var left string
	switch m.mode {
	case composeSave:
		left = m.renderSaveDialog()
	case composeConfirmClear:
		left = m.renderConfirmClear()
	default:
		left = m.renderForm(bodyHeight)
	}

	leftCol := lipgloss.NewStyle().Width(m.formWidth()).Height(bodyHeight).Render(left)
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, m.renderPreview(bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m composeModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Render(ui.IconShot + " Shot Builder")

	prompt := domain.GeneratePrompt(m.fields)
	stats := ui.StyleMuted.Render(fmt.Sprintf("%d filled · %d chars", m.fields.FilledCount(), len([]rune(prompt))))

	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(stats)-1)
	return title + strings.Repeat(" ", gap) + stats + "\n"
}

// renderForm draws the rows, scrolled so the focused row is visible
func (m composeModel) renderForm(height int) string {
	var lines []string
	focusStart, focusEnd := 0, 0
	for i := range m.rows {
		if i == m.focus {
			focusStart = len(lines)
		}
		block := m.rows[i].view(i == m.focus)
		lines = append(lines, strings.Split(block, "\n")...)
		if i == m.focus {
			focusEnd = len(lines)
		}
		lines = append(lines, "")
	}

	if len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	start := 0
	if focusEnd > height {
		start = min(focusEnd-height+1, focusStart)
	}
	end := min(len(lines), start+height)
	return strings.Join(lines[start:end], "\n")
}

func (m composeModel) renderPreview(height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorAccent).
		Width(m.preview.Width).
		Height(max(1, height-2))

	title := ui.StyleSection.Render("Generated Prompt")
	return box.Render(title + "\n" + m.preview.View())
}

func (m composeModel) renderSaveDialog() string {
	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Padding(1, 2).
		Width(m.formWidth() - 4)

	var s strings.Builder
	s.WriteString(ui.StyleHeader.Render("Save Prompt"))
	s.WriteString("\n\n")
	s.WriteString(m.titleInput.View())
	s.WriteString("\n")
	s.WriteString(m.tagsInput.View())
	s.WriteString("\n\n")
	s.WriteString(ui.StyleMuted.Render("enter save · tab switch · esc cancel"))
	return dialog.Render(s.String())
}

func (m composeModel) renderConfirmClear() string {
	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorError).
		Padding(1, 2).
		Width(m.formWidth() - 4)

	return dialog.Render(
		ui.StyleError.Render("Clear all fields?") + "\n\n" +
			ui.StyleMuted.Render("This cannot be undone.") + "\n\n" +
			ui.StyleBold.Render("y") + " confirm   " + ui.StyleBold.Render("n/esc") + " cancel",
	)
}

func (m composeModel) renderFooter() string {
	var statusLine string
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		statusLine = m.messageStyle.Render(m.message)
	} else {
		statusLine = ui.StyleMuted.Render("Draft: " + draftLocation())
	}

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Width(m.width)

	return footerStyle.Render(statusLine + "\n" + m.help.View(m.keys))
}

func draftLocation() string {
	if draftRepo == nil {
		return "-"
	}
	return draftRepo.Path()
}
