package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
)

// Row indexes of a blank form: six text fields, three action rows, audio, dialogue
const (
	rowScene    = 0
	rowLens     = 2
	rowMood     = 5
	rowAction1  = 6
	rowAction2  = 7
	rowAudio    = 9
	rowDialogue = 10
)

func newTestCompose(t *testing.T, fields *domain.ShotFields) composeModel {
	t.Helper()
	if fields == nil {
		fields = domain.NewShotFields()
	}
	return newComposeModel(context.Background(), *fields)
}

func press(m composeModel, msg tea.KeyMsg) (composeModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(composeModel), cmd
}

func typeText(m composeModel, text string) composeModel {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func focusRow(m composeModel, row int) composeModel {
	for m.focus != row {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

// TestComposeModelInitialization tests the initial form layout
func TestComposeModelInitialization(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	if len(m.rows) != 11 {
		t.Fatalf("Expected 11 rows, got %d", len(m.rows))
	}
	if m.focus != rowScene {
		t.Errorf("Expected focus on the scene, got %d", m.focus)
	}
	if m.mode != composeEdit {
		t.Errorf("Expected edit mode, got %v", m.mode)
	}
	if m.ready {
		t.Error("Expected ready to be false initially")
	}

	wantLabels := map[int]string{
		rowScene:    "Scene Description",
		rowLens:     "Camera Lens",
		rowMood:     "Mood",
		rowAction1:  "Action 1",
		rowAudio:    "Audio",
		rowDialogue: "Dialogue",
	}
	for i, want := range wantLabels {
		if got := m.rows[i].label(); got != want {
			t.Errorf("row %d label = %q, want %q", i, got, want)
		}
	}
	if !m.rows[rowScene].multiline || m.rows[rowLens].multiline {
		t.Error("scene should be multi-line and lens single-line")
	}
}

// TestComposeModelEmptyActions tests that a form always has an action row
func TestComposeModelEmptyActions(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, &domain.ShotFields{Mood: "Calm"})

	if len(m.fields.Actions) != 1 {
		t.Errorf("Expected one blank action row, got %d", len(m.fields.Actions))
	}
	if len(m.rows) != 9 {
		t.Errorf("Expected 9 rows, got %d", len(m.rows))
	}
}

// TestComposeTypingUpdatesFields tests that keystrokes reach the fields
func TestComposeTypingUpdatesFields(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	m = typeText(m, "A lighthouse")
	if m.fields.SceneDescription != "A lighthouse" {
		t.Errorf("Expected scene to be typed, got %q", m.fields.SceneDescription)
	}

	m = focusRow(m, rowAction2)
	m = typeText(m, "Waves crash")
	if m.fields.Actions[1] != "Waves crash" {
		t.Errorf("Expected action 2 to be typed, got %q", m.fields.Actions[1])
	}

	prompt := domain.GeneratePrompt(m.fields)
	if !strings.Contains(prompt, "A lighthouse") || !strings.Contains(prompt, "Waves crash") {
		t.Errorf("Generated prompt is missing typed text: %q", prompt)
	}
}

// TestComposeFocusNavigation tests tab and shift+tab, including wrapping
func TestComposeFocusNavigation(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 1 {
		t.Errorf("Expected focus 1 after tab, got %d", m.focus)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != len(m.rows)-1 {
		t.Errorf("Expected shift+tab to wrap to the last row, got %d", m.focus)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != 0 {
		t.Errorf("Expected tab to wrap to the first row, got %d", m.focus)
	}
}

// TestComposeLeavingFieldSavesDraft tests that the draft is written on tab
func TestComposeLeavingFieldSavesDraft(t *testing.T) {
	env := setupTestEnv(t)
	m := newTestCompose(t, nil)

	m = typeText(m, "Rain on neon")
	if env.drafts.Current() != nil {
		t.Fatal("Draft should not be written while typing")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	draft := env.drafts.Current()
	if draft == nil || draft.SceneDescription != "Rain on neon" {
		t.Errorf("Expected draft to hold the scene, got %+v", draft)
	}
	_ = m
}

// TestComposeDraftSaveFailure tests that a failed draft write is reported
func TestComposeDraftSaveFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.drafts.SaveErr = errors.New("disk full")
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.message, "Draft not saved") {
		t.Errorf("Expected a draft error message, got %q", m.message)
	}
}

// TestComposeAddAndRemoveAction tests the action row shortcuts
func TestComposeAddAndRemoveAction(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if len(m.fields.Actions) != 4 {
		t.Fatalf("Expected 4 actions, got %d", len(m.fields.Actions))
	}
	if len(m.rows) != 12 {
		t.Errorf("Expected 12 rows, got %d", len(m.rows))
	}
	if row := m.rows[m.focus]; row.action != 4 {
		t.Errorf("Expected focus on the new action row, got %+v", row.action)
	}

	// Remove the second action
	m = focusRow(m, rowAction2)
	m = typeText(m, "gone")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if len(m.fields.Actions) != 3 {
		t.Fatalf("Expected 3 actions, got %d", len(m.fields.Actions))
	}
	for _, a := range m.fields.Actions {
		if a == "gone" {
			t.Error("Removed action is still present")
		}
	}
	if row := m.rows[m.focus]; row.action != 1 {
		t.Errorf("Expected focus on action 1 after removal, got %d", row.action)
	}
}

// TestComposeRemoveActionGuards tests removal on text rows and the last row
func TestComposeRemoveActionGuards(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if !strings.Contains(m.message, "action row") {
		t.Errorf("Expected a hint on a text row, got %q", m.message)
	}

	m = newTestCompose(t, &domain.ShotFields{Actions: []string{"only"}})
	m = focusRow(m, rowAction1)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if len(m.fields.Actions) != 1 {
		t.Errorf("The last action row must be kept, got %d", len(m.fields.Actions))
	}
	if !strings.Contains(m.message, "At least one") {
		t.Errorf("Expected a warning, got %q", m.message)
	}
}

// TestComposeCopy tests copying through the clipboard mock
func TestComposeCopy(t *testing.T) {
	env := setupTestEnv(t)
	m := newTestCompose(t, nil)

	// Empty form
	msg := m.copyPrompt()()
	updated, _ := m.Update(msg)
	m = updated.(composeModel)
	if !strings.Contains(m.message, domain.ErrEmptyPrompt.Error()) {
		t.Errorf("Expected empty prompt message, got %q", m.message)
	}

	m = typeText(m, "A lighthouse at dusk")
	msg = m.copyPrompt()()
	copied, ok := msg.(promptCopiedMsg)
	if !ok || copied.err != nil {
		t.Fatalf("Expected a successful copy, got %#v", msg)
	}
	if env.clip.Text() != "A lighthouse at dusk" {
		t.Errorf("Clipboard holds %q", env.clip.Text())
	}

	updated, _ = m.Update(msg)
	m = updated.(composeModel)
	if !strings.Contains(m.message, "Copied 20 characters") {
		t.Errorf("Expected copy message, got %q", m.message)
	}

	// The shortcut also writes the draft
	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Error("Expected ctrl+y to return a command")
	}
	if env.drafts.Current() == nil {
		t.Error("Expected ctrl+y to save the draft")
	}
}

// TestComposeSaveFlow tests the save dialog end to end
func TestComposeSaveFlow(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)
	m = typeText(m, "Rain on neon")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.mode != composeSave {
		t.Fatalf("Expected save mode, got %v", m.mode)
	}

	m = typeText(m, "Alley")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.saveFocus != 1 {
		t.Fatalf("Expected focus on tags, got %d", m.saveFocus)
	}
	m = typeText(m, "noir, night")

	if m.titleInput.Value() != "Alley" || m.tagsInput.Value() != "noir, night" {
		t.Fatalf("Unexpected inputs %q / %q", m.titleInput.Value(), m.tagsInput.Value())
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected enter to return a save command")
	}

	msg := m.savePrompt("Alley", domain.ParseTags("noir, night"))()
	updated, _ := m.Update(msg)
	m = updated.(composeModel)

	if m.mode != composeEdit {
		t.Errorf("Expected edit mode after saving, got %v", m.mode)
	}
	if !strings.Contains(m.message, `Saved "Alley"`) {
		t.Errorf("Expected saved message, got %q", m.message)
	}
	if m.titleInput.Value() != "" || m.tagsInput.Value() != "" {
		t.Error("Save inputs should be reset")
	}

	prompts := archiveService.GetAll(context.Background())
	if len(prompts) != 1 {
		t.Fatalf("Expected 1 saved prompt, got %d", len(prompts))
	}
	if prompts[0].FormData.SceneDescription != "Rain on neon" {
		t.Errorf("Saved form data = %+v", prompts[0].FormData)
	}
	if strings.Join(prompts[0].Tags, ",") != "noir,night" {
		t.Errorf("Saved tags = %v", prompts[0].Tags)
	}
}

// TestComposeSaveValidation tests title validation and cancelling
func TestComposeSaveValidation(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m.titleInput.CharLimit = 0
	m.titleInput.SetValue(strings.Repeat("x", 201))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != composeSave {
		t.Error("Expected to stay in save mode on an invalid title")
	}
	if !strings.Contains(m.message, domain.ErrInvalidTitle.Error()) {
		t.Errorf("Expected a title error, got %q", m.message)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != composeEdit {
		t.Errorf("Expected esc to leave save mode, got %v", m.mode)
	}
}

// TestComposeSaveFailure tests a failed archive write
func TestComposeSaveFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.blobs.SetErr = errors.New("read-only")
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	updated, _ := m.Update(m.savePrompt("Alley", nil)())
	m = updated.(composeModel)

	if m.mode != composeSave {
		t.Error("Expected to stay in save mode after a failure")
	}
	if !strings.Contains(m.message, "Save failed") {
		t.Errorf("Expected failure message, got %q", m.message)
	}
}

// TestComposeClearConfirmation tests the clear dialog
func TestComposeClearConfirmation(t *testing.T) {
	env := setupTestEnv(t)

	m := newTestCompose(t, nil)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != composeEdit || !strings.Contains(m.message, "already empty") {
		t.Errorf("Expected an empty form notice, got mode %v message %q", m.mode, m.message)
	}

	m = typeText(m, "Something")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.mode != composeConfirmClear {
		t.Fatalf("Expected confirm mode, got %v", m.mode)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.mode != composeEdit || m.fields.SceneDescription != "Something" {
		t.Error("Cancelling must keep the fields")
	}

	m = focusRow(m, rowMood)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if m.mode != composeEdit {
		t.Errorf("Expected edit mode after clearing, got %v", m.mode)
	}
	if m.fields.FilledCount() != 0 {
		t.Error("Expected all fields to be cleared")
	}
	if m.focus != rowScene {
		t.Errorf("Expected focus back on the scene, got %d", m.focus)
	}
	if len(m.fields.Actions) != domain.DefaultActionRows {
		t.Errorf("Expected %d blank actions, got %d", domain.DefaultActionRows, len(m.fields.Actions))
	}
	if draft := env.drafts.Current(); draft == nil || draft.FilledCount() != 0 {
		t.Error("Expected the cleared form to be saved as the draft")
	}
}

// TestComposeQuit tests that quitting saves the draft
func TestComposeQuit(t *testing.T) {
	env := setupTestEnv(t)
	m := newTestCompose(t, nil)
	m = typeText(m, "Last words")

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected esc to quit")
	}
	if draft := env.drafts.Current(); draft == nil || draft.SceneDescription != "Last words" {
		t.Errorf("Expected draft to be saved on quit, got %+v", draft)
	}
	if updated, _ := press(m, tea.KeyMsg{Type: tea.KeyEsc}); updated.quitErr != nil {
		t.Errorf("Expected no quit error, got %v", updated.quitErr)
	}
}

// TestComposeQuitSaveFailure keeps the draft error for after the program exits
func TestComposeQuitSaveFailure(t *testing.T) {
	env := setupTestEnv(t)
	m := newTestCompose(t, nil)
	m = typeText(m, "Lost words")
	env.drafts.SaveErr = errors.New("disk full")

	updated, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected esc to quit even when the draft save fails")
	}
	if !errors.Is(updated.quitErr, env.drafts.SaveErr) {
		t.Errorf("Expected quit error to carry the save failure, got %v", updated.quitErr)
	}
}

// TestComposeStatusMessage tests status message handling
func TestComposeStatusMessage(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	updated, _ := m.Update(statusMsg{message: "Test message", style: ui.StyleSuccess})
	m = updated.(composeModel)
	if m.message != "Test message" {
		t.Errorf("Expected message to be 'Test message', got %s", m.message)
	}
	if time.Now().After(m.messageExpiry) {
		t.Error("Message should not be expired immediately")
	}

	// Not yet expired
	updated, _ = m.Update(clearMessageMsg{})
	m = updated.(composeModel)
	if m.message == "" {
		t.Error("Message should survive an early clear")
	}

	m.messageExpiry = time.Now().Add(-time.Second)
	updated, _ = m.Update(clearMessageMsg{})
	m = updated.(composeModel)
	if m.message != "" {
		t.Errorf("Expected message to be cleared, got %q", m.message)
	}
}

// TestComposeWindowResize tests window resize handling and rendering
func TestComposeWindowResize(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Errorf("Expected loading view before the first resize, got %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(composeModel)

	if !m.ready {
		t.Error("Expected ready after resize")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", m.width, m.height)
	}
	if m.preview.Width <= 0 || m.preview.Height <= 0 {
		t.Errorf("Preview not sized: %dx%d", m.preview.Width, m.preview.Height)
	}

	view := m.View()
	for _, want := range []string{"Shot Builder", "Generated Prompt", "Scene Description"} {
		if !strings.Contains(view, want) {
			t.Errorf("View is missing %q", want)
		}
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.View(), "Save Prompt") {
		t.Error("Save dialog is not rendered")
	}
}

// TestComposeHelpToggle tests the full help toggle
func TestComposeHelpToggle(t *testing.T) {
	setupTestEnv(t)
	m := newTestCompose(t, nil)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.help.ShowAll {
		t.Error("Expected full help after F1")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyF1})
	if m.help.ShowAll {
		t.Error("Expected short help after a second F1")
	}
}
