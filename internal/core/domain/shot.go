package domain

import (
	"fmt"
	"strings"
)

// Canonical field names, identical to the JSON keys of a stored formData
const (
	FieldSceneDescription    = "sceneDescription"
	FieldCameraShot          = "cameraShot"
	FieldCameraLens          = "cameraLens"
	FieldCinematographyNotes = "cinematographyNotes"
	FieldLighting            = "lighting"
	FieldMood                = "mood"
	FieldActions             = "actions"
	FieldAudio               = "audio"
	FieldDialogue            = "dialogue"
)

// DefaultActionRows is the number of empty action rows on a blank form
const DefaultActionRows = 3

// ShotFields is the structured, all-optional description of one video shot
type ShotFields struct {
	SceneDescription    string   `json:"sceneDescription" yaml:"sceneDescription"`
	CameraShot          string   `json:"cameraShot" yaml:"cameraShot"`
	CameraLens          string   `json:"cameraLens" yaml:"cameraLens"`
	CinematographyNotes string   `json:"cinematographyNotes" yaml:"cinematographyNotes"`
	Lighting            string   `json:"lighting" yaml:"lighting"`
	Mood                string   `json:"mood" yaml:"mood"`
	Actions             []string `json:"actions" yaml:"actions"`
	Audio               string   `json:"audio" yaml:"audio"`
	Dialogue            string   `json:"dialogue" yaml:"dialogue"`
}

// fieldAliases maps lowercase user input to a canonical field name
var fieldAliases = map[string]string{
	"scene":                FieldSceneDescription,
	"description":          FieldSceneDescription,
	"scenedescription":     FieldSceneDescription,
	"scene-description":    FieldSceneDescription,
	"shot":                 FieldCameraShot,
	"camerashot":           FieldCameraShot,
	"camera-shot":          FieldCameraShot,
	"lens":                 FieldCameraLens,
	"cameralens":           FieldCameraLens,
	"camera-lens":          FieldCameraLens,
	"notes":                FieldCinematographyNotes,
	"camera-notes":         FieldCinematographyNotes,
	"cinematographynotes":  FieldCinematographyNotes,
	"cinematography-notes": FieldCinematographyNotes,
	"lighting":             FieldLighting,
	"mood":                 FieldMood,
	"action":               FieldActions,
	"actions":              FieldActions,
	"audio":                FieldAudio,
	"dialogue":             FieldDialogue,
}

// TextFields lists the single-value fields in form order
var TextFields = []string{
	FieldSceneDescription,
	FieldCameraShot,
	FieldCameraLens,
	FieldCinematographyNotes,
	FieldLighting,
	FieldMood,
	FieldAudio,
	FieldDialogue,
}

// NewShotFields returns a blank form with the default empty action rows
func NewShotFields() *ShotFields {
	return &ShotFields{
		Actions: make([]string, DefaultActionRows),
	}
}

// ResolveField converts a field name or alias to its canonical name
func ResolveField(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := fieldAliases[key]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of a single-value field
func (f *ShotFields) Get(field string) (string, error) {
	ptr, err := f.textField(field)
	if err != nil {
		return "", err
	}
	return *ptr, nil
}

// Set assigns the value of a single-value field
func (f *ShotFields) Set(field, value string) error {
	ptr, err := f.textField(field)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

func (f *ShotFields) textField(field string) (*string, error) {
	canonical, err := ResolveField(field)
	if err != nil {
		return nil, err
	}

	switch canonical {
	case FieldSceneDescription:
		return &f.SceneDescription, nil
	case FieldCameraShot:
		return &f.CameraShot, nil
	case FieldCameraLens:
		return &f.CameraLens, nil
	case FieldCinematographyNotes:
		return &f.CinematographyNotes, nil
	case FieldLighting:
		return &f.Lighting, nil
	case FieldMood:
		return &f.Mood, nil
	case FieldAudio:
		return &f.Audio, nil
	case FieldDialogue:
		return &f.Dialogue, nil
	default:
		// actions is a list, edited through the action helpers
		return nil, fmt.Errorf("%w: %q is not a text field", ErrUnknownField, field)
	}
}

// AddAction appends an action row
func (f *ShotFields) AddAction(text string) {
	f.Actions = append(f.Actions, text)
}

// SetAction replaces the action at the 1-based position n
func (f *ShotFields) SetAction(n int, text string) error {
	if n < 1 || n > len(f.Actions) {
		return fmt.Errorf("%w: %d (have %d rows)", ErrInvalidActionIndex, n, len(f.Actions))
	}
	f.Actions[n-1] = text
	return nil
}

// RemoveAction deletes the action at the 1-based position n.
// The last remaining row is kept.
func (f *ShotFields) RemoveAction(n int) error {
	if n < 1 || n > len(f.Actions) {
		return fmt.Errorf("%w: %d (have %d rows)", ErrInvalidActionIndex, n, len(f.Actions))
	}
	if len(f.Actions) <= 1 {
		return fmt.Errorf("%w: cannot remove the only action row", ErrInvalidActionIndex)
	}
	f.Actions = append(f.Actions[:n-1], f.Actions[n:]...)
	return nil
}

// InsertTerm places a reference term into a field. Actions fill the first
// blank row or grow by one; text fields get ", term" appended.
func (f *ShotFields) InsertTerm(field, term string) error {
	canonical, err := ResolveField(field)
	if err != nil {
		return err
	}

	if canonical == FieldActions {
		for i, action := range f.Actions {
			if strings.TrimSpace(action) == "" {
				f.Actions[i] = term
				return nil
			}
		}
		f.Actions = append(f.Actions, term)
		return nil
	}

	current, err := f.Get(canonical)
	if err != nil {
		return err
	}
	if current != "" {
		return f.Set(canonical, current+", "+term)
	}
	return f.Set(canonical, term)
}

// Clone returns a deep copy
func (f ShotFields) Clone() ShotFields {
	clone := f
	if f.Actions != nil {
		clone.Actions = make([]string, len(f.Actions))
		copy(clone.Actions, f.Actions)
	}
	return clone
}

// Preview returns the scene description cut to maxLen runes, the way
// saved prompts are summarised in listings
func (f ShotFields) Preview(maxLen int) string {
	if f.SceneDescription == "" {
		return "No description available"
	}
	runes := []rune(f.SceneDescription)
	if maxLen <= 0 || len(runes) <= maxLen {
		return f.SceneDescription
	}
	return string(runes[:maxLen]) + "..."
}

// FilledCount reports how many text fields and non-blank actions are set
func (f ShotFields) FilledCount() int {
	count := 0
	for _, field := range TextFields {
		if v, _ := f.Get(field); v != "" {
			count++
		}
	}
	return count + len(ValidActions(f.Actions))
}
