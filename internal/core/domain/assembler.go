package domain

import "strings"

// Section headers and line labels of a generated prompt
const (
	HeaderCinematography = "Cinematography:"
	HeaderActions        = "Actions:"
	HeaderAudio          = "Audio:"
	HeaderDialogue       = "Dialogue:"

	labelCameraShot = "Camera shot: "
	labelCameraLens = "Camera lens: "
	labelLighting   = "Lighting: "
	labelMood       = "Mood: "
)

// GeneratePrompt assembles the shot fields into the final text prompt.
//
// Sections appear in a fixed order (scene, cinematography, actions, audio,
// dialogue), each separated by a blank line. Field values are copied
// verbatim; only the result as a whole is trimmed.
func GeneratePrompt(fields ShotFields) string {
	var sb strings.Builder

	if fields.SceneDescription != "" {
		sb.WriteString(fields.SceneDescription)
		sb.WriteString("\n\n")
	}

	if fields.hasCinematography() {
		sb.WriteString(HeaderCinematography + "\n")
		if fields.CameraShot != "" {
			sb.WriteString(labelCameraShot + fields.CameraShot + "\n")
		}
		if fields.CameraLens != "" {
			sb.WriteString(labelCameraLens + fields.CameraLens + "\n")
		}
		if fields.CinematographyNotes != "" {
			sb.WriteString(fields.CinematographyNotes + "\n")
		}
		if fields.Lighting != "" {
			sb.WriteString(labelLighting + fields.Lighting + "\n")
		}
		if fields.Mood != "" {
			sb.WriteString(labelMood + fields.Mood + "\n")
		}
		sb.WriteString("\n")
	}

	if actions := ValidActions(fields.Actions); len(actions) > 0 {
		sb.WriteString(HeaderActions + "\n")
		for _, action := range actions {
			sb.WriteString("- " + action + "\n")
		}
		sb.WriteString("\n")
	}

	if fields.Audio != "" {
		sb.WriteString(HeaderAudio + "\n")
		sb.WriteString(fields.Audio + "\n\n")
	}

	if fields.Dialogue != "" {
		sb.WriteString(HeaderDialogue + "\n")
		sb.WriteString(fields.Dialogue)
	}

	return strings.TrimSpace(sb.String())
}

// ValidActions drops actions that are blank after trimming, keeping order.
// Surviving entries are returned untrimmed.
func ValidActions(actions []string) []string {
	var valid []string
	for _, action := range actions {
		if strings.TrimSpace(action) != "" {
			valid = append(valid, action)
		}
	}
	return valid
}

func (f ShotFields) hasCinematography() bool {
	return f.CameraShot != "" ||
		f.CameraLens != "" ||
		f.CinematographyNotes != "" ||
		f.Lighting != "" ||
		f.Mood != ""
}
