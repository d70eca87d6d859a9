package domain

import (
	"strings"
	"testing"
)

func TestGeneratePrompt(t *testing.T) {
	tests := []struct {
		name     string
		fields   ShotFields
		expected string
	}{
		{
			name:     "all empty",
			fields:   ShotFields{},
			expected: "",
		},
		{
			name:     "blank form",
			fields:   *NewShotFields(),
			expected: "",
		},
		{
			name:     "dialogue only",
			fields:   ShotFields{Dialogue: "Hi"},
			expected: "Dialogue:\nHi",
		},
		{
			name:     "scene only",
			fields:   ShotFields{SceneDescription: "A rainy alley at night."},
			expected: "A rainy alley at night.",
		},
		{
			name:     "blank actions are dropped",
			fields:   ShotFields{Actions: []string{"", "  ", "Run"}},
			expected: "Actions:\n- Run",
		},
		{
			name:     "actions keep order and inner spacing",
			fields:   ShotFields{Actions: []string{" jumps ", "", "lands"}},
			expected: "Actions:\n-  jumps \n- lands",
		},
		{
			name: "cinematography order",
			fields: ShotFields{
				Mood:                "tense",
				Lighting:            "neon rim light",
				CinematographyNotes: "shallow depth of field",
				CameraLens:          "50mm",
				CameraShot:          "wide shot",
			},
			expected: "Cinematography:\n" +
				"Camera shot: wide shot\n" +
				"Camera lens: 50mm\n" +
				"shallow depth of field\n" +
				"Lighting: neon rim light\n" +
				"Mood: tense",
		},
		{
			name:     "single cinematography field",
			fields:   ShotFields{Lighting: "golden hour"},
			expected: "Cinematography:\nLighting: golden hour",
		},
		{
			name:     "audio only",
			fields:   ShotFields{Audio: "distant thunder"},
			expected: "Audio:\ndistant thunder",
		},
		{
			name: "every section",
			fields: ShotFields{
				SceneDescription: "A courier crosses a rooftop.",
				CameraShot:       "tracking shot",
				Actions:          []string{"sprints", "vaults the ledge"},
				Audio:            "wind, sirens",
				Dialogue:         "- Courier: \"Almost there.\"",
			},
			expected: "A courier crosses a rooftop.\n\n" +
				"Cinematography:\nCamera shot: tracking shot\n\n" +
				"Actions:\n- sprints\n- vaults the ledge\n\n" +
				"Audio:\nwind, sirens\n\n" +
				"Dialogue:\n- Courier: \"Almost there.\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeneratePrompt(tt.fields)
			if got != tt.expected {
				t.Errorf("GeneratePrompt() =\n%q\nwant\n%q", got, tt.expected)
			}
		})
	}
}

func TestGeneratePrompt_Verbatim(t *testing.T) {
	scene := "Line one\nLine <two> & \"three\"\t\\n literal"
	got := GeneratePrompt(ShotFields{SceneDescription: scene, Audio: "a\n\nb"})

	if !strings.HasPrefix(got, scene+"\n\n") {
		t.Errorf("scene not reproduced verbatim: %q", got)
	}
	if !strings.HasSuffix(got, "Audio:\na\n\nb") {
		t.Errorf("audio not reproduced verbatim: %q", got)
	}
}

func TestGeneratePrompt_TrimsOnlyEnds(t *testing.T) {
	got := GeneratePrompt(ShotFields{SceneDescription: "  indented\n\n  body  "})
	if got != "indented\n\n  body" {
		t.Errorf("GeneratePrompt() = %q", got)
	}
}

func TestGeneratePrompt_Deterministic(t *testing.T) {
	fields := ShotFields{SceneDescription: "x", Mood: "calm", Actions: []string{"a"}}
	first := GeneratePrompt(fields)
	for i := 0; i < 5; i++ {
		if got := GeneratePrompt(fields); got != first {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestValidActions(t *testing.T) {
	got := ValidActions([]string{"", "\t", "a", " ", "b "})
	if len(got) != 2 || got[0] != "a" || got[1] != "b " {
		t.Errorf("ValidActions() = %q", got)
	}

	if ValidActions(nil) != nil {
		t.Error("expected nil for no actions")
	}
}
