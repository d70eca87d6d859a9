package domain

import (
	"errors"
	"testing"
)

func TestResolveField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"scene", FieldSceneDescription, false},
		{"sceneDescription", FieldSceneDescription, false},
		{" SHOT ", FieldCameraShot, false},
		{"lens", FieldCameraLens, false},
		{"camera-notes", FieldCinematographyNotes, false},
		{"Lighting", FieldLighting, false},
		{"mood", FieldMood, false},
		{"action", FieldActions, false},
		{"audio", FieldAudio, false},
		{"dialogue", FieldDialogue, false},
		{"title", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ResolveField(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownField) {
				t.Errorf("ResolveField(%q) error = %v, want ErrUnknownField", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveField(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ResolveField(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestShotFields_SetGet(t *testing.T) {
	f := NewShotFields()

	for _, field := range TextFields {
		if err := f.Set(field, field+"-value"); err != nil {
			t.Fatalf("Set(%q) error: %v", field, err)
		}
	}

	for _, field := range TextFields {
		got, err := f.Get(field)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", field, err)
		}
		if got != field+"-value" {
			t.Errorf("Get(%q) = %q", field, got)
		}
	}

	if err := f.Set("actions", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(actions) error = %v, want ErrUnknownField", err)
	}
}

func TestNewShotFields(t *testing.T) {
	f := NewShotFields()
	if len(f.Actions) != DefaultActionRows {
		t.Errorf("expected %d action rows, got %d", DefaultActionRows, len(f.Actions))
	}
	if GeneratePrompt(*f) != "" {
		t.Error("blank form should generate an empty prompt")
	}
}

func TestShotFields_ActionRows(t *testing.T) {
	f := &ShotFields{Actions: []string{"a"}}

	f.AddAction("b")
	if len(f.Actions) != 2 || f.Actions[1] != "b" {
		t.Fatalf("AddAction: %q", f.Actions)
	}

	if err := f.SetAction(1, "A"); err != nil {
		t.Fatalf("SetAction error: %v", err)
	}
	if f.Actions[0] != "A" {
		t.Errorf("SetAction did not replace row 1: %q", f.Actions)
	}

	if err := f.SetAction(3, "x"); !errors.Is(err, ErrInvalidActionIndex) {
		t.Errorf("SetAction(3) error = %v", err)
	}

	if err := f.RemoveAction(1); err != nil {
		t.Fatalf("RemoveAction error: %v", err)
	}
	if len(f.Actions) != 1 || f.Actions[0] != "b" {
		t.Errorf("RemoveAction left %q", f.Actions)
	}

	if err := f.RemoveAction(1); !errors.Is(err, ErrInvalidActionIndex) {
		t.Errorf("removing the only row should fail, got %v", err)
	}
	if err := f.RemoveAction(0); !errors.Is(err, ErrInvalidActionIndex) {
		t.Errorf("RemoveAction(0) error = %v", err)
	}
}

func TestShotFields_InsertTerm(t *testing.T) {
	t.Run("text field empty", func(t *testing.T) {
		f := NewShotFields()
		if err := f.InsertTerm("shot", "Wide Shot"); err != nil {
			t.Fatal(err)
		}
		if f.CameraShot != "Wide Shot" {
			t.Errorf("CameraShot = %q", f.CameraShot)
		}
	})

	t.Run("text field appends", func(t *testing.T) {
		f := &ShotFields{Mood: "tense"}
		if err := f.InsertTerm("mood", "Noir"); err != nil {
			t.Fatal(err)
		}
		if f.Mood != "tense, Noir" {
			t.Errorf("Mood = %q", f.Mood)
		}
	})

	t.Run("actions fill first blank row", func(t *testing.T) {
		f := &ShotFields{Actions: []string{"walks", "  ", ""}}
		if err := f.InsertTerm("actions", "Whip Pan"); err != nil {
			t.Fatal(err)
		}
		if f.Actions[1] != "Whip Pan" || len(f.Actions) != 3 {
			t.Errorf("Actions = %q", f.Actions)
		}
	})

	t.Run("actions grow when full", func(t *testing.T) {
		f := &ShotFields{Actions: []string{"walks"}}
		if err := f.InsertTerm("actions", "turns"); err != nil {
			t.Fatal(err)
		}
		if len(f.Actions) != 2 || f.Actions[1] != "turns" {
			t.Errorf("Actions = %q", f.Actions)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		f := NewShotFields()
		if err := f.InsertTerm("camera", "x"); !errors.Is(err, ErrUnknownField) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestShotFields_Clone(t *testing.T) {
	original := ShotFields{Mood: "calm", Actions: []string{"a", "b"}}
	clone := original.Clone()
	clone.Actions[0] = "changed"

	if original.Actions[0] != "a" {
		t.Error("Clone shares the actions slice")
	}
}

func TestShotFields_Preview(t *testing.T) {
	if got := (ShotFields{}).Preview(100); got != "No description available" {
		t.Errorf("Preview() = %q", got)
	}

	short := ShotFields{SceneDescription: "short"}
	if got := short.Preview(100); got != "short" {
		t.Errorf("Preview() = %q", got)
	}

	long := ShotFields{SceneDescription: "abcdefghij"}
	if got := long.Preview(4); got != "abcd..." {
		t.Errorf("Preview() = %q", got)
	}
}

func TestShotFields_FilledCount(t *testing.T) {
	f := ShotFields{SceneDescription: "s", Mood: "m", Actions: []string{"", "go"}}
	if got := f.FilledCount(); got != 3 {
		t.Errorf("FilledCount() = %d, want 3", got)
	}
}
