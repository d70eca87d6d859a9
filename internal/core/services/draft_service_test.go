package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/ports/mocks"
)

func newTestDraft() (*DraftService, *mocks.MockDraftRepository, *mocks.MockClipboard) {
	repo := mocks.NewMockDraftRepository()
	clip := mocks.NewMockClipboard()
	return NewDraftService(repo, clip, nil), repo, clip
}

func TestDraftService_LoadBlank(t *testing.T) {
	svc, _, _ := newTestDraft()

	fields, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(*domain.NewShotFields(), *fields); diff != "" {
		t.Errorf("blank draft mismatch:\n%s", diff)
	}
}

func TestDraftService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestDraft()

	_, err := svc.Update(ctx, func(f *domain.ShotFields) error {
		return f.Set("scene", "Fog over a harbour")
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if repo.Current() == nil || repo.Current().SceneDescription != "Fog over a harbour" {
		t.Errorf("draft not saved: %+v", repo.Current())
	}

	// A failing edit leaves the stored draft untouched
	_, err = svc.Update(ctx, func(f *domain.ShotFields) error {
		f.Mood = "changed"
		return f.Set("bogus", "x")
	})
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Errorf("Update() error = %v, want ErrUnknownField", err)
	}
	if repo.Current().Mood != "" {
		t.Error("failed edit was persisted")
	}
}

func TestDraftService_Render(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestDraft()

	got, err := svc.Render(ctx)
	if err != nil || got != "" {
		t.Errorf("blank Render() = %q, %v", got, err)
	}

	if _, err := svc.Update(ctx, func(f *domain.ShotFields) error {
		f.Dialogue = "Hi"
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	got, err = svc.Render(ctx)
	if err != nil || got != "Dialogue:\nHi" {
		t.Errorf("Render() = %q, %v", got, err)
	}
}

func TestDraftService_Copy(t *testing.T) {
	ctx := context.Background()

	t.Run("empty prompt is refused", func(t *testing.T) {
		svc, _, clip := newTestDraft()
		if _, err := svc.Copy(ctx); !errors.Is(err, domain.ErrEmptyPrompt) {
			t.Errorf("Copy() error = %v, want ErrEmptyPrompt", err)
		}
		if clip.Writes() != 0 {
			t.Error("clipboard written for an empty prompt")
		}
	})

	t.Run("copies generated prompt", func(t *testing.T) {
		svc, _, clip := newTestDraft()
		_, _ = svc.Update(ctx, func(f *domain.ShotFields) error {
			f.SceneDescription = "A cat"
			f.Mood = "calm"
			return nil
		})

		text, err := svc.Copy(ctx)
		if err != nil {
			t.Fatalf("Copy() error: %v", err)
		}
		want := "A cat\n\nCinematography:\nMood: calm"
		if text != want || clip.Text() != want {
			t.Errorf("copied %q, clipboard %q, want %q", text, clip.Text(), want)
		}
	})

	t.Run("clipboard failure propagates", func(t *testing.T) {
		svc, _, clip := newTestDraft()
		boom := errors.New("no display")
		clip.Err = boom

		_, err := svc.CopyFields(domain.ShotFields{Audio: "rain"})
		if !errors.Is(err, boom) {
			t.Errorf("CopyFields() error = %v, want %v", err, boom)
		}
		if clip.Writes() != 1 {
			t.Errorf("clipboard attempted %d times, want 1", clip.Writes())
		}
	})
}

func TestDraftService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestDraft()

	_, _ = svc.Update(ctx, func(f *domain.ShotFields) error {
		f.Lighting = "neon"
		f.AddAction("runs")
		return nil
	})

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if diff := cmp.Diff(*domain.NewShotFields(), *repo.Current()); diff != "" {
		t.Errorf("cleared draft mismatch:\n%s", diff)
	}
}

func TestDraftService_LoadPrompt(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestDraft()

	saved := domain.SavedPrompt{
		ID:       "x",
		Title:    "Harbour",
		FormData: domain.ShotFields{CameraLens: "85mm", Actions: []string{"boat drifts"}},
	}
	if err := svc.LoadPrompt(ctx, saved); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(saved.FormData, *repo.Current()); diff != "" {
		t.Errorf("loaded draft mismatch:\n%s", diff)
	}

	// A stored form without actions still gets one editable row
	if err := svc.LoadPrompt(ctx, domain.SavedPrompt{}); err != nil {
		t.Fatal(err)
	}
	if len(repo.Current().Actions) != 1 {
		t.Errorf("Actions = %q, want one empty row", repo.Current().Actions)
	}
}

func TestDraftService_LoadError(t *testing.T) {
	svc, repo, _ := newTestDraft()
	repo.LoadErr = errors.New("corrupt")

	if _, err := svc.Render(context.Background()); err == nil {
		t.Error("expected load error")
	}
}
