package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
)

func TestDraftRepository_LoadMissing(t *testing.T) {
	repo := NewDraftRepository(filepath.Join(t.TempDir(), "draft.yaml"))

	fields, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewShotFields(), fields)
}

func TestDraftRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "draft.yaml")
	repo := NewDraftRepository(path)

	want := &domain.ShotFields{
		SceneDescription: "A street market at night\nwith \"quotes\": and colons",
		CameraLens:       "35mm",
		Actions:          []string{"vendor shouts", "", "  "},
		Dialogue:         "Fresh fish!",
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sceneDescription:")
	assert.Contains(t, string(data), "cameraLens: 35mm")
}

func TestDraftRepository_EmptyActionsGetOneRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mood: calm\nactions: []\n"), 0644))

	fields, err := NewDraftRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "calm", fields.Mood)
	assert.Equal(t, []string{""}, fields.Actions)
}

func TestDraftRepository_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mood: [unclosed\n"), 0644))

	_, err := NewDraftRepository(path).Load(context.Background())
	assert.Error(t, err)
}

func TestDraftRepository_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	repo := NewDraftRepository(filepath.Join(dir, "draft.yaml"))

	require.NoError(t, repo.Save(context.Background(), domain.NewShotFields()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "draft.yaml", entries[0].Name())
}
