package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/ports"
)

// DefaultStorageKey is the blob store key holding the archive
const DefaultStorageKey = "sora_prompts"

// ArchiveService manages the collection of saved prompts. Every mutation
// reads the whole collection, changes it and writes it back in one Set.
type ArchiveService struct {
	store  ports.BlobStore
	key    string
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewArchiveService creates a new archive service over store at key
func NewArchiveService(store ports.BlobStore, key string, logger *zap.Logger) *ArchiveService {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{
		store:  store,
		key:    key,
		logger: logger,
		now:    time.Now,
		newID:  generateID,
	}
}

// SaveRequest represents a request to save the current form
type SaveRequest struct {
	Title    string
	Tags     []string
	FormData domain.ShotFields
}

// PromptUpdate holds a partial update. Nil fields are left unchanged;
// a non-nil empty Tags clears the tags.
type PromptUpdate struct {
	Title    *string
	Tags     []string
	FormData *domain.ShotFields
}

// GetAll returns every saved prompt. Missing, unreadable or malformed
// archives all read as empty.
func (s *ArchiveService) GetAll(ctx context.Context) []domain.SavedPrompt {
	prompts, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("archive read failed, treating as empty",
			zap.String("key", s.key), zap.Error(err))
		return []domain.SavedPrompt{}
	}
	return prompts
}

// load reads the archive for a mutation. A failed store read is returned
// as ErrStoreFailure so the caller never rewrites the archive from a
// partial view; missing or malformed content still reads as empty.
func (s *ArchiveService) load(ctx context.Context) ([]domain.SavedPrompt, error) {
	raw, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	if !found || raw == "" {
		return []domain.SavedPrompt{}, nil
	}

	var prompts []domain.SavedPrompt
	if err := json.Unmarshal([]byte(raw), &prompts); err != nil {
		s.logger.Warn("archive is malformed, treating as empty",
			zap.String("key", s.key), zap.Int("bytes", len(raw)), zap.Error(err))
		return []domain.SavedPrompt{}, nil
	}
	if prompts == nil {
		return []domain.SavedPrompt{}, nil
	}
	return prompts, nil
}

// Get returns the prompt with the given id
func (s *ArchiveService) Get(ctx context.Context, id string) (*domain.SavedPrompt, error) {
	prompts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if idx := indexOf(prompts, id); idx >= 0 {
		p := prompts[idx]
		return &p, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

// Save appends a new prompt built from req and persists the archive
func (s *ArchiveService) Save(ctx context.Context, req SaveRequest) (*domain.SavedPrompt, error) {
	prompts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = domain.DefaultTitle
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	stamp := domain.FormatTimestamp(s.now())
	prompt := domain.SavedPrompt{
		ID:        s.newID(),
		Title:     title,
		Tags:      append([]string{}, tags...),
		FormData:  req.FormData.Clone(),
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}

	prompts = append(prompts, prompt)
	if err := s.persist(ctx, prompts); err != nil {
		return nil, err
	}

	s.logger.Info("prompt saved",
		zap.String("id", prompt.ID), zap.String("title", prompt.Title), zap.Int("total", len(prompts)))
	return &prompt, nil
}

// Delete removes the prompt with the given id. An unknown id is not an
// error; the archive is still rewritten.
func (s *ArchiveService) Delete(ctx context.Context, id string) (bool, error) {
	prompts, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]domain.SavedPrompt, 0, len(prompts))
	for _, p := range prompts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if err := s.persist(ctx, kept); err != nil {
		return false, err
	}

	s.logger.Info("prompt deleted",
		zap.String("id", id), zap.Bool("existed", len(kept) != len(prompts)))
	return true, nil
}

// Update merges upd onto the prompt with the given id and restamps it
func (s *ArchiveService) Update(ctx context.Context, id string, upd PromptUpdate) (*domain.SavedPrompt, error) {
	prompts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(prompts, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	p := prompts[idx]
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidTitle)
		}
		p.Title = *upd.Title
	}
	if upd.Tags != nil {
		p.Tags = append([]string{}, upd.Tags...)
	}
	if upd.FormData != nil {
		p.FormData = upd.FormData.Clone()
	}
	p.UpdatedAt = domain.FormatTimestamp(s.now())
	prompts[idx] = p

	if err := s.persist(ctx, prompts); err != nil {
		return nil, err
	}

	s.logger.Info("prompt updated", zap.String("id", id))
	return &p, nil
}

// Duplicate copies the prompt with the given id under the next free
// version title of its family ("Shot A" -> "Shot A v1" -> "Shot A v2").
func (s *ArchiveService) Duplicate(ctx context.Context, id string) (*domain.SavedPrompt, error) {
	prompts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(prompts, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	original := prompts[idx]

	baseTitle := domain.BaseTitle(original.Title)
	titles := make([]string, len(prompts))
	for i, p := range prompts {
		titles[i] = p.Title
	}
	version := domain.NextVersion(baseTitle, titles)

	stamp := domain.FormatTimestamp(s.now())
	dup := original.Clone()
	dup.ID = s.newID()
	dup.Title = domain.VersionedTitle(baseTitle, version)
	dup.CreatedAt = stamp
	dup.UpdatedAt = stamp
	if dup.Tags == nil {
		dup.Tags = []string{}
	}

	prompts = append(prompts, dup)
	if err := s.persist(ctx, prompts); err != nil {
		return nil, err
	}

	s.logger.Info("prompt duplicated",
		zap.String("source", original.ID), zap.String("id", dup.ID), zap.String("title", dup.Title))
	return &dup, nil
}

// Import appends prompts whose ids are not yet in the archive. Records
// without an id get a new one; missing timestamps are set to now.
// Returns the number of prompts added.
func (s *ArchiveService) Import(ctx context.Context, incoming []domain.SavedPrompt) (int, error) {
	prompts, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(prompts))
	for _, p := range prompts {
		seen[p.ID] = true
	}

	stamp := domain.FormatTimestamp(s.now())
	added := 0
	for _, in := range incoming {
		p := in.Clone()
		if p.ID == "" {
			p.ID = s.newID()
		}
		if seen[p.ID] {
			continue
		}
		if p.Title == "" {
			p.Title = domain.DefaultTitle
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.CreatedAt == "" {
			p.CreatedAt = stamp
		}
		if p.UpdatedAt == "" {
			p.UpdatedAt = p.CreatedAt
		}

		seen[p.ID] = true
		prompts = append(prompts, p)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := s.persist(ctx, prompts); err != nil {
		return 0, err
	}

	s.logger.Info("prompts imported", zap.Int("added", added), zap.Int("total", len(prompts)))
	return added, nil
}

// Check reads the archive strictly and reports how many prompts it holds.
// Unlike GetAll, read failures and malformed data are returned as errors.
func (s *ArchiveService) Check(ctx context.Context) (int, error) {
	raw, found, err := s.store.Get(ctx, s.key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	if !found || raw == "" {
		return 0, nil
	}

	var prompts []domain.SavedPrompt
	if err := json.Unmarshal([]byte(raw), &prompts); err != nil {
		return 0, fmt.Errorf("archive is malformed: %w", err)
	}
	return len(prompts), nil
}

// persist serializes the full collection and writes it in a single Set
func (s *ArchiveService) persist(ctx context.Context, prompts []domain.SavedPrompt) error {
	data, err := json.Marshal(prompts)
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("archive write failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
	}
	return nil
}

func indexOf(prompts []domain.SavedPrompt, id string) int {
	for i := range prompts {
		if prompts[i].ID == id {
			return i
		}
	}
	return -1
}

// generateID returns a time-ordered UUID so ids sort by creation
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
