package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/ports"
)

// DraftService manages the working form and turns it into prompt text
type DraftService struct {
	repo      ports.DraftRepository
	clipboard ports.Clipboard
	logger    *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(repo ports.DraftRepository, clipboard ports.Clipboard, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		repo:      repo,
		clipboard: clipboard,
		logger:    logger,
	}
}

// Load returns the current draft
func (s *DraftService) Load(ctx context.Context) (*domain.ShotFields, error) {
	fields, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return fields, nil
}

// Update applies fn to the draft and saves the result. Nothing is written
// when fn fails.
func (s *DraftService) Update(ctx context.Context, fn func(*domain.ShotFields) error) (*domain.ShotFields, error) {
	fields, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(fields); err != nil {
		return nil, err
	}

	if err := s.Save(ctx, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Save replaces the draft
func (s *DraftService) Save(ctx context.Context, fields *domain.ShotFields) error {
	if err := s.repo.Save(ctx, fields); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	s.logger.Debug("draft saved", zap.Int("filled", fields.FilledCount()))
	return nil
}

// Render returns the generated prompt for the current draft
func (s *DraftService) Render(ctx context.Context) (string, error) {
	fields, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return domain.GeneratePrompt(*fields), nil
}

// Copy puts the current draft's prompt on the clipboard
func (s *DraftService) Copy(ctx context.Context) (string, error) {
	fields, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.CopyFields(*fields)
}

// CopyFields puts the prompt generated from fields on the clipboard.
// An empty prompt is refused.
func (s *DraftService) CopyFields(fields domain.ShotFields) (string, error) {
	prompt := domain.GeneratePrompt(fields)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}

	if err := s.clipboard.WriteAll(prompt); err != nil {
		s.logger.Warn("clipboard write failed", zap.Error(err))
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	s.logger.Info("prompt copied", zap.Int("chars", len(prompt)))
	return prompt, nil
}

// Clear resets the draft to a blank form
func (s *DraftService) Clear(ctx context.Context) error {
	if err := s.Save(ctx, domain.NewShotFields()); err != nil {
		return err
	}
	s.logger.Info("draft cleared")
	return nil
}

// LoadPrompt replaces the draft with the form of a saved prompt
func (s *DraftService) LoadPrompt(ctx context.Context, prompt domain.SavedPrompt) error {
	fields := prompt.FormData.Clone()
	if len(fields.Actions) == 0 {
		fields.Actions = []string{""}
	}

	if err := s.Save(ctx, &fields); err != nil {
		return err
	}
	s.logger.Info("prompt loaded into draft", zap.String("id", prompt.ID), zap.String("title", prompt.Title))
	return nil
}
