package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
	"github.com/kamal-hamza/shot-cli/internal/core/ports"
)

// DraftRepository keeps the working form as a YAML file
type DraftRepository struct {
	path string
	mu   sync.RWMutex
}

// Ensure it implements the interface
var _ ports.DraftRepository = (*DraftRepository)(nil)

// NewDraftRepository creates a draft repository backed by the file at path
func NewDraftRepository(path string) *DraftRepository {
	return &DraftRepository{path: path}
}

// Path returns the location of the draft file
func (r *DraftRepository) Path() string {
	return r.path
}

// Load reads the draft, returning a blank form if none has been saved
func (r *DraftRepository) Load(ctx context.Context) (*domain.ShotFields, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return domain.NewShotFields(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	fields := domain.NewShotFields()
	if err := yaml.Unmarshal(data, fields); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", r.path, err)
	}
	if len(fields.Actions) == 0 {
		fields.Actions = []string{""}
	}
	return fields, nil
}

// Save writes the draft atomically
func (r *DraftRepository) Save(ctx context.Context, fields *domain.ShotFields) error {
	data, err := yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create draft directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".draft.*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace draft: %w", err)
	}
	return nil
}
