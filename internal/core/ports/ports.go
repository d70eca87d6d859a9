package ports

import (
	"context"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
)

// BlobStore defines the port for the opaque key/value storage that holds
// the serialized prompt archive
type BlobStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set overwrites the value stored under key
	Set(ctx context.Context, key string, value string) error
}

// DraftRepository defines the port for the working form that survives
// between invocations
type DraftRepository interface {
	// Load returns the current draft, or a blank form if none exists
	Load(ctx context.Context) (*domain.ShotFields, error)

	// Save replaces the current draft
	Save(ctx context.Context, fields *domain.ShotFields) error
}

// Clipboard defines the port for the system clipboard sink
type Clipboard interface {
	// WriteAll replaces the clipboard contents
	WriteAll(text string) error
}
