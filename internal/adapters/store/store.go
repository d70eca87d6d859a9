package store

import (
	"fmt"
	"io"

	"github.com/kamal-hamza/shot-cli/internal/core/ports"
	"github.com/kamal-hamza/shot-cli/pkg/config"
	"github.com/kamal-hamza/shot-cli/pkg/vault"
)

// Store is a blob store that holds resources until closed
type Store interface {
	ports.BlobStore
	io.Closer
}

// Open returns the blob store for the configured backend
func Open(backend string, v *vault.Vault) (Store, error) {
	switch backend {
	case config.BackendSQLite:
		return NewSQLiteStore(v.DatabasePath())
	case config.BackendFile, "":
		fs, err := NewFileStore(v.ArchivePath)
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Close is a no-op; files are closed after every write
func (s *FileStore) Close() error {
	return nil
}
