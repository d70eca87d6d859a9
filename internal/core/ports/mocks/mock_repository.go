package mocks

import (
	"context"
	"sync"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
)

// MockBlobStore is an in-memory implementation of the BlobStore interface for testing
type MockBlobStore struct {
	mu   sync.RWMutex
	data map[string]string

	// GetErr and SetErr, when set, are returned by every Get/Set call
	GetErr error
	SetErr error

	setCalls int
}

// NewMockBlobStore creates a new empty mock blob store
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		data: make(map[string]string),
	}
}

// Get returns the raw value stored under key
func (m *MockBlobStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

// Set stores value under key
func (m *MockBlobStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

// Put seeds a raw value, bypassing error injection
func (m *MockBlobStore) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Raw returns the stored value for key, or "" if absent
func (m *MockBlobStore) Raw(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key]
}

// SetCalls reports how many times Set was invoked
func (m *MockBlobStore) SetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setCalls
}

// --- MockDraftRepository ---

type MockDraftRepository struct {
	mu      sync.Mutex
	draft   *domain.ShotFields
	LoadErr error
	SaveErr error
}

func NewMockDraftRepository() *MockDraftRepository {
	return &MockDraftRepository{}
}

func (m *MockDraftRepository) Load(ctx context.Context) (*domain.ShotFields, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.draft == nil {
		return domain.NewShotFields(), nil
	}
	clone := m.draft.Clone()
	return &clone, nil
}

func (m *MockDraftRepository) Save(ctx context.Context, fields *domain.ShotFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	clone := fields.Clone()
	m.draft = &clone
	return nil
}

// Current returns the stored draft without copying, or nil
func (m *MockDraftRepository) Current() *domain.ShotFields {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// --- MockClipboard ---

type MockClipboard struct {
	mu     sync.Mutex
	text   string
	writes int
	Err    error
}

func NewMockClipboard() *MockClipboard {
	return &MockClipboard{}
}

func (m *MockClipboard) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

func (m *MockClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *MockClipboard) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
