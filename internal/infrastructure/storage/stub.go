package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	listingapp "github.com/carhive/backend/internal/application/listing"
)

// StubImageStore is an in-memory ImageStore for development and tests.
// It never talks to a real backend; uploads are remembered by key so
// tests can assert on them.
type StubImageStore struct {
	// BaseURL is the base for generated URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubImageStore creates a new StubImageStore
func NewStubImageStore() *StubImageStore {
	return &StubImageStore{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubImageStore implements ImageStore
var _ listingapp.ImageStore = (*StubImageStore)(nil)

// Upload remembers the object and returns a synthetic public URL
func (s *StubImageStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[key] = data

	return s.BaseURL + "/" + key, nil
}

// DeleteObject forgets a stored object. Deleting an unknown key succeeds.
func (s *StubImageStore) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// ObjectExists reports whether a key was uploaded
func (s *StubImageStore) ObjectExists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Object returns the stored bytes for a key, for test assertions
func (s *StubImageStore) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}
