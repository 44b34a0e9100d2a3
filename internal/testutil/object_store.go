package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sndarsmle/server-NEWSAPP/internal/storage"
)

// MemoryObjectStore is an in-memory storage.ObjectStore for tests. It
// produces the same public-URL shape as the real store so key derivation
// round-trips.
type MemoryObjectStore struct {
	mu      sync.Mutex
	base    string
	bucket  string
	objects map[string][]byte
}

func NewMemoryObjectStore(base, bucket string) *MemoryObjectStore {
	return &MemoryObjectStore{
		base:    base,
		bucket:  bucket,
		objects: make(map[string][]byte),
	}
}

func (m *MemoryObjectStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data

	return fmt.Sprintf("%s/%s/%s", m.base, m.bucket, key), nil
}

func (m *MemoryObjectStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryObjectStore) KeyFromURL(publicURL string) (string, bool) {
	return storage.KeyFromURL(publicURL, m.base, m.bucket)
}

// Has reports whether an object with the given key is stored.
func (m *MemoryObjectStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Len returns the number of stored objects.
func (m *MemoryObjectStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
