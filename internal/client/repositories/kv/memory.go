package kv

import (
	"context"
	"maps"
	"sync"
)

type memoryRepository struct {
	data map[string][]byte
}

func (r *memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (r *memoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.data[key] = append([]byte{}, value...)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}

func (r *memoryRepository) List(_ context.Context) (map[string][]byte, error) {
	result := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		result[k] = append([]byte{}, v...)
	}
	return result, nil
}

func (r *memoryRepository) Clear(_ context.Context) error {
	clear(r.data)
	return nil
}

// MemoryStore keeps everything in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	repo memoryRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{repo: memoryRepository{data: make(map[string][]byte)}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Get(ctx, key)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Set(ctx, key, value)
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, key)
}

func (s *MemoryStore) List(ctx context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.List(ctx)
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}

// WithTx runs fn against a private copy and swaps it in when fn succeeds.
// The store stays locked for the duration of fn.
func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := &memoryRepository{data: maps.Clone(s.repo.data)}
	if err := fn(ctx, work); err != nil {
		return err
	}
	s.repo.data = work.data
	return nil
}
