package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store owns the currently loaded index and serializes reloads. Consumers
// hold the *Index they were handed for the duration of one run; the store
// only swaps the pointer, never mutates a published index.
type Store struct {
	mu     sync.RWMutex
	idx    *Index
	loaded time.Time

	src    Source
	logger *zap.Logger
	sf     singleflight.Group
}

// NewStore creates a store reading from the given source. Nothing is loaded
// until Index or Reload is called.
func NewStore(src Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{src: src, logger: logger}
}

// Index returns the current index, loading it on first use.
func (s *Store) Index(ctx context.Context) (*Index, error) {
	// Fast path: already loaded
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()

	if idx != nil {
		return idx, nil
	}

	return s.Reload(ctx)
}

// Reload rebuilds the index from the source and swaps it in. Concurrent
// callers collapse into a single load via singleflight.
func (s *Store) Reload(ctx context.Context) (*Index, error) {
	result, err, _ := s.sf.Do("reload", func() (interface{}, error) {
		idx, err := Load(ctx, s.src, s.logger)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.idx = idx
		s.loaded = time.Now()
		s.mu.Unlock()

		return idx, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Index), nil
}

// LoadedAt returns when the current index was built, zero when nothing has
// been loaded yet.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
