package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/resilience"
)

// Observer is told about every keyed lookup. name identifies the store in metrics.
type Observer interface {
	CacheHit(name string)
	CacheMiss(name string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	name     string
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	flight   resilience.SingleFlight
	observer Observer
	now      func() time.Time
}

type Option func(*Store)

func WithName(name string) Option {
	return func(s *Store) {
		s.name = strings.TrimSpace(name)
	}
}

func WithObserver(observer Observer) Option {
	return func(s *Store) {
		s.observer = observer
	}
}

// NewStore keeps entries for ttl. ttl <= 0 keeps them until deleted.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		name:    "default",
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	value, ok := s.lookup(key)
	if s.observer != nil {
		if ok {
			s.observer.CacheHit(s.name)
		} else {
			s.observer.CacheMiss(s.name)
		}
	}
	return value, ok
}

func (s *Store) lookup(key string) (any, bool) {
	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once for all concurrent callers.
// Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.lookup(key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Typed wraps GetOrLoad for a concrete value type.
func Typed[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if s == nil {
		return loader(ctx)
	}
	value, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, value)
	}
	return out, nil
}
