package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/macrolens/maxprotein/internal/domain"
)

// mockFoodSource returns a fixed catalog or error and counts loads
type mockFoodSource struct {
	foods []domain.Food
	err   error
	loads int
}

func (m *mockFoodSource) LoadFoods(ctx context.Context) ([]domain.Food, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.foods, nil
}

// mockCacheRepository is a mock implementation of domain.CacheRepository
type mockCacheRepository struct {
	mu   sync.Mutex
	data map[string]any
	sets int
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{data: make(map[string]any)}
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// hookCacheRepository runs onFirstSet after the first value is stored
type hookCacheRepository struct {
	*mockCacheRepository
	onFirstSet func()
	once       sync.Once
}

func (h *hookCacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	err := h.mockCacheRepository.Set(ctx, key, value, ttl)
	h.once.Do(h.onFirstSet)
	return err
}
