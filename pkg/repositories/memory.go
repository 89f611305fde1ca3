package repositories

import (
	"context"
	"sync"
)

// InMemoryRepository keeps values for the lifetime of the process.
type InMemoryRepository struct {
	lock   sync.RWMutex
	values map[string][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		values: make(map[string][]byte),
	}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) SaveValue(ctx context.Context, key string, value []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}

func (r *InMemoryRepository) LoadValue(ctx context.Context, key string) ([]byte, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, &ErrNotFound{Key: key}
	}
	return append([]byte(nil), v...), nil
}

func (r *InMemoryRepository) DeleteValue(ctx context.Context, key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.values, key)
	return nil
}
