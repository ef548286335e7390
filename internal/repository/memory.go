package repository

import (
	"context"
	"sync"
)

// MemoryRepository хранит слоты в памяти процесса.
type MemoryRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryRepository создаёт пустое хранилище в памяти.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{slots: make(map[string][]byte)}
}

// Get возвращает копию содержимого слота.
func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put заменяет содержимое слота.
func (r *MemoryRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[key] = append([]byte(nil), value...)
	return nil
}

// Delete удаляет слот.
func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, key)
	return nil
}

// Clear удаляет все слоты.
func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots = make(map[string][]byte)
	return nil
}

// Close ничего не делает.
func (r *MemoryRepository) Close() error {
	return nil
}
