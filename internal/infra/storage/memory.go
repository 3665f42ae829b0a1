package storage

import (
	"context"
	"sync"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// MemoryStorage keeps dispatch records in process memory. Records are lost
// on exit.
type MemoryStorage struct {
	records []domain.DispatchRecord
	mutex   sync.RWMutex
}

var _ DispatchJournal = (*MemoryStorage)(nil)

// NewMemoryStorage creates a new in-memory journal
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Record appends a dispatch record
func (m *MemoryStorage) Record(ctx context.Context, record domain.DispatchRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.records = append(m.records, record)
	return nil
}

// List returns records newest first
func (m *MemoryStorage) List(ctx context.Context, limit, offset int) ([]domain.DispatchRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	newest := make([]domain.DispatchRecord, len(m.records))
	for i, r := range m.records {
		newest[len(m.records)-1-i] = r
	}

	start, end := page(len(newest), limit, offset)
	return newest[start:end], nil
}

// Close is a no-op for memory storage
func (m *MemoryStorage) Close() error {
	return nil
}

// Health always succeeds for memory storage
func (m *MemoryStorage) Health(ctx context.Context) error {
	return nil
}
