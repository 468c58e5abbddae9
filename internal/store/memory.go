package store

import (
	"context"
	"sync"

	"oil-dashboard/internal/models"
)

// MemoryStore is an in-memory SnapshotStore. It backs tests and lets the
// server come up without a reachable Mongo deployment.
type MemoryStore struct {
	mu          sync.RWMutex
	snapshots   map[string]*models.Snapshot
	predictions map[string]*models.PredictionSnapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots:   make(map[string]*models.Snapshot),
		predictions: make(map[string]*models.PredictionSnapshot),
	}
}

// PutSnapshot stores a snapshot under the given collection key.
func (m *MemoryStore) PutSnapshot(key string, snap *models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = snap
}

// PutPrediction stores a prediction document under the given key.
func (m *MemoryStore) PutPrediction(key string, pred *models.PredictionSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictions[key] = pred
}

// Exists reports whether a snapshot is stored under key. An entry holding
// a nil document counts as existing-but-empty, mirroring an empty
// collection in the real store.
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.snapshots[key]
	return ok, nil
}

// FetchOne returns the stored snapshot, or nil when absent.
func (m *MemoryStore) FetchOne(ctx context.Context, key string) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshots[key], nil
}

// FetchPrediction returns the stored prediction, or nil when absent.
func (m *MemoryStore) FetchPrediction(ctx context.Context, key string) (*models.PredictionSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.predictions[key], nil
}

// ListPredictionKeys returns the stored prediction keys.
func (m *MemoryStore) ListPredictionKeys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.predictions))
	for k := range m.predictions {
		keys = append(keys, k)
	}
	return keys, nil
}

// Healthy always succeeds.
func (m *MemoryStore) Healthy(ctx context.Context) error {
	return nil
}
