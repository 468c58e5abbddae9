// Package store defines the narrow read contract over the snapshot and
// prediction document stores, plus its adapters. Snapshots are immutable
// once ingested, so every operation is a read and concurrent access needs
// no coordination.
package store

import (
	"context"

	"oil-dashboard/internal/models"
)

// SnapshotStore is the capability consumed by the resolver: one collection
// per calendar day, at most one document per collection.
type SnapshotStore interface {
	// Exists reports whether a snapshot collection with the given key exists.
	Exists(ctx context.Context, key string) (bool, error)
	// FetchOne returns the single document of the keyed collection, or nil
	// when the collection is empty or missing.
	FetchOne(ctx context.Context, key string) (*models.Snapshot, error)
	// FetchPrediction returns the keyed prediction document, or nil when
	// missing.
	FetchPrediction(ctx context.Context, key string) (*models.PredictionSnapshot, error)
	// ListPredictionKeys returns every collection key in the prediction store.
	ListPredictionKeys(ctx context.Context) ([]string, error)
}

// HealthChecker is implemented by adapters that can report connectivity.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}
