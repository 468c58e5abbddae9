package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oil-dashboard/internal/models"
)

const (
	connectAttempts    = 5
	connectBaseBackoff = 2 * time.Second
	serverSelectionTTL = 10 * time.Second
	socketTimeout      = 45 * time.Second
)

// MongoStore reads day-keyed snapshot collections from one database and
// prediction collections from another. The prediction database may live in
// a separate deployment, in which case a second client serves it. The
// clients own the connection lifecycle; callers only ever see the
// SnapshotStore contract.
type MongoStore struct {
	client        *mongo.Client
	predictClient *mongo.Client
	snapshots     *mongo.Database
	predicts      *mongo.Database
	logger        *slog.Logger
}

// NewMongoStore connects with bounded exponential backoff and verifies the
// deployment with a ping before returning. An empty predictURI reuses the
// main client for the prediction database. The driver handles reconnects
// after that; Healthy exposes the current state to callers.
func NewMongoStore(ctx context.Context, uri, predictURI, snapshotDB, predictDB string, logger *slog.Logger) (*MongoStore, error) {
	client, err := connectWithRetry(ctx, uri, logger)
	if err != nil {
		return nil, err
	}

	predictClient := client
	if predictURI != "" && predictURI != uri {
		predictClient, err = connectWithRetry(ctx, predictURI, logger)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return &MongoStore{
		client:        client,
		predictClient: predictClient,
		snapshots:     client.Database(snapshotDB),
		predicts:      predictClient.Database(predictDB),
		logger:        logger,
	}, nil
}

func connectWithRetry(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTTL).
		SetSocketTimeout(socketTimeout).
		SetMaxPoolSize(10)

	var client *mongo.Client
	var err error
	backoff := connectBaseBackoff
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, nil)
			if err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		if attempt == connectAttempts {
			break
		}
		logger.Warn("mongo connect failed, retrying",
			"attempt", attempt, "backoff", backoff, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("failed to connect to mongo after %d attempts: %w", connectAttempts, err)
}

// Exists reports whether the keyed snapshot collection exists.
func (m *MongoStore) Exists(ctx context.Context, key string) (bool, error) {
	names, err := m.snapshots.ListCollectionNames(ctx, bson.M{"name": key})
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	return len(names) > 0, nil
}

// FetchOne returns the single document of the keyed snapshot collection.
// A missing or empty collection is (nil, nil), not an error.
func (m *MongoStore) FetchOne(ctx context.Context, key string) (*models.Snapshot, error) {
	var snap models.Snapshot
	err := m.snapshots.Collection(key).FindOne(ctx, bson.D{}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot %s: %w", key, err)
	}
	return &snap, nil
}

// FetchPrediction returns the keyed prediction document from the predict
// database, or nil when missing.
func (m *MongoStore) FetchPrediction(ctx context.Context, key string) (*models.PredictionSnapshot, error) {
	var pred models.PredictionSnapshot
	err := m.predicts.Collection(key).FindOne(ctx, bson.D{}).Decode(&pred)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prediction %s: %w", key, err)
	}
	return &pred, nil
}

// ListPredictionKeys returns every collection key in the prediction store.
func (m *MongoStore) ListPredictionKeys(ctx context.Context) ([]string, error) {
	names, err := m.predicts.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list prediction collections: %w", err)
	}
	return names, nil
}

// Healthy pings the snapshot deployment. The prediction store is not part
// of the check: the dashboard degrades to zero-filled forecasts without it.
func (m *MongoStore) Healthy(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close disconnects the underlying clients.
func (m *MongoStore) Close(ctx context.Context) error {
	err := m.client.Disconnect(ctx)
	if m.predictClient != m.client {
		if perr := m.predictClient.Disconnect(ctx); err == nil {
			err = perr
		}
	}
	return err
}
