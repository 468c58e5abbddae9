package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/models"
	"oil-dashboard/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, dates.KST)
}

func snapshotWithRate(rate float64) *models.Snapshot {
	return &models.Snapshot{KRWRate: rate}
}

func TestFindNearestValid(t *testing.T) {
	ctx := context.Background()

	t.Run("finds the start date itself when valid", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_03_14", snapshotWithRate(1320))
		r := New(s, discardLogger())

		res, err := r.FindNearestValid(ctx, day(2024, 3, 14), MaxDaysBack)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_03_14", res.Key)
		assert.Equal(t, 1320.0, res.Doc.KRWRate)
	})

	t.Run("closer day wins over farther day", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_03_12", snapshotWithRate(1310))
		s.PutSnapshot("Date_2024_03_10", snapshotWithRate(1290))
		r := New(s, discardLogger())

		res, err := r.FindNearestValid(ctx, day(2024, 3, 14), MaxDaysBack)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_03_12", res.Key)
	})

	t.Run("skips existing-but-empty collections", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_03_14", nil)
		s.PutSnapshot("Date_2024_03_13", snapshotWithRate(1300))
		r := New(s, discardLogger())

		res, err := r.FindNearestValid(ctx, day(2024, 3, 14), MaxDaysBack)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_03_13", res.Key)
	})

	t.Run("returns ErrNotFound past the bound", func(t *testing.T) {
		s := store.NewMemoryStore()
		// Valid data exists, but 31 days before the start date.
		s.PutSnapshot("Date_2024_02_12", snapshotWithRate(1280))
		r := New(s, discardLogger())

		_, err := r.FindNearestValid(ctx, day(2024, 3, 14), 30)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty store returns ErrNotFound", func(t *testing.T) {
		r := New(store.NewMemoryStore(), discardLogger())
		_, err := r.FindNearestValid(ctx, day(2024, 3, 14), 30)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("idempotent for unchanged store state", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_03_11", snapshotWithRate(1310))
		r := New(s, discardLogger())

		first, err := r.FindNearestValid(ctx, day(2024, 3, 14), MaxDaysBack)
		require.NoError(t, err)
		second, err := r.FindNearestValid(ctx, day(2024, 3, 14), MaxDaysBack)
		require.NoError(t, err)
		assert.Equal(t, first.Key, second.Key)
	})

	t.Run("store errors degrade to the next day", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_03_13", snapshotWithRate(1300))
		r := New(&flakyStore{SnapshotStore: s, failKey: "Date_2024_03_14"}, discardLogger())

		res, err := r.FindNearestValid(ctx, day(2024, 3, 14), MaxDaysBack)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_03_13", res.Key)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		r := New(store.NewMemoryStore(), discardLogger())
		_, err := r.FindNearestValid(cancelled, day(2024, 3, 14), 30)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFindValidForQuarter(t *testing.T) {
	ctx := context.Background()
	gdp := func(v float64) *models.Snapshot {
		return &models.Snapshot{GDP: &v}
	}

	t.Run("midpoint itself wins", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_02_15", gdp(500))
		r := New(s, discardLogger())

		res, err := r.FindValidForQuarter(ctx, day(2024, 2, 15), QuarterRadius)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_02_15", res.Key)
	})

	t.Run("future day wins at equal distance", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_02_18", gdp(510))
		s.PutSnapshot("Date_2024_02_12", gdp(490))
		r := New(s, discardLogger())

		res, err := r.FindValidForQuarter(ctx, day(2024, 2, 15), QuarterRadius)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_02_18", res.Key)
	})

	t.Run("snapshots without GDP are not candidates", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_02_15", snapshotWithRate(1300))
		s.PutSnapshot("Date_2024_02_16", gdp(505))
		r := New(s, discardLogger())

		res, err := r.FindValidForQuarter(ctx, day(2024, 2, 15), QuarterRadius)
		require.NoError(t, err)
		assert.Equal(t, "Date_2024_02_16", res.Key)
	})

	t.Run("exhausted radius returns ErrNotFound", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_05_15", gdp(500)) // 90 days out
		r := New(s, discardLogger())

		_, err := r.FindValidForQuarter(ctx, day(2024, 2, 15), 45)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFindLatestPrediction(t *testing.T) {
	ctx := context.Background()
	today := day(2024, 3, 14)

	t.Run("today's key wins", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutPrediction("Predict_2024_03_14", &models.PredictionSnapshot{})
		s.PutPrediction("Predict_2024_03_13", &models.PredictionSnapshot{})
		r := New(s, discardLogger())

		key, err := r.FindLatestPrediction(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, "Predict_2024_03_14", key)
	})

	t.Run("falls back up to six days", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutPrediction("Predict_2024_03_08", &models.PredictionSnapshot{})
		r := New(s, discardLogger())

		key, err := r.FindLatestPrediction(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, "Predict_2024_03_08", key)
	})

	t.Run("seven days back is too old", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutPrediction("Predict_2024_03_07", &models.PredictionSnapshot{})
		r := New(s, discardLogger())

		_, err := r.FindLatestPrediction(ctx, today)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("retries scan ignoring case", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutPrediction("predict_2024_03_12", &models.PredictionSnapshot{})
		r := New(s, discardLogger())

		key, err := r.FindLatestPrediction(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, "predict_2024_03_12", key)
	})

	t.Run("exact match beats closer case-mismatched key", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutPrediction("PREDICT_2024_03_14", &models.PredictionSnapshot{})
		s.PutPrediction("Predict_2024_03_12", &models.PredictionSnapshot{})
		r := New(s, discardLogger())

		key, err := r.FindLatestPrediction(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, "Predict_2024_03_12", key)
	})
}

// flakyStore fails every operation touching failKey.
type flakyStore struct {
	store.SnapshotStore
	failKey string
}

func (f *flakyStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == f.failKey {
		return false, errors.New("store unavailable")
	}
	return f.SnapshotStore.Exists(ctx, key)
}

func (f *flakyStore) FetchOne(ctx context.Context, key string) (*models.Snapshot, error) {
	if key == f.failKey {
		return nil, errors.New("store unavailable")
	}
	return f.SnapshotStore.FetchOne(ctx, key)
}
