// Package resolver locates the nearest calendar day with valid data.
// Gaps of missing days are normal: ingestion skips holidays and sometimes
// fails outright, so every lookup degrades day by day until it finds a
// usable document or exhausts its bound.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/models"
	"oil-dashboard/internal/store"
)

// ErrNotFound is returned when no valid snapshot exists within the search
// bound. Callers recover it locally as a zero-fallback value; it is never
// surfaced to API clients.
var ErrNotFound = errors.New("no valid snapshot found")

const (
	// MaxDaysBack bounds the backward scan of FindNearestValid.
	MaxDaysBack = 30
	// QuarterRadius bounds the bidirectional scan of FindValidForQuarter.
	QuarterRadius = 45
	// predictDaysBack bounds the prediction key scan.
	predictDaysBack = 7
)

// Resolver performs the backward and bidirectional day searches over a
// SnapshotStore.
type Resolver struct {
	store  store.SnapshotStore
	logger *slog.Logger
}

// New creates a Resolver.
func New(s store.SnapshotStore, logger *slog.Logger) *Resolver {
	return &Resolver{store: s, logger: logger}
}

// FindNearestValid scans backward one day at a time from start, returning
// the first day that both exists and holds a non-empty document. The scan
// is strictly sequential: a closer day must win over a farther one, so the
// candidates cannot be probed concurrently. Store errors on a single day
// are swallowed and the scan moves on; only exhausting maxDaysBack yields
// ErrNotFound.
func (r *Resolver) FindNearestValid(ctx context.Context, start time.Time, maxDaysBack int) (*models.ResolvedSnapshot, error) {
	if maxDaysBack <= 0 {
		maxDaysBack = MaxDaysBack
	}
	current := start
	for i := 0; i < maxDaysBack; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := dates.FormatKey(current)
		if doc := r.fetchIfExists(ctx, key); doc != nil {
			r.logger.Debug("resolved snapshot", "key", key, "daysBack", i)
			return &models.ResolvedSnapshot{Date: current, Key: key, Doc: doc}, nil
		}
		current = current.AddDate(0, 0, -1)
	}
	r.logger.Debug("no valid snapshot within bound", "start", dates.FormatKey(start), "maxDaysBack", maxDaysBack)
	return nil, ErrNotFound
}

// FindValidForQuarter searches around a quarter midpoint for a day whose
// document carries a GDP figure: the midpoint itself, then +1,-1,+2,-2 out
// to the radius. At equal distance the future day wins, since a quarterly
// figure is usually published after the quarter's midpoint.
func (r *Resolver) FindValidForQuarter(ctx context.Context, midpoint time.Time, radiusDays int) (*models.ResolvedSnapshot, error) {
	if radiusDays <= 0 {
		radiusDays = QuarterRadius
	}
	if res := r.quarterCandidate(ctx, midpoint); res != nil {
		return res, nil
	}
	for i := 1; i <= radiusDays; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res := r.quarterCandidate(ctx, midpoint.AddDate(0, 0, i)); res != nil {
			return res, nil
		}
		if res := r.quarterCandidate(ctx, midpoint.AddDate(0, 0, -i)); res != nil {
			return res, nil
		}
	}
	r.logger.Debug("no GDP snapshot within radius", "midpoint", dates.FormatKey(midpoint), "radiusDays", radiusDays)
	return nil, ErrNotFound
}

func (r *Resolver) quarterCandidate(ctx context.Context, day time.Time) *models.ResolvedSnapshot {
	key := dates.FormatKey(day)
	doc := r.fetchIfExists(ctx, key)
	if doc == nil || doc.GDP == nil {
		return nil
	}
	r.logger.Debug("resolved quarter snapshot", "key", key)
	return &models.ResolvedSnapshot{Date: day, Key: key, Doc: doc}
}

// FindLatestPrediction returns the key of the freshest prediction
// collection: today's key, then up to six days backward, then the same
// scan once more ignoring case. The case-insensitive retry guards against
// key-casing drift at the source.
func (r *Resolver) FindLatestPrediction(ctx context.Context, today time.Time) (string, error) {
	keys, err := r.store.ListPredictionKeys(ctx)
	if err != nil {
		r.logger.Debug("failed to list prediction keys", "err", err)
		return "", ErrNotFound
	}

	byExact := make(map[string]string, len(keys))
	byLower := make(map[string]string, len(keys))
	for _, k := range keys {
		byExact[k] = k
		byLower[strings.ToLower(k)] = k
	}

	for i := 0; i < predictDaysBack; i++ {
		want := dates.FormatPredictKey(today.AddDate(0, 0, -i))
		if k, ok := byExact[want]; ok {
			r.logger.Debug("resolved prediction", "key", k, "daysBack", i)
			return k, nil
		}
	}
	for i := 0; i < predictDaysBack; i++ {
		want := strings.ToLower(dates.FormatPredictKey(today.AddDate(0, 0, -i)))
		if k, ok := byLower[want]; ok {
			r.logger.Debug("resolved prediction ignoring case", "key", k, "daysBack", i)
			return k, nil
		}
	}
	return "", ErrNotFound
}

// fetchIfExists checks existence then fetches, treating any store error as
// "day invalid" so resolution degrades to the next candidate.
func (r *Resolver) fetchIfExists(ctx context.Context, key string) *models.Snapshot {
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		r.logger.Debug("existence check failed", "key", key, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	doc, err := r.store.FetchOne(ctx, key)
	if err != nil {
		r.logger.Debug("fetch failed", "key", key, "err", err)
		return nil
	}
	return doc
}
