// Package jobs runs the scheduled full cache refresh. The ingestion side
// finishes writing the new day's snapshot before dawn, so one refresh at
// 05:00 KST keeps the cache a step ahead of the morning traffic.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"oil-dashboard/internal/dashboard"
	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/kafka"
)

// Refresher repopulates every dashboard cache key once a day.
type Refresher struct {
	svc      *dashboard.Service
	producer *kafka.Producer
	hour     int
	logger   *slog.Logger
}

// NewRefresher creates a Refresher firing at the given Korean wall-clock
// hour. producer may be nil; completion events are then skipped.
func NewRefresher(svc *dashboard.Service, producer *kafka.Producer, hour int, logger *slog.Logger) *Refresher {
	return &Refresher{svc: svc, producer: producer, hour: hour, logger: logger}
}

// Run blocks until ctx is done, refreshing at each scheduled time.
func (r *Refresher) Run(ctx context.Context) {
	for {
		next := nextRunAfter(dates.KoreanNow(), r.hour)
		r.logger.Info("next cache refresh scheduled", "at", next)

		timer := time.NewTimer(next.Sub(dates.KoreanNow()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		r.refresh(ctx)
	}
}

// RefreshNow runs one refresh immediately, outside the schedule. Used at
// startup so a fresh deployment serves warm entries.
func (r *Refresher) RefreshNow(ctx context.Context) {
	r.refresh(ctx)
}

func (r *Refresher) refresh(ctx context.Context) {
	start := time.Now()
	keys, err := r.svc.RefreshAll(ctx)
	took := time.Since(start)
	if err != nil {
		r.logger.Error("cache refresh failed", "refreshed", keys, "err", err)
		return
	}
	r.logger.Info("cache refresh complete", "keys", len(keys), "took", took)

	if r.producer != nil {
		if err := r.producer.PublishCacheRefreshed(ctx, keys, took); err != nil {
			r.logger.Warn("failed to publish refresh event", "err", err)
		}
	}
}

// nextRunAfter returns the next occurrence of the scheduled hour strictly
// after now, on the Korean calendar.
func nextRunAfter(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, dates.KST)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
