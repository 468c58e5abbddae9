// Package metrics implements the dashboard widget computers. Each computer
// resolves one or more snapshots, extracts fields, and produces a
// fixed-shape result, defaulting to zero wherever data is missing. None of
// them return errors: a gap in the data is a zero-filled widget, not a
// failed request.
package metrics

import (
	"log/slog"
	"time"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/resolver"
	"oil-dashboard/internal/store"
)

// Computer evaluates the dashboard widgets over a snapshot store.
type Computer struct {
	store    store.SnapshotStore
	resolver *resolver.Resolver
	logger   *slog.Logger

	// now is the Korean wall clock, injectable for tests.
	now func() time.Time
}

// New creates a Computer over the given store.
func New(s store.SnapshotStore, logger *slog.Logger) *Computer {
	return &Computer{
		store:    s,
		resolver: resolver.New(s, logger),
		logger:   logger,
		now:      dates.KoreanNow,
	}
}

// latestDate is the freshest published day: Korean now minus one day.
func (c *Computer) latestDate() time.Time {
	return c.now().AddDate(0, 0, -1)
}
