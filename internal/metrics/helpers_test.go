package metrics

import (
	"io"
	"log/slog"
	"time"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/store"
)

// testNow pins the Korean clock to 2024-03-15, so the latest data date is
// always 2024-03-14.
var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, dates.KST)

func newTestComputer(s store.SnapshotStore) *Computer {
	c := New(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.now = func() time.Time { return testNow }
	return c
}

func f(v float64) *float64 { return &v }
