package metrics

import (
	"context"
	"fmt"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/models"
	"oil-dashboard/internal/resolver"
)

const (
	historyDays   = 7
	predictedDays = 3
	maxOffset     = 6 // predictions carry offsets p0..p6
)

// LinearGraph merges a seven-day historical window of national fuel prices
// with up to three predicted days into one keyed record: h6 (oldest) .. h0
// (latest) and pre0 .. pre2. Days that cannot be resolved stay zero-filled
// so the payload shape is constant.
func (c *Computer) LinearGraph(ctx context.Context) models.LinearGraph {
	out := make(models.LinearGraph, historyDays+predictedDays)
	for i := 0; i < historyDays; i++ {
		out[fmt.Sprintf("h%d", i)] = models.FuelPrices{}
	}
	for i := 0; i < predictedDays; i++ {
		out[fmt.Sprintf("pre%d", i)] = models.FuelPrices{}
	}

	c.fillHistory(ctx, out)
	c.fillPredictions(ctx, out)
	return out
}

// fillHistory resolves each of the seven days before today independently:
// h0 is the latest valid day, h6 the day six offsets back. Offsets falling
// into a gap resolve to the nearest prior day, same as every other widget.
func (c *Computer) fillHistory(ctx context.Context, out models.LinearGraph) {
	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return
	}
	for i := 0; i < historyDays; i++ {
		res, err := c.resolver.FindNearestValid(ctx, latest.Date.AddDate(0, 0, -i), resolver.MaxDaysBack)
		if err != nil {
			continue
		}
		idx := res.Doc.RegionIndex("National")
		if idx < 0 {
			c.logger.Warn("national position missing", "key", res.Key)
			continue
		}
		out[fmt.Sprintf("h%d", i)] = res.Doc.FuelPricesAt(idx)
	}
}

// fillPredictions consumes the latest prediction document. When its anchor
// lags today by k days the forecast for today is the sub-document at
// offset k, so the merged payload reads p(k)..p(k+2), clamped at p6. A
// stale prediction therefore contributes fewer than three points.
func (c *Computer) fillPredictions(ctx context.Context, out models.LinearGraph) {
	key, err := c.resolver.FindLatestPrediction(ctx, c.now())
	if err != nil {
		c.logger.Warn("no prediction available")
		return
	}
	pred, err := c.store.FetchPrediction(ctx, key)
	if err != nil || pred == nil {
		c.logger.Warn("failed to fetch prediction", "key", key, "err", err)
		return
	}
	anchor, err := dates.ParsePredictKey(key)
	if err != nil {
		c.logger.Warn("unparsable prediction key", "key", key)
		return
	}

	stale := dates.DaysBetween(anchor, c.now())
	if stale < 0 {
		stale = 0
	}
	for i := 0; i < predictedDays; i++ {
		offset := stale + i
		if offset > maxOffset {
			break
		}
		day := pred.Offset(offset)
		if day == nil {
			continue
		}
		out[fmt.Sprintf("pre%d", i)] = day.National()
	}
}
