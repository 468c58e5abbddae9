package metrics

import (
	"context"

	"oil-dashboard/internal/models"
	"oil-dashboard/internal/resolver"
)

// NationalAverage returns today's four national fuel prices together with
// the delta between the rolling averages of the most recent seven
// resolvable days and the seven before them. Each day's figure is the mean
// of the three non-kerosene fuels; offsets that cannot be resolved are
// skipped, so a window may hold fewer than seven samples.
func (c *Computer) NationalAverage(ctx context.Context) models.NationalAverage {
	out := models.NationalAverage{{0}, {0, 0, 0, 0}}

	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return out
	}
	doc := latest.Doc
	if idx := doc.RegionIndex("National"); idx >= 0 {
		p := doc.FuelPricesAt(idx)
		out[1] = []float64{p.Diesel, p.Gasoline, p.PremiumGasoline, p.Kerosene}
	} else {
		c.logger.Warn("national position missing", "key", latest.Key)
	}

	recent := c.windowAverages(ctx, latest, 0, 7)
	previous := c.windowAverages(ctx, latest, 7, 14)
	out[0] = []float64{round2(mean(recent) - mean(previous))}
	return out
}

// windowAverages collects the per-day three-fuel national averages for
// offsets [from, to) before the resolved latest day.
func (c *Computer) windowAverages(ctx context.Context, latest *models.ResolvedSnapshot, from, to int) []float64 {
	var avgs []float64
	for i := from; i < to; i++ {
		res, err := c.resolver.FindNearestValid(ctx, latest.Date.AddDate(0, 0, -i), resolver.MaxDaysBack)
		if err != nil {
			continue
		}
		idx := res.Doc.RegionIndex("National")
		if idx < 0 {
			continue
		}
		p := res.Doc.FuelPricesAt(idx)
		avgs = append(avgs, (p.Diesel+p.Gasoline+p.PremiumGasoline)/3)
	}
	return avgs
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
