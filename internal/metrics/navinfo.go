package metrics

import (
	"context"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/models"
	"oil-dashboard/internal/resolver"
)

// interestScanDays bounds the backward search for a differing interest
// rate. The figure changes a handful of times a year, so the scan may walk
// far before it finds a change.
const interestScanDays = 365

// ExchangeRate returns [latest KRW rate, day-over-day delta]. When only a
// single valid day exists the delta is 0; when none exists both values are.
func (c *Computer) ExchangeRate(ctx context.Context) models.MetricPair {
	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return models.MetricPair{}
	}
	previous, err := c.resolver.FindNearestValid(ctx, latest.Date.AddDate(0, 0, -1), resolver.MaxDaysBack)
	if err != nil {
		return models.MetricPair{latest.Doc.KRWRate, 0}
	}
	return models.MetricPair{latest.Doc.KRWRate, latest.Doc.KRWRate - previous.Doc.KRWRate}
}

// OilPrice averages the three benchmark prices (Dubai, Brent, WTI) for the
// latest and previous valid days and returns [average, delta], both rounded
// to two decimals.
func (c *Computer) OilPrice(ctx context.Context) models.MetricPair {
	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return models.MetricPair{}
	}
	previous, err := c.resolver.FindNearestValid(ctx, latest.Date.AddDate(0, 0, -1), resolver.MaxDaysBack)
	if err != nil {
		return models.MetricPair{}
	}
	latestAvg := (latest.Doc.DubaiVal + latest.Doc.BrentVal + latest.Doc.WTIVal) / 3
	previousAvg := (previous.Doc.DubaiVal + previous.Doc.BrentVal + previous.Doc.WTIVal) / 3
	return models.MetricPair{round2(latestAvg), round2(latestAvg - previousAvg)}
}

// InterestRate returns [current rate, change against the previous differing
// rate]. The previous value is the first rate found scanning backward that
// differs from the current one, bounded at a year; if every day in the
// bound carries the same rate the delta is 0.
func (c *Computer) InterestRate(ctx context.Context) models.MetricPair {
	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil || latest.Doc.InterestRate == nil {
		return models.MetricPair{}
	}
	current := *latest.Doc.InterestRate

	previous := current
	day := latest.Date
	for i := 1; i < interestScanDays; i++ {
		if ctx.Err() != nil {
			break
		}
		day = day.AddDate(0, 0, -1)
		doc := c.fetchDay(ctx, dates.FormatKey(day))
		if doc == nil || doc.InterestRate == nil {
			continue
		}
		if *doc.InterestRate != current {
			previous = *doc.InterestRate
			break
		}
	}
	return models.MetricPair{current, current - previous}
}

// GDP returns [current GDP, percent change against the prior quarter].
// The prior quarter's figure is located by the bidirectional quarter
// search; if it cannot be resolved the change is 0.
func (c *Computer) GDP(ctx context.Context) models.MetricPair {
	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return models.MetricPair{}
	}
	doc := latest.Doc
	currentGDP := 0.0
	if doc.GDP != nil {
		currentGDP = *doc.GDP
	}
	if doc.GDPQuarter == "" {
		return models.MetricPair{currentGDP, 0}
	}

	prevQuarter, err := dates.PrevQuarter(doc.GDPQuarter)
	if err != nil {
		c.logger.Warn("malformed quarter code", "quarter", doc.GDPQuarter)
		return models.MetricPair{currentGDP, 0}
	}
	midpoint, err := dates.QuarterMidpoint(prevQuarter)
	if err != nil {
		return models.MetricPair{currentGDP, 0}
	}
	prev, err := c.resolver.FindValidForQuarter(ctx, midpoint, resolver.QuarterRadius)
	if err != nil || prev.Doc.GDP == nil || *prev.Doc.GDP == 0 {
		return models.MetricPair{currentGDP, 0}
	}
	previousGDP := *prev.Doc.GDP
	percentChange := (currentGDP - previousGDP) / previousGDP * 100
	return models.MetricPair{currentGDP, round2(percentChange)}
}

// fetchDay checks existence then fetches, swallowing per-day store errors.
func (c *Computer) fetchDay(ctx context.Context, key string) *models.Snapshot {
	ok, err := c.store.Exists(ctx, key)
	if err != nil || !ok {
		return nil
	}
	doc, err := c.store.FetchOne(ctx, key)
	if err != nil {
		return nil
	}
	return doc
}
