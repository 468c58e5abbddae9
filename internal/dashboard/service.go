// Package dashboard assembles the widget computers behind the read-through
// cache and fans them out for the composite payload and the scheduled full
// refresh.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"oil-dashboard/internal/cache"
	"oil-dashboard/internal/metrics"
	"oil-dashboard/internal/models"
)

// Cache keys, one per widget. The interest-rate pair carries its own key
// because it is cached far longer than the widgets embedding it.
const (
	KeyNavInfo         = "nav-info"
	KeyBarGraph        = "bar-graph"
	KeyLinearGraph     = "linear-graph"
	KeyComparison      = "comparison"
	KeyNationalAverage = "national-average"
	KeyInterestRate    = "interest_rate_data"
)

const (
	// TTLDefault is the widget cache lifetime.
	TTLDefault = time.Hour
	// TTLInterestRate is longer since the rate changes a few times a year.
	TTLInterestRate = 24 * time.Hour
)

// Service is the aggregation facade over the metric computers.
type Service struct {
	computer *metrics.Computer
	cache    cache.Cache
	logger   *slog.Logger
}

// NewService creates a Service. A nil cache disables caching entirely and
// every response is tagged as store-sourced.
func NewService(computer *metrics.Computer, c cache.Cache, logger *slog.Logger) *Service {
	return &Service{computer: computer, cache: c, logger: logger}
}

// NavInfo returns the four header metrics, cached for an hour.
func (s *Service) NavInfo(ctx context.Context) (models.NavInfo, cache.Source, error) {
	return cache.Through(ctx, s.cache, KeyNavInfo, TTLDefault, s.computeNavInfo)
}

// computeNavInfo fans out the four sub-computers. They are independent, so
// they run concurrently; each falls back to zeros on its own.
func (s *Service) computeNavInfo(ctx context.Context) (models.NavInfo, error) {
	var ni models.NavInfo
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		ni.ExchangeRate = s.computer.ExchangeRate(ctx)
	}()
	go func() {
		defer wg.Done()
		ni.OilPrice = s.computer.OilPrice(ctx)
	}()
	go func() {
		defer wg.Done()
		ni.InterestRate = s.interestRate(ctx)
	}()
	go func() {
		defer wg.Done()
		ni.GDP = s.computer.GDP(ctx)
	}()
	wg.Wait()
	return ni, nil
}

// interestRate wraps the interest computer with its own 24h cache entry:
// the backward scan for a differing rate can touch a year of collections.
func (s *Service) interestRate(ctx context.Context) models.MetricPair {
	pair, _, err := cache.Through(ctx, s.cache, KeyInterestRate, TTLInterestRate,
		func(ctx context.Context) (models.MetricPair, error) {
			return s.computer.InterestRate(ctx), nil
		})
	if err != nil {
		return models.MetricPair{}
	}
	return pair
}

// BarGraph returns the regional price bars, cached for an hour.
func (s *Service) BarGraph(ctx context.Context) (models.BarGraph, cache.Source, error) {
	return cache.Through(ctx, s.cache, KeyBarGraph, TTLDefault,
		func(ctx context.Context) (models.BarGraph, error) {
			return s.computer.BarGraph(ctx), nil
		})
}

// LinearGraph returns the historical+predicted series, cached for an hour.
func (s *Service) LinearGraph(ctx context.Context) (models.LinearGraph, cache.Source, error) {
	return cache.Through(ctx, s.cache, KeyLinearGraph, TTLDefault,
		func(ctx context.Context) (models.LinearGraph, error) {
			return s.computer.LinearGraph(ctx), nil
		})
}

// Comparison returns the per-region day-over-day diffs, cached for an hour.
func (s *Service) Comparison(ctx context.Context) ([]models.RegionComparison, cache.Source, error) {
	return cache.Through(ctx, s.cache, KeyComparison, TTLDefault,
		func(ctx context.Context) ([]models.RegionComparison, error) {
			return s.computer.Comparison(ctx), nil
		})
}

// NationalAverage returns today's national prices and the 7v7 window
// delta, cached for an hour.
func (s *Service) NationalAverage(ctx context.Context) (models.NationalAverage, cache.Source, error) {
	return cache.Through(ctx, s.cache, KeyNationalAverage, TTLDefault,
		func(ctx context.Context) (models.NationalAverage, error) {
			return s.computer.NationalAverage(ctx), nil
		})
}

// BuildDashboard fans out the five top-level computers concurrently and
// joins their results. A gap in one widget never blocks or corrupts the
// others; each arrives zero-filled on its own.
func (s *Service) BuildDashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		d.NavInfo, _, _ = s.NavInfo(ctx)
	}()
	go func() {
		defer wg.Done()
		d.BarGraph, _, _ = s.BarGraph(ctx)
	}()
	go func() {
		defer wg.Done()
		d.LinearGraph, _, _ = s.LinearGraph(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Comparison, _, _ = s.Comparison(ctx)
	}()
	go func() {
		defer wg.Done()
		d.NationalAverage, _, _ = s.NationalAverage(ctx)
	}()
	wg.Wait()
	return &d, ctx.Err()
}

// RefreshAll recomputes every widget and writes the results to the cache
// in one pass, overwriting whatever is there. Used by the scheduled
// refresh; requests keep hitting the old entries until each key is
// rewritten. Returns the refreshed keys.
func (s *Service) RefreshAll(ctx context.Context) ([]string, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("cache disabled, nothing to refresh")
	}

	var ni models.NavInfo
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		ni.ExchangeRate = s.computer.ExchangeRate(ctx)
	}()
	go func() {
		defer wg.Done()
		ni.OilPrice = s.computer.OilPrice(ctx)
	}()
	go func() {
		defer wg.Done()
		ni.InterestRate = s.computer.InterestRate(ctx)
	}()
	go func() {
		defer wg.Done()
		ni.GDP = s.computer.GDP(ctx)
	}()
	wg.Wait()

	entries := []struct {
		key   string
		ttl   time.Duration
		value any
	}{
		{KeyInterestRate, TTLInterestRate, ni.InterestRate},
		{KeyNavInfo, TTLDefault, ni},
		{KeyBarGraph, TTLDefault, s.computer.BarGraph(ctx)},
		{KeyLinearGraph, TTLDefault, s.computer.LinearGraph(ctx)},
		{KeyComparison, TTLDefault, s.computer.Comparison(ctx)},
		{KeyNationalAverage, TTLDefault, s.computer.NationalAverage(ctx)},
	}

	var refreshed []string
	for _, e := range entries {
		raw, err := json.Marshal(e.value)
		if err != nil {
			return refreshed, fmt.Errorf("failed to marshal %s: %w", e.key, err)
		}
		if err := s.cache.Set(ctx, e.key, string(raw), e.ttl); err != nil {
			return refreshed, fmt.Errorf("failed to cache %s: %w", e.key, err)
		}
		refreshed = append(refreshed, e.key)
	}
	return refreshed, nil
}
