package models

import "time"

// MetricPair is a [current value, delta] pair as rendered by the dashboard
// widgets.
type MetricPair [2]float64

// NavInfo is the payload of /nav-info.
type NavInfo struct {
	ExchangeRate MetricPair `json:"exchangeRate"`
	OilPrice     MetricPair `json:"oilPrice"`
	InterestRate MetricPair `json:"interestRate"`
	GDP          MetricPair `json:"gdp"`
}

// BarGraph is the payload of /bar-graph: per-region prices for the three
// non-kerosene fuels, one slot per target region.
type BarGraph struct {
	Diesel          []float64 `json:"diesel"`
	Gasoline        []float64 `json:"gasoline"`
	PremiumGasoline []float64 `json:"premiumGasoline"`
}

// LinearGraph is the payload of /linear-graph: a seven-day historical
// window (h6 oldest .. h0 latest) merged with up to three predicted days.
type LinearGraph map[string]FuelPrices

// FuelComparison is one fuel's [price, delta] pair within a region record.
type FuelComparison [2]float64

// RegionComparison is one region's row in /comparison.
type RegionComparison struct {
	Region          string         `json:"region"`
	Diesel          FuelComparison `json:"diesel"`
	Gasoline        FuelComparison `json:"gasoline"`
	PremiumGasoline FuelComparison `json:"premiumGasoline"`
	Kerosene        FuelComparison `json:"kerosene"`
}

// NationalAverage is the payload of /national-average: the 7v7 rolling
// average delta followed by today's four national fuel prices.
type NationalAverage [2][]float64

// Dashboard is the composite payload assembled by the full refresh.
type Dashboard struct {
	NavInfo         NavInfo            `json:"navInfo"`
	BarGraph        BarGraph           `json:"barGraph"`
	LinearGraph     LinearGraph        `json:"linearGraph"`
	Comparison      []RegionComparison `json:"comparison"`
	NationalAverage NationalAverage    `json:"nationalAverage"`
}

// RefreshEvent is the Kafka event published when the scheduled job
// finishes repopulating the cache.
type RefreshEvent struct {
	EventType string    `json:"event_type"`
	Keys      []string  `json:"keys"`
	Duration  string    `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}
