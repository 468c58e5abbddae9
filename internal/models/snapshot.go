package models

import (
	"strconv"
	"time"
)

// Snapshot is one day's published market document. Every field is optional:
// the ingestion side only writes what it scraped that day, so absence is an
// expected state, not an error.
type Snapshot struct {
	KRWRate         float64  `bson:"KRW_Rating" json:"krwRate"`
	DubaiVal        float64  `bson:"Dubai_Val" json:"dubaiVal"`
	BrentVal        float64  `bson:"Brent_Val" json:"brentVal"`
	WTIVal          float64  `bson:"WTI_Val" json:"wtiVal"`
	InterestRate    *float64 `bson:"interest_rate,omitempty" json:"interestRate,omitempty"`
	GDP             *float64 `bson:"gdp,omitempty" json:"gdp,omitempty"`
	GDPQuarter      string   `bson:"gdpQuarter,omitempty" json:"gdpQuarter,omitempty"`
	Regions         []string `bson:"area,omitempty" json:"regions,omitempty"`
	Diesel          []string `bson:"diesel,omitempty" json:"diesel,omitempty"`
	Gasoline        []string `bson:"gasoline,omitempty" json:"gasoline,omitempty"`
	PremiumGasoline []string `bson:"premiumGasoline,omitempty" json:"premiumGasoline,omitempty"`
	Kerosene        []string `bson:"kerosene,omitempty" json:"kerosene,omitempty"`
}

// RegionIndex locates a region by value-equality scan. Region sets vary per
// day, so position is never derived arithmetically. Returns -1 when absent.
func (s *Snapshot) RegionIndex(region string) int {
	for i, r := range s.Regions {
		if r == region {
			return i
		}
	}
	return -1
}

// FuelPrices holds one day's prices for the four fuel kinds.
type FuelPrices struct {
	Diesel          float64 `json:"diesel"`
	Gasoline        float64 `json:"gasoline"`
	PremiumGasoline float64 `json:"premiumGasoline"`
	Kerosene        float64 `json:"kerosene"`
}

// FuelPricesAt extracts all four fuel prices for the region at index i.
// Out-of-range or malformed entries come back as 0.
func (s *Snapshot) FuelPricesAt(i int) FuelPrices {
	return FuelPrices{
		Diesel:          PriceAt(s.Diesel, i),
		Gasoline:        PriceAt(s.Gasoline, i),
		PremiumGasoline: PriceAt(s.PremiumGasoline, i),
		Kerosene:        PriceAt(s.Kerosene, i),
	}
}

// PriceAt parses the numeric-text price at index i, falling back to 0 for
// missing entries and malformed input. This is the single place where the
// store's stringly-typed prices become numbers.
func PriceAt(values []string, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	v, err := strconv.ParseFloat(values[i], 64)
	if err != nil {
		return 0
	}
	return v
}

// PredictionDay is one forecast offset within a prediction document. Only
// the national (first) position of each sequence is consumed.
type PredictionDay struct {
	Diesel          []string `bson:"diesel" json:"diesel"`
	Gasoline        []string `bson:"gasoline" json:"gasoline"`
	PremiumGasoline []string `bson:"premiumGasoline" json:"premiumGasoline"`
	Kerosene        []string `bson:"kerosene" json:"kerosene"`
}

// National returns the national-position fuel prices of the forecast day.
func (p *PredictionDay) National() FuelPrices {
	return FuelPrices{
		Diesel:          PriceAt(p.Diesel, 0),
		Gasoline:        PriceAt(p.Gasoline, 0),
		PremiumGasoline: PriceAt(p.PremiumGasoline, 0),
		Kerosene:        PriceAt(p.Kerosene, 0),
	}
}

// PredictionSnapshot is one day's forecast document: offsets p0..p6 from
// the prediction's anchor day.
type PredictionSnapshot struct {
	P0 *PredictionDay `bson:"p0,omitempty" json:"p0,omitempty"`
	P1 *PredictionDay `bson:"p1,omitempty" json:"p1,omitempty"`
	P2 *PredictionDay `bson:"p2,omitempty" json:"p2,omitempty"`
	P3 *PredictionDay `bson:"p3,omitempty" json:"p3,omitempty"`
	P4 *PredictionDay `bson:"p4,omitempty" json:"p4,omitempty"`
	P5 *PredictionDay `bson:"p5,omitempty" json:"p5,omitempty"`
	P6 *PredictionDay `bson:"p6,omitempty" json:"p6,omitempty"`
}

// Offset returns the forecast day n offsets from the anchor, nil when n is
// outside p0..p6 or the sub-document is missing.
func (p *PredictionSnapshot) Offset(n int) *PredictionDay {
	switch n {
	case 0:
		return p.P0
	case 1:
		return p.P1
	case 2:
		return p.P2
	case 3:
		return p.P3
	case 4:
		return p.P4
	case 5:
		return p.P5
	case 6:
		return p.P6
	}
	return nil
}

// ResolvedSnapshot is the ephemeral result of resolution: the day the
// search landed on, its collection key, and the fetched document. Never
// persisted; rebuilt per request or per cache-population cycle.
type ResolvedSnapshot struct {
	Date time.Time
	Key  string
	Doc  *Snapshot
}
