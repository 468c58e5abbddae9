package metrics

import (
	"context"

	"oil-dashboard/internal/models"
	"oil-dashboard/internal/resolver"
)

// BarRegions is the fixed region order of the bar graph widget.
var BarRegions = []string{
	"National", "Seoul", "Gyeonggi", "Gangwon", "Gyeongnam",
	"Gyeongbuk", "Chungnam", "Chungbuk", "Busan",
}

// BarGraph extracts the three non-kerosene fuel prices for each target
// region from the latest valid snapshot. Regions absent from the day's
// document stay zero and are logged as gaps.
func (c *Computer) BarGraph(ctx context.Context) models.BarGraph {
	out := emptyBarGraph()

	latest, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return out
	}
	doc := latest.Doc
	if len(doc.Regions) == 0 {
		return out
	}

	for i, region := range BarRegions {
		idx := doc.RegionIndex(region)
		if idx < 0 {
			c.logger.Warn("region missing from snapshot", "region", region, "key", latest.Key)
			continue
		}
		out.Diesel[i] = models.PriceAt(doc.Diesel, idx)
		out.Gasoline[i] = models.PriceAt(doc.Gasoline, idx)
		out.PremiumGasoline[i] = models.PriceAt(doc.PremiumGasoline, idx)
	}
	return out
}

func emptyBarGraph() models.BarGraph {
	n := len(BarRegions)
	return models.BarGraph{
		Diesel:          make([]float64, n),
		Gasoline:        make([]float64, n),
		PremiumGasoline: make([]float64, n),
	}
}
