package metrics

import (
	"context"

	"oil-dashboard/internal/models"
	"oil-dashboard/internal/resolver"
)

// ComparisonRegions is the fixed region order of the comparison widget:
// the nationwide aggregate, the seven metropolitan cities, and the eight
// provinces.
var ComparisonRegions = []string{
	"National", "Seoul", "Busan", "Daegu", "Incheon", "Gwangju",
	"Daejeon", "Ulsan", "Gyeonggi", "Gangwon", "Chungbuk", "Chungnam",
	"Jeonbuk", "Jeonnam", "Gyeongbuk", "Gyeongnam",
}

// Comparison diffs all four fuel prices between the latest valid day and
// the valid day before it, per region. A region missing on either side
// yields an all-zero record for that region.
func (c *Computer) Comparison(ctx context.Context) []models.RegionComparison {
	out := emptyComparison()

	today, err := c.resolver.FindNearestValid(ctx, c.latestDate(), resolver.MaxDaysBack)
	if err != nil {
		return out
	}
	yesterday, err := c.resolver.FindNearestValid(ctx, today.Date.AddDate(0, 0, -1), resolver.MaxDaysBack)
	if err != nil {
		return out
	}

	for i, region := range ComparisonRegions {
		curIdx := today.Doc.RegionIndex(region)
		prevIdx := yesterday.Doc.RegionIndex(region)
		if curIdx < 0 || prevIdx < 0 {
			c.logger.Warn("region missing from comparison", "region", region,
				"today", today.Key, "yesterday", yesterday.Key)
			continue
		}
		cur := today.Doc.FuelPricesAt(curIdx)
		prev := yesterday.Doc.FuelPricesAt(prevIdx)
		out[i] = models.RegionComparison{
			Region:          region,
			Diesel:          models.FuelComparison{cur.Diesel, round2(cur.Diesel - prev.Diesel)},
			Gasoline:        models.FuelComparison{cur.Gasoline, round2(cur.Gasoline - prev.Gasoline)},
			PremiumGasoline: models.FuelComparison{cur.PremiumGasoline, round2(cur.PremiumGasoline - prev.PremiumGasoline)},
			Kerosene:        models.FuelComparison{cur.Kerosene, round2(cur.Kerosene - prev.Kerosene)},
		}
	}
	return out
}

func emptyComparison() []models.RegionComparison {
	out := make([]models.RegionComparison, len(ComparisonRegions))
	for i, region := range ComparisonRegions {
		out[i] = models.RegionComparison{Region: region}
	}
	return out
}
