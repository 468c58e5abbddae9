package metrics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oil-dashboard/internal/dates"
	"oil-dashboard/internal/models"
	"oil-dashboard/internal/store"
)

func TestNationalAverage(t *testing.T) {
	ctx := context.Background()

	t.Run("today's prices and 7v7 window delta", func(t *testing.T) {
		s := store.NewMemoryStore()
		latest := time.Date(2024, 3, 14, 0, 0, 0, 0, dates.KST)
		// Recent week: every three-fuel average is 1700.
		for i := 0; i < 7; i++ {
			s.PutSnapshot(dates.FormatKey(latest.AddDate(0, 0, -i)), &models.Snapshot{
				Regions:         []string{"National"},
				Diesel:          []string{"1500"},
				Gasoline:        []string{"1700"},
				PremiumGasoline: []string{"1900"},
				Kerosene:        []string{"1000"},
			})
		}
		// Previous week: every three-fuel average is 1690.
		for i := 7; i < 14; i++ {
			s.PutSnapshot(dates.FormatKey(latest.AddDate(0, 0, -i)), &models.Snapshot{
				Regions:         []string{"National"},
				Diesel:          []string{"1490"},
				Gasoline:        []string{"1690"},
				PremiumGasoline: []string{"1890"},
				Kerosene:        []string{"990"},
			})
		}
		c := newTestComputer(s)

		got := c.NationalAverage(ctx)
		require.Len(t, got[0], 1)
		assert.Equal(t, 10.0, got[0][0])
		assert.Equal(t, []float64{1500, 1700, 1900, 1000}, got[1])
	})

	t.Run("gap days are skipped, not zero-filled", func(t *testing.T) {
		s := store.NewMemoryStore()
		latest := time.Date(2024, 3, 14, 0, 0, 0, 0, dates.KST)
		// Three fresh days plus one old snapshot that every other offset
		// resolves backward onto.
		for _, i := range []int{0, 1, 2} {
			s.PutSnapshot(dates.FormatKey(latest.AddDate(0, 0, -i)), &models.Snapshot{
				Regions:         []string{"National"},
				Diesel:          []string{"1500"},
				Gasoline:        []string{"1700"},
				PremiumGasoline: []string{"1900"},
				Kerosene:        []string{"1000"},
			})
		}
		s.PutSnapshot(dates.FormatKey(latest.AddDate(0, 0, -20)), &models.Snapshot{
			Regions:         []string{"National"},
			Diesel:          []string{"1400"},
			Gasoline:        []string{"1600"},
			PremiumGasoline: []string{"1800"},
			Kerosene:        []string{"900"},
		})
		c := newTestComputer(s)

		got := c.NationalAverage(ctx)
		// Recent window: offsets 0-2 hit the fresh days (avg 1700); offsets
		// 3-6 fall back to the -20 snapshot (avg 1600): (3*1700+4*1600)/7.
		// Previous window: all seven offsets fall back to the -20 snapshot.
		recent := (3*1700.0 + 4*1600.0) / 7
		assert.InDelta(t, recent-1600.0, got[0][0], 0.005)
	})

	t.Run("national position located by value not index", func(t *testing.T) {
		s := store.NewMemoryStore()
		s.PutSnapshot("Date_2024_03_14", &models.Snapshot{
			Regions:         []string{"Seoul", "National"},
			Diesel:          []string{"1600", "1500"},
			Gasoline:        []string{"1800", "1700"},
			PremiumGasoline: []string{"2000", "1900"},
			Kerosene:        []string{"1100", "1000"},
		})
		c := newTestComputer(s)

		got := c.NationalAverage(ctx)
		assert.Equal(t, []float64{1500, 1700, 1900, 1000}, got[1])
	})

	t.Run("no data yields the fixed empty shape", func(t *testing.T) {
		c := newTestComputer(store.NewMemoryStore())
		got := c.NationalAverage(ctx)
		assert.Equal(t, models.NationalAverage{{0}, {0, 0, 0, 0}}, got)
	})
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{100.5, 100.5},
		{100.005, 100.01}, // half rounds away from zero
		{-100.005, -100.01},
		{1.004999, 1.0},
		{0, 0},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc.in), func(t *testing.T) {
			assert.Equal(t, tc.want, round2(tc.in))
		})
	}
}
