// Package dates implements the calendar rules shared by the resolver and
// the metric computers. Everything is computed on Korean wall-clock time:
// the ingestion side publishes one document per Korean calendar day, so
// "which day is freshest" must not depend on the host timezone.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KST is the fixed UTC+9 offset used for all date arithmetic.
var KST = time.FixedZone("KST", 9*60*60)

// KoreanNow returns the current wall-clock time shifted to UTC+9.
func KoreanNow() time.Time {
	return time.Now().In(KST)
}

// LatestDataDate returns the freshest published day. The ingestion job
// writes yesterday's figures each morning, so "today" never has data and
// the latest day is always Korean now minus one day.
func LatestDataDate() time.Time {
	return KoreanNow().AddDate(0, 0, -1)
}

// FormatKey renders a date as its snapshot collection key, Date_YYYY_MM_DD.
func FormatKey(date time.Time) string {
	return fmt.Sprintf("Date_%04d_%02d_%02d", date.Year(), int(date.Month()), date.Day())
}

// FormatPredictKey renders a date as its prediction collection key,
// Predict_YYYY_MM_DD.
func FormatPredictKey(date time.Time) string {
	return fmt.Sprintf("Predict_%04d_%02d_%02d", date.Year(), int(date.Month()), date.Day())
}

// ParsePredictKey recovers the anchor date of a Predict_YYYY_MM_DD key.
// The prefix is matched case-insensitively because key casing has drifted
// at the source before.
func ParsePredictKey(key string) (time.Time, error) {
	if len(key) != len("Predict_2006_01_02") || !strings.EqualFold(key[:8], "Predict_") {
		return time.Time{}, fmt.Errorf("invalid prediction key %q", key)
	}
	t, err := time.ParseInLocation("2006_01_02", key[8:], KST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid prediction key %q", key)
	}
	return t, nil
}

// DaysBetween counts whole calendar days from a to b on the Korean
// calendar, ignoring the time of day.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, KST)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, KST)
	return int(b.Sub(a).Hours() / 24)
}

// QuarterMidpoint maps a YYYYQQ quarter code to the 15th of its middle
// month (Feb/May/Aug/Nov). Malformed codes return an error rather than a
// guessed date.
func QuarterMidpoint(yearQuarter string) (time.Time, error) {
	if len(yearQuarter) != 6 {
		return time.Time{}, fmt.Errorf("invalid quarter code %q", yearQuarter)
	}
	year, err := strconv.Atoi(yearQuarter[:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid quarter code %q", yearQuarter)
	}
	quarter, err := strconv.Atoi(yearQuarter[4:])
	if err != nil || quarter < 1 || quarter > 4 {
		return time.Time{}, fmt.Errorf("invalid quarter code %q", yearQuarter)
	}
	month := time.Month((quarter-1)*3 + 2)
	return time.Date(year, month, 15, 0, 0, 0, 0, KST), nil
}

// PrevQuarter rolls a YYYYQQ quarter code back by one quarter: Q1 maps to
// the prior year's Q4, everything else to Q-1 of the same year.
func PrevQuarter(yearQuarter string) (string, error) {
	if len(yearQuarter) != 6 {
		return "", fmt.Errorf("invalid quarter code %q", yearQuarter)
	}
	year, err := strconv.Atoi(yearQuarter[:4])
	if err != nil {
		return "", fmt.Errorf("invalid quarter code %q", yearQuarter)
	}
	quarter, err := strconv.Atoi(yearQuarter[4:])
	if err != nil || quarter < 1 || quarter > 4 {
		return "", fmt.Errorf("invalid quarter code %q", yearQuarter)
	}
	if quarter == 1 {
		return fmt.Sprintf("%04d04", year-1), nil
	}
	return fmt.Sprintf("%04d%02d", year, quarter-1), nil
}
