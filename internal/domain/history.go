package domain

import (
	"maps"
	"slices"
	"time"
)

// DateLayout is the ISO calendar date format used as the series key.
const DateLayout = "2006-01-02"

// Series maps an ISO calendar date to the official rate quoted for that date.
// Dates need not be contiguous: non-trading days simply have no entry.
type Series map[string]float64

// History maps a currency code to its per-date rate series.
type History map[string]Series

// Point is one (date, rate) pair of a chart window.
type Point struct {
	Date string
	Rate float64
}

// SortedDates returns the series dates in ascending order.
func (s Series) SortedDates() []string {
	dates := slices.Collect(maps.Keys(s))
	slices.Sort(dates)
	return dates
}

// LatestDate returns the maximum date present across all series.
func (h History) LatestDate() (string, bool) {
	var latest string
	for _, series := range h {
		for date := range series {
			if date > latest {
				latest = date
			}
		}
	}
	return latest, latest != ""
}

// HasAll reports whether every given code has a rate recorded for date.
func (h History) HasAll(date string, codes []string) bool {
	if len(codes) == 0 {
		return false
	}
	for _, code := range codes {
		if _, ok := h[code][date]; !ok {
			return false
		}
	}
	return true
}

// Append records rates under date for every code in rates. Entries that are
// already present keep their first recorded value: a stored (code, date) pair
// is never rewritten.
func (h History) Append(date string, rates map[string]float64) {
	for code, rate := range rates {
		series, ok := h[code]
		if !ok {
			series = Series{}
			h[code] = series
		}
		if _, exists := series[date]; exists {
			continue
		}
		series[date] = rate
	}
}

// NextDay returns the ISO date one calendar day after date.
func NextDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}

// PrevDay returns the ISO date one calendar day before date.
func PrevDay(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}
