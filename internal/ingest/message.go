package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ratewatch/internal/domain"
)

const chartCaption = "📊 30-day trend"

// ComposeMessage builds the notification text for one quotation date: a
// header line carrying the date and one line per currency. The delta is
// strictly day over day: when no rate exists for the previous calendar day
// (weekend, holiday) the line carries no delta at all rather than comparing
// against an older quotation.
func ComposeMessage(date string, codes []string, history domain.History) string {
	lines := make([]string, 0, len(codes)+1)
	lines = append(lines, fmt.Sprintf("💱 Official rates for %s:", date))

	prev := domain.PrevDay(date)
	for _, code := range codes {
		series := history[code]
		rate, ok := series[date]
		if !ok {
			continue
		}
		prevRate, hasPrev := series[prev]
		if !hasPrev {
			lines = append(lines, fmt.Sprintf("%s: %s", code, formatRate(rate)))
			continue
		}
		delta := rate - prevRate
		glyph := "🔺"
		if delta < 0 {
			glyph = "🔻"
		}
		lines = append(lines, fmt.Sprintf("%s: %s (%s%.4f)", code, formatRate(rate), glyph, math.Abs(delta)))
	}
	return strings.Join(lines, "\n")
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
