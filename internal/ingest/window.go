package ingest

import "ratewatch/internal/domain"

// TrailingWindow selects the chart window of a series: all dates ascending,
// truncated to the most recent n. No smoothing or gap-filling happens here;
// missing dates are simply absent points.
func TrailingWindow(series domain.Series, n int) []domain.Point {
	dates := series.SortedDates()
	if n > 0 && len(dates) > n {
		dates = dates[len(dates)-n:]
	}

	points := make([]domain.Point, 0, len(dates))
	for _, date := range dates {
		points = append(points, domain.Point{Date: date, Rate: series[date]})
	}
	return points
}
