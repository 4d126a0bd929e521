package ingest

import (
	"testing"
	"time"

	"ratewatch/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTrailingWindow_SortedAscending(t *testing.T) {
	series := domain.Series{
		"2026-08-21": 2.93,
		"2026-08-19": 2.91,
		"2026-08-20": 2.92,
	}

	points := TrailingWindow(series, 30)

	require.Equal(t, []domain.Point{
		{Date: "2026-08-19", Rate: 2.91},
		{Date: "2026-08-20", Rate: 2.92},
		{Date: "2026-08-21", Rate: 2.93},
	}, points)
}

func TestTrailingWindow_TruncatesToMostRecent(t *testing.T) {
	series := domain.Series{}
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 35; i++ {
		series[start.AddDate(0, 0, i).Format(domain.DateLayout)] = float64(i)
	}

	points := TrailingWindow(series, 30)

	require.Len(t, points, 30)
	// The 5 oldest entries fall off.
	require.Equal(t, "2026-07-06", points[0].Date)
	require.Equal(t, "2026-08-04", points[len(points)-1].Date)
}

func TestTrailingWindow_GapsStayGaps(t *testing.T) {
	series := domain.Series{
		"2026-08-21": 2.90, // Friday
		"2026-08-24": 2.95, // Monday
	}

	points := TrailingWindow(series, 30)

	require.Len(t, points, 2)
	require.Equal(t, "2026-08-21", points[0].Date)
	require.Equal(t, "2026-08-24", points[1].Date)
}

func TestTrailingWindow_Empty(t *testing.T) {
	require.Empty(t, TrailingWindow(domain.Series{}, 30))
	require.Empty(t, TrailingWindow(nil, 30))
}

func TestTrailingWindow_NonPositiveLimitKeepsAll(t *testing.T) {
	series := domain.Series{"2026-08-20": 2.92, "2026-08-21": 2.93}

	points := TrailingWindow(series, 0)

	require.Len(t, points, 2)
}
