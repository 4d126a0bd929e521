package chart

import (
	"bytes"
	"fmt"
	"time"

	"ratewatch/internal/domain"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Renderer draws a PNG line chart of a rate window. Gaps in the series stay
// gaps: each stored date becomes one point, nothing is interpolated.
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 800, Height: 400}
}

func (r *Renderer) Render(points []domain.Point, label string) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("chart: need at least 2 points for %q, got %d", label, len(points))
	}

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		ts, err := time.Parse(domain.DateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("chart: malformed date %q for %q: %w", p.Date, label, err)
		}
		xs = append(xs, ts)
		ys = append(ys, p.Rate)
	}

	graph := gochart.Chart{
		Title:  label,
		Width:  r.Width,
		Height: r.Height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    label,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: 2.0,
					DotWidth:    3.0,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart: failed to render %q: %w", label, err)
	}
	return buf.Bytes(), nil
}
