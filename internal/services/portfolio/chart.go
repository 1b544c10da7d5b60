package portfolio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/devnarayan/folio/internal/models"
)

// RenderPerformanceChart renders a PNG line chart of portfolio value over
// time from the dashboard performance series. Returns raw PNG bytes.
func RenderPerformanceChart(title string, points []models.PerformancePoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("bad date %q at point %d: %w", p.Date, i, err)
		}
		xValues[i] = date
		yValues[i] = p.Value
	}

	valueSeries := chart.TimeSeries{
		Name: "Portfolio Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{valueSeries},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// allocationPalette cycles through the wedge colors in slice order.
var allocationPalette = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("d97706"), // amber-600
	drawing.ColorFromHex("dc2626"), // red-600
}

// RenderAllocationChart renders a PNG donut chart of a portfolio's
// allocation by investment type. Returns raw PNG bytes.
func RenderAllocationChart(title string, slices []models.AllocationSlice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("no allocation data")
	}

	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Type, s.Percentage),
			Value: s.Value,
			Style: chart.Style{
				FillColor: allocationPalette[i%len(allocationPalette)],
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no allocation data")
	}

	graph := chart.DonutChart{
		Title:  title,
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
