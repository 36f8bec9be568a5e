package compare

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/stockcompare/internal/models"
)

// RenderComparisonChart renders a PNG line chart of the two date-aligned
// close series in the report currency. Two series: ticker1 (blue solid)
// and ticker2 (coral solid). Returns raw PNG bytes.
func RenderComparisonChart(report *models.ComparisonReport) ([]byte, error) {
	points := report.Merged
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	conv := report.Multiplier
	xValues := make([]time.Time, len(points))
	y1 := make([]float64, len(points))
	y2 := make([]float64, len(points))

	for i, p := range points {
		xValues[i] = p.Date
		y1[i] = p.Close1 * conv
		y2[i] = p.Close2 * conv
	}

	series1 := chart.TimeSeries{
		Name: report.Ticker1.Ticker,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("00bfff"), // deep sky blue
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: y1,
	}

	series2 := chart.TimeSeries{
		Name: report.Ticker2.Ticker,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("ff7f50"), // coral
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: y2,
	}

	graph := chart.Chart{
		Title:  "Stock Price Comparison",
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
					return fmt.Sprintf("%.2f %s", f, report.Currency)
				}
				return ""
			},
		},
		Series: []chart.Series{
			series1,
			series2,
		},
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
