package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

var dateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// WritePNG renders the graph locally as a PNG file. This backs the CLI
// debugging path; chat-triggered renders go through the Dispatcher.
func WritePNG(g Graph, path string) error {
	if len(g.XAxis) == 0 || len(g.XAxis) != len(g.YAxis) {
		return errors.New("graph has no renderable data points")
	}

	series, timeAxis := buildSeries(g)

	graph := chart.Chart{
		Title:  g.Title,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name: g.XLabel,
		},
		YAxis: chart.YAxis{
			Name: g.YLabel,
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		Series: []chart.Series{series},
	}
	if timeAxis {
		graph.XAxis.ValueFormatter = chart.TimeDateValueFormatter
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

// buildSeries prefers a time axis; when any date fails to parse it falls
// back to a plain index axis so the chart still renders.
func buildSeries(g Graph) (chart.Series, bool) {
	times := make([]time.Time, 0, len(g.XAxis))
	for _, date := range g.XAxis {
		t, err := parseDate(date)
		if err != nil {
			xs := make([]float64, len(g.YAxis))
			for i := range xs {
				xs[i] = float64(i)
			}
			return chart.ContinuousSeries{Name: g.Title, XValues: xs, YValues: g.YAxis}, false
		}
		times = append(times, t)
	}
	return chart.TimeSeries{Name: g.Title, XValues: times, YValues: g.YAxis}, true
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", v)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
