// Package chart renders analysis inputs and results as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoPoints is returned when there is nothing to plot.
var ErrNoPoints = errors.New("chart: no points to plot")

// ProjectionHorizon is how far along the trend axis the fitted line is extended.
const ProjectionHorizon = 14.0

// Options set image dimensions.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 720
	}
	return w, h
}

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

// Bars renders one bar per asset.
func Bars(w io.Writer, title, yName string, bars []Bar, opts Options) error {
	if len(bars) == 0 {
		return ErrNoPoints
	}
	width, height := opts.size()

	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		values[i] = chart.Value{Label: b.Label, Value: b.Value}
	}

	graph := chart.BarChart{
		Title:        title,
		Width:        width,
		Height:       height,
		BarWidth:     barWidth(width, len(bars)),
		UseBaseValue: true,
		BaseValue:    0,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Name:           yName,
			ValueFormatter: percentFormatter,
		},
		Bars: values,
	}
	return graph.Render(chart.PNG, w)
}

// Scatter renders points with a fitted line y = slope·x + intercept across their x range.
func Scatter(w io.Writer, xName, yName string, xs, ys []float64, slope, intercept float64, opts Options) error {
	if len(xs) == 0 || len(xs) != len(ys) {
		return ErrNoPoints
	}
	width, height := opts.size()

	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	lineX := []float64{lo, hi}
	lineY := []float64{slope*lo + intercept, slope*hi + intercept}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: xName, ValueFormatter: percentFormatter},
		YAxis:  chart.YAxis{Name: yName, ValueFormatter: priceFormatter},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Assets",
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name:    "Fitted line",
				XValues: lineX,
				YValues: lineY,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// Trend renders observed changes at xs and the least squares line projected to ProjectionHorizon.
func Trend(w io.Writer, coin string, xs, ys []float64, slope float64, opts Options) error {
	if len(xs) == 0 || len(xs) != len(ys) {
		return ErrNoPoints
	}
	width, height := opts.size()

	var sx, sy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
	}
	n := float64(len(xs))
	intercept := (sy - slope*sx) / n

	graph := chart.Chart{
		Title:  fmt.Sprintf("Short-term trend for %s", coin),
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		XAxis: chart.XAxis{Name: "Time axis"},
		YAxis: chart.YAxis{Name: "Change (%)", ValueFormatter: percentFormatter},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Observed (1h, 24h, 7d)",
				Style:   chart.Style{DotWidth: 6},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name:    "Projection",
				Style:   chart.Style{StrokeDashArray: []float64{5, 5}},
				XValues: []float64{0, ProjectionHorizon},
				YValues: []float64{intercept, slope*ProjectionHorizon + intercept},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// WriteFile creates path, including parent directories, and renders into it.
func WriteFile(path string, render func(io.Writer) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

func barWidth(width, n int) int {
	bw := (width - 100) / (n * 2)
	return max(10, min(bw, 80))
}

func percentFormatter(v interface{}) string {
	return chart.FloatValueFormatterWithFormat(v, "%.2f")
}

func priceFormatter(v interface{}) string {
	return chart.FloatValueFormatterWithFormat(v, "%.2f")
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
