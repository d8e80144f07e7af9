package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"coinlens/internal/analytics"
	"coinlens/internal/chart"
	"coinlens/internal/dataset"
	"coinlens/internal/rawexport"
)

var changeLabels = map[string]string{
	"percent_change_7d":  "7 days",
	"percent_change_24h": "24 hours",
	"percent_change_1h":  "1 hour",
}

var columnAliases = map[string]string{
	"7d":  "percent_change_7d",
	"24h": "percent_change_24h",
	"1h":  "percent_change_1h",
}

// Chart renders one visualization of an export and returns the PNG path.
func (a *App) Chart(ctx context.Context, opts ChartOptions) (string, error) {
	table, err := a.raw.Load(opts.File)
	if err != nil {
		return "", err
	}

	stamp := time.Now().Format(rawexport.FileTimestampLayout)
	dir := a.Config.Paths.Visualizations

	var path string
	var render func(io.Writer) error

	switch strings.ToLower(opts.Kind) {
	case "bar":
		column, ok := columnAliases[opts.Column]
		if !ok {
			column = opts.Column
		}
		label, ok := changeLabels[column]
		if !ok {
			return "", fmt.Errorf("unknown change column %q (use 1h, 24h or 7d)", opts.Column)
		}
		bars := barsFor(table, column)
		path = filepath.Join(dir, fmt.Sprintf("Graph_Changes_%s_%s.png", column, stamp))
		render = func(w io.Writer) error {
			return chart.Bars(w, fmt.Sprintf("Change %% in %s for Each Coin", label), fmt.Sprintf("Change %% in %s", label), bars, a.chartOptions())
		}

	case "regression":
		xs, ys := analytics.RegressionPoints(table)
		fit, err := analytics.FitLine(xs, ys)
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, fmt.Sprintf("Graph_Regression_%s.png", stamp))
		render = func(w io.Writer) error {
			return chart.Scatter(w, "7d change (%)", "Price (USD)", xs, ys, fit.Slope, fit.Intercept, a.chartOptions())
		}

	case "trend":
		if opts.Coin == "" {
			return "", errors.New("--coin is required for the trend chart")
		}
		res, err := analytics.Trend(table, opts.Coin)
		if err != nil {
			return "", err
		}
		row, _ := dataset.Find(table, opts.Coin)
		changes := row.Changes()
		ys := []float64{changes[0].Float64, changes[1].Float64, changes[2].Float64}
		path = filepath.Join(dir, fmt.Sprintf("Graph_Trend_%s_%s.png", safeFileName(opts.Coin), stamp))
		render = func(w io.Writer) error {
			return chart.Trend(w, opts.Coin, analytics.TrendX[:], ys, res.RawSlope, a.chartOptions())
		}

	default:
		return "", fmt.Errorf("unknown chart kind %q (use bar, regression or trend)", opts.Kind)
	}

	if err := chart.WriteFile(path, render); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	a.Logger.Info().Str("path", path).Str("kind", opts.Kind).Msg("visualization saved")
	fmt.Fprintf(a.Out, "Visualization saved to: %s\n", path)
	return path, nil
}

func barsFor(table dataset.Table, column string) []chart.Bar {
	bars := make([]chart.Bar, 0, table.Len())
	for _, row := range table.Rows() {
		v, _ := row.Numeric(column)
		if !v.Valid {
			continue
		}
		bars = append(bars, chart.Bar{Label: row.Name(), Value: v.Float64})
	}
	return bars
}

func safeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
