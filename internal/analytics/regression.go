package analytics

import (
	"fmt"

	"coinlens/internal/dataset"
)

// RegressionResult is an ordinary least squares fit of price_usd on percent_change_7d over
// the whole table, evaluated at the selected asset.
type RegressionResult struct {
	Coin           string
	Coefficient    float64
	Intercept      float64
	RSquared       float64
	PredictedPrice float64
	ActualPrice    dataset.Float
	Samples        int

	raw Fit
}

func (r RegressionResult) Kind() Kind { return KindRegression }

// Line returns the unrounded fitted line.
func (r RegressionResult) Line() Fit { return r.raw }

func (r RegressionResult) Record() map[string]any {
	var actual any
	if r.ActualPrice.Valid {
		actual = r.ActualPrice.Float64
	}
	return map[string]any{
		"analysis_type":   string(KindRegression),
		"coin":            r.Coin,
		"coefficient":     r.Coefficient,
		"intercept":       r.Intercept,
		"r_squared":       r.RSquared,
		"predicted_price": r.PredictedPrice,
		"actual_price":    actual,
		"samples":         r.Samples,
	}
}

func (r RegressionResult) Message() string {
	return fmt.Sprintf("Linear Regression for %s: predicted price $%.2f (R²: %.4f, coefficient: %.4f)",
		r.Coin, r.raw.Predict(r.raw.at), r.raw.RSquared, r.raw.Slope)
}

// Fit is a closed-form single variable least squares line.
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	Samples   int

	at float64
}

// Predict evaluates the line at x.
func (f Fit) Predict(x float64) float64 {
	return float64(f.Slope*x) + f.Intercept
}

// FitLine fits y = a·x + b and scores it against the same points.
func FitLine(xs, ys []float64) (Fit, error) {
	n := len(xs)
	if n != len(ys) {
		return Fit{}, fmt.Errorf("fit line: %d x values, %d y values", n, len(ys))
	}
	if n < 2 {
		return Fit{}, fmt.Errorf("%w: %d usable rows", ErrDegenerateFit, n)
	}

	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - mx
		sxy += float64(dx * (ys[i] - my))
		sxx += float64(dx * dx)
	}
	if sxx == 0 {
		return Fit{}, fmt.Errorf("%w: zero variance in percent_change_7d", ErrDegenerateFit)
	}

	fit := Fit{Slope: sxy / sxx, Samples: n}
	fit.Intercept = my - float64(fit.Slope*mx)

	var ssRes, ssTot float64
	for i := range xs {
		res := ys[i] - fit.Predict(xs[i])
		dev := ys[i] - my
		ssRes += float64(res * res)
		ssTot += float64(dev * dev)
	}
	switch {
	case ssTot != 0:
		fit.RSquared = 1 - ssRes/ssTot
	case ssRes == 0:
		fit.RSquared = 1
	default:
		fit.RSquared = 0
	}

	if err := finite(fit.Slope, fit.Intercept, fit.RSquared); err != nil {
		return Fit{}, err
	}
	return fit, nil
}

// RegressionPoints returns the (7d change, price) pairs of rows where both are present.
func RegressionPoints(t dataset.Table) (xs, ys []float64) {
	for _, row := range t.Rows() {
		if !row.PercentChange7d.Valid || !row.PriceUSD.Valid {
			continue
		}
		xs = append(xs, row.PercentChange7d.Float64)
		ys = append(ys, row.PriceUSD.Float64)
	}
	return xs, ys
}

// LinearRegression fits the whole table and predicts the selected asset's price from its own
// 7d change. Lookup happens before any fitting.
func LinearRegression(t dataset.Table, coin string) (RegressionResult, error) {
	row, err := dataset.Find(t, coin)
	if err != nil {
		return RegressionResult{}, err
	}
	if !row.PercentChange7d.Valid {
		return RegressionResult{}, fmt.Errorf("%w: %s has no percent_change_7d", ErrMissingValue, coin)
	}

	fit, err := FitLine(RegressionPoints(t))
	if err != nil {
		return RegressionResult{}, fmt.Errorf("regression for %s: %w", coin, err)
	}
	fit.at = row.PercentChange7d.Float64

	predicted := fit.Predict(fit.at)
	if err := finite(predicted); err != nil {
		return RegressionResult{}, fmt.Errorf("regression for %s: %w", coin, err)
	}

	return RegressionResult{
		Coin:           coin,
		Coefficient:    round4(fit.Slope),
		Intercept:      round4(fit.Intercept),
		RSquared:       round4(fit.RSquared),
		PredictedPrice: round4(predicted),
		ActualPrice:    row.PriceUSD,
		Samples:        fit.Samples,
		raw:            fit,
	}, nil
}
