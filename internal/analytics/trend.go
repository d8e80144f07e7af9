package analytics

import (
	"fmt"

	"coinlens/internal/dataset"
)

// TrendX are the abscissas paired with the 1h, 24h and 7d changes.
var TrendX = [3]float64{0, 6.85, 7}

// Trend directions.
const (
	TrendDecrease  = "Decrease"
	TrendUncertain = "Uncertain"
	TrendIncrease  = "Increase"
)

// TrendResult is the least squares slope over the three percent changes of one asset.
type TrendResult struct {
	Coin      string
	Slope     float64
	RawSlope  float64
	Direction string
}

func (r TrendResult) Kind() Kind { return KindTrend }

func (r TrendResult) Record() map[string]any {
	return map[string]any{
		"analysis_type": string(KindTrend),
		"coin":          r.Coin,
		"slope":         r.Slope,
		"trend":         r.Direction,
	}
}

func (r TrendResult) Message() string {
	switch r.Direction {
	case TrendDecrease:
		return fmt.Sprintf("Prediction for %s: Expected value to decrease (Slope: %.4f)", r.Coin, r.RawSlope)
	case TrendIncrease:
		return fmt.Sprintf("Prediction for %s: Expected value to increase (Slope: %.4f)", r.Coin, r.RawSlope)
	default:
		return fmt.Sprintf("Prediction for %s: Future trend is uncertain (Slope: %.4f)", r.Coin, r.RawSlope)
	}
}

// Trend fits y=(1h, 24h, 7d) against TrendX and classifies the slope sign.
func Trend(t dataset.Table, coin string) (TrendResult, error) {
	row, err := dataset.Find(t, coin)
	if err != nil {
		return TrendResult{}, err
	}
	y, err := completeChanges(row)
	if err != nil {
		return TrendResult{}, err
	}

	m := LeastSquaresSlope(TrendX, y)
	if err := finite(m); err != nil {
		return TrendResult{}, fmt.Errorf("trend slope for %s: %w", coin, err)
	}

	return TrendResult{
		Coin:      coin,
		Slope:     round4(m),
		RawSlope:  m,
		Direction: classifySlope(m),
	}, nil
}

// LeastSquaresSlope is m = (Σxy − Σx·Σy/n) / (Σx² − (Σx)²/n) over three samples.
// Products are converted explicitly so they are never fused into multiply-adds.
func LeastSquaresSlope(x, y [3]float64) float64 {
	var sx, sy, sxy, sxx float64
	for i := range x {
		sx += x[i]
		sy += y[i]
		sxy += float64(x[i] * y[i])
		sxx += float64(x[i] * x[i])
	}
	return (sxy - float64(sx*sy)/3) / (sxx - float64(sx*sx)/3)
}

func classifySlope(m float64) string {
	switch {
	case m < 0:
		return TrendDecrease
	case m == 0:
		return TrendUncertain
	default:
		return TrendIncrease
	}
}
