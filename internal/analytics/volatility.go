package analytics

import (
	"fmt"
	"math"

	"coinlens/internal/dataset"
)

// Risk tiers.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// VolatilityResult is the population standard deviation of one asset's percent changes.
type VolatilityResult struct {
	Coin   string
	StdDev float64
	Raw    float64
	Risk   string
}

func (r VolatilityResult) Kind() Kind { return KindVolatility }

func (r VolatilityResult) Record() map[string]any {
	return map[string]any{
		"analysis_type": string(KindVolatility),
		"coin":          r.Coin,
		"std_dev":       r.StdDev,
		"risk_level":    r.Risk,
	}
}

func (r VolatilityResult) Message() string {
	return fmt.Sprintf("Volatility for %s: standard deviation %.4f, risk level %s", r.Coin, r.Raw, r.Risk)
}

// Volatility scores the spread of the 1h, 24h and 7d changes.
func Volatility(t dataset.Table, coin string) (VolatilityResult, error) {
	row, err := dataset.Find(t, coin)
	if err != nil {
		return VolatilityResult{}, err
	}
	values, err := completeChanges(row)
	if err != nil {
		return VolatilityResult{}, err
	}

	std := PopulationStdDev(values[:])
	if err := finite(std); err != nil {
		return VolatilityResult{}, fmt.Errorf("volatility for %s: %w", coin, err)
	}
	return VolatilityResult{Coin: coin, StdDev: round4(std), Raw: std, Risk: ClassifyRisk(std)}, nil
}

// PopulationStdDev divides by n, not n-1.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += float64(d * d)
	}
	return math.Sqrt(ss / float64(len(values)))
}

// ClassifyRisk maps std > 5 to HIGH, 1 < std ≤ 5 to MEDIUM and the rest to LOW.
func ClassifyRisk(std float64) string {
	switch {
	case std > 5:
		return RiskHigh
	case std > 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
