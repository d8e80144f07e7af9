// Package analytics implements the statistical models run against a normalized ticker table.
// Every operation is pure with respect to the table it receives.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingValue indicates a required cell holds the missing-value marker.
	ErrMissingValue = errors.New("analytics: required value missing")
	// ErrDegenerateFit indicates the regression input cannot determine a line.
	ErrDegenerateFit = errors.New("analytics: degenerate regression input")
	// ErrNonFinite indicates a computed output overflowed or became NaN.
	ErrNonFinite = errors.New("analytics: non-finite result")
	// ErrNoRankableRows indicates no row has all three percent changes.
	ErrNoRankableRows = errors.New("analytics: no rows with complete percent changes")
)

// Kind tags the model that produced a result.
type Kind string

const (
	KindTrend           Kind = "least_squares_trend"
	KindWeightedAverage Kind = "weighted_average_change"
	KindBestGrowth      Kind = "best_growth_coin"
	KindRegression      Kind = "linear_regression"
	KindVolatility      Kind = "volatility_risk"
)

// Kinds lists every model in menu order.
var Kinds = []Kind{KindTrend, KindWeightedAverage, KindRegression, KindVolatility, KindBestGrowth}

var kindAliases = map[string]Kind{
	"trend":      KindTrend,
	"weighted":   KindWeightedAverage,
	"regression": KindRegression,
	"volatility": KindVolatility,
	"best":       KindBestGrowth,
}

// ParseKind resolves a kind from its tag or short alias.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown analysis kind %q", s)
}

// NeedsAsset reports whether the model analyzes one selected asset.
func (k Kind) NeedsAsset() bool {
	return k != KindBestGrowth
}

// Result is the structured output of one model invocation.
type Result interface {
	Kind() Kind
	// Record flattens the result into named scalars tagged with analysis_type.
	Record() map[string]any
	// Message renders the console summary.
	Message() string
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

func finite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	return nil
}
