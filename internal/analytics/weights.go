package analytics

import (
	"fmt"

	"coinlens/internal/dataset"
)

// Weights applied to the 1h, 24h and 7d changes. They sum to 0.9999996 and are used as is.
var Weights = [3]float64{0.5, 0.333333, 0.1666666}

// weightedMean divides by the weight sum, matching weighted-mean semantics.
func weightedMean(values [3]float64) float64 {
	var num, den float64
	for i, w := range Weights {
		num += float64(values[i] * w)
		den += w
	}
	return num / den
}

func completeChanges(row dataset.Row) ([3]float64, error) {
	var out [3]float64
	for i, c := range row.Changes() {
		if !c.Valid {
			return out, fmt.Errorf("%w: %s has no %s", ErrMissingValue, row.Name(), changeColumns[i])
		}
		out[i] = c.Float64
	}
	return out, nil
}

var changeColumns = [3]string{"percent_change_1h", "percent_change_24h", "percent_change_7d"}
