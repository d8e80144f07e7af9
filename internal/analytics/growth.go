package analytics

import (
	"fmt"
	"sort"

	"coinlens/internal/dataset"
)

// WeightedAverageResult is the fixed-weight momentum of one asset.
type WeightedAverageResult struct {
	Coin    string
	Average float64
	Raw     float64
}

func (r WeightedAverageResult) Kind() Kind { return KindWeightedAverage }

func (r WeightedAverageResult) Record() map[string]any {
	return map[string]any{
		"analysis_type":    string(KindWeightedAverage),
		"coin":             r.Coin,
		"weighted_average": r.Average,
	}
}

func (r WeightedAverageResult) Message() string {
	return fmt.Sprintf("The weighted average change for %s (last week) is: %.4f%%", r.Coin, r.Raw)
}

// WeightedAverage applies Weights to the selected asset's 1h, 24h and 7d changes.
func WeightedAverage(t dataset.Table, coin string) (WeightedAverageResult, error) {
	row, err := dataset.Find(t, coin)
	if err != nil {
		return WeightedAverageResult{}, err
	}
	values, err := completeChanges(row)
	if err != nil {
		return WeightedAverageResult{}, err
	}

	avg := weightedMean(values)
	if err := finite(avg); err != nil {
		return WeightedAverageResult{}, fmt.Errorf("weighted average for %s: %w", coin, err)
	}
	return WeightedAverageResult{Coin: coin, Average: round4(avg), Raw: avg}, nil
}

// Score is the weighted average computed for one table row.
type Score struct {
	Index int
	Name  string
	Value float64
	Valid bool
}

// WeightedAverages computes a score per row, parallel to the table. Rows with any missing
// change are returned with Valid=false. The table itself is not modified.
func WeightedAverages(t dataset.Table) []Score {
	scores := make([]Score, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		scores[i] = Score{Index: i, Name: row.Name()}
		values, err := completeChanges(row)
		if err != nil {
			continue
		}
		v := weightedMean(values)
		if finite(v) != nil {
			continue
		}
		scores[i].Value = v
		scores[i].Valid = true
	}
	return scores
}

// Rank orders the valid scores by weighted average, highest first. Equal scores keep table order.
func Rank(t dataset.Table) []Score {
	all := WeightedAverages(t)
	ranked := make([]Score, 0, len(all))
	for _, s := range all {
		if s.Valid {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	return ranked
}

// BestGrowthResult names the asset with the highest weighted average.
type BestGrowthResult struct {
	Coin    string
	Index   int
	Average float64
	Raw     float64
}

func (r BestGrowthResult) Kind() Kind { return KindBestGrowth }

func (r BestGrowthResult) Record() map[string]any {
	return map[string]any{
		"analysis_type":    string(KindBestGrowth),
		"best_coin":        r.Coin,
		"weighted_average": r.Average,
	}
}

func (r BestGrowthResult) Message() string {
	return fmt.Sprintf("The coin with the best weighted growth rate is %s at %.4f%%", r.Coin, r.Raw)
}

// BestGrowth selects the row with the maximum weighted average; the first occurrence wins ties.
func BestGrowth(t dataset.Table) (BestGrowthResult, error) {
	best := -1
	scores := WeightedAverages(t)
	for i, s := range scores {
		if !s.Valid {
			continue
		}
		if best < 0 || s.Value > scores[best].Value {
			best = i
		}
	}
	if best < 0 {
		return BestGrowthResult{}, ErrNoRankableRows
	}

	s := scores[best]
	return BestGrowthResult{Coin: s.Name, Index: s.Index, Average: round4(s.Value), Raw: s.Value}, nil
}
