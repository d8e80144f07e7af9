package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinlens/internal/dataset"
)

func TestWeightedAverageLiteralWeights(t *testing.T) {
	table := tableOf(t, fixture{name: "Coin", price: "1", h1: "10", h24: "20", d7: "30"})

	res, err := WeightedAverage(table, "Coin")
	require.NoError(t, err)

	want := (0.5*10 + 0.333333*20 + 0.1666666*30) / 0.9999996
	assert.InDelta(t, want, res.Raw, 1e-9)
	assert.Equal(t, 16.6667, res.Average)
	assert.Equal(t, "The weighted average change for Coin (last week) is: 16.6667%", res.Message())
}

func TestWeightedAverageMissingAndNotFound(t *testing.T) {
	table := tableOf(t, fixture{name: "Coin", price: "1", h1: "10", h24: "20", d7: ""})

	_, err := WeightedAverage(table, "Coin")
	require.ErrorIs(t, err, ErrMissingValue)

	_, err = WeightedAverage(table, "Other")
	require.ErrorIs(t, err, dataset.ErrAssetNotFound)
}

func TestBestGrowthIndependentOfOrder(t *testing.T) {
	low := fixture{name: "Low", price: "1", h1: "1", h24: "1", d7: "1"}
	high := fixture{name: "High", price: "1", h1: "9", h24: "9", d7: "9"}
	mid := fixture{name: "Mid", price: "1", h1: "4", h24: "4", d7: "4"}

	orders := [][]fixture{
		{low, high, mid},
		{high, low, mid},
		{mid, low, high},
	}
	for _, order := range orders {
		res, err := BestGrowth(tableOf(t, order...))
		require.NoError(t, err)
		assert.Equal(t, "High", res.Coin)
		assert.Equal(t, 9.0, res.Average)
	}
}

func TestBestGrowthTieKeepsFirst(t *testing.T) {
	table := tableOf(t,
		fixture{name: "First", price: "1", h1: "5", h24: "5", d7: "5"},
		fixture{name: "Second", price: "1", h1: "5", h24: "5", d7: "5"},
	)
	res, err := BestGrowth(table)
	require.NoError(t, err)
	assert.Equal(t, "First", res.Coin)
	assert.Equal(t, 0, res.Index)
}

func TestBestGrowthSkipsIncompleteRows(t *testing.T) {
	table := tableOf(t,
		fixture{name: "Broken", price: "1", h1: "99", h24: "x", d7: "99"},
		fixture{name: "Ok", price: "1", h1: "1", h24: "2", d7: "3"},
	)
	res, err := BestGrowth(table)
	require.NoError(t, err)
	assert.Equal(t, "Ok", res.Coin)

	_, err = BestGrowth(tableOf(t, fixture{name: "Broken", h1: "x"}))
	require.ErrorIs(t, err, ErrNoRankableRows)
	_, err = BestGrowth(dataset.Table{})
	require.ErrorIs(t, err, ErrNoRankableRows)
}

func TestWeightedAveragesDoesNotTouchTable(t *testing.T) {
	table := tableOf(t,
		fixture{name: "A", price: "1", h1: "1", h24: "1", d7: "1"},
		fixture{name: "B", price: "1", h1: "3", h24: "3", d7: "3"},
	)
	before := table.Rows()

	scores := WeightedAverages(table)
	require.Len(t, scores, 2)
	assert.Equal(t, before, table.Rows())

	ranked := Rank(table)
	require.Len(t, ranked, 2)
	assert.Equal(t, "B", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Index)
	assert.Equal(t, []string{"A", "B"}, table.Names())
}
