package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinlens/internal/dataset"
)

func TestTrendFlatIsUncertain(t *testing.T) {
	table := tableOf(t, fixture{name: "Flat", price: "1", h1: "0", h24: "0", d7: "0"})

	res, err := Trend(table, "Flat")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.RawSlope)
	assert.Equal(t, TrendUncertain, res.Direction)
	assert.Equal(t, "Prediction for Flat: Future trend is uncertain (Slope: 0.0000)", res.Message())
}

func TestTrendSlopeUsesAsymmetricAbscissas(t *testing.T) {
	table := tableOf(t, fixture{name: "Up", price: "1", h1: "1", h24: "2", d7: "3"})

	res, err := Trend(table, "Up")
	require.NoError(t, err)

	sx := 0 + 6.85 + 7.0
	sxy := 0*1.0 + 6.85*2.0 + 7.0*3.0
	sxx := 0*0.0 + 6.85*6.85 + 7.0*7.0
	want := (sxy - sx*6/3) / (sxx - sx*sx/3)

	assert.InDelta(t, want, res.RawSlope, 1e-12)
	assert.Equal(t, 0.2189, res.Slope)
	assert.Equal(t, TrendIncrease, res.Direction)
	assert.Contains(t, res.Message(), "Expected value to increase (Slope: 0.2189)")
}

func TestTrendDecrease(t *testing.T) {
	table := tableOf(t, fixture{name: "Down", price: "1", h1: "3", h24: "2", d7: "1"})

	res, err := Trend(table, "Down")
	require.NoError(t, err)
	assert.Equal(t, TrendDecrease, res.Direction)
	assert.Equal(t, -0.2189, res.Slope)
	assert.Equal(t, "least_squares_trend", res.Record()["analysis_type"])
}

func TestTrendRejectsMissingValues(t *testing.T) {
	table := tableOf(t, fixture{name: "Gap", price: "1", h1: "1", h24: "n/a", d7: "3"})

	_, err := Trend(table, "Gap")
	require.ErrorIs(t, err, ErrMissingValue)
}

func TestTrendNotFound(t *testing.T) {
	table := tableOf(t, fixture{name: "Known", price: "1", h1: "1", h24: "1", d7: "1"})

	_, err := Trend(table, "Unknown")
	require.ErrorIs(t, err, dataset.ErrAssetNotFound)
	assert.Equal(t, "Error: Coin 'Unknown' not found", err.Error())
}
