package analytics

import (
	"testing"

	"coinlens/internal/dataset"
)

type fixture struct {
	name, price, h1, h24, d7 string
}

func tableOf(t *testing.T, rows ...fixture) dataset.Table {
	t.Helper()
	out := make([]dataset.Row, 0, len(rows))
	for i, r := range rows {
		var v [dataset.ColumnCount]string
		v[dataset.ColID] = string(rune('a' + i))
		v[dataset.ColName] = r.name
		v[dataset.ColPriceUSD] = r.price
		v[dataset.ColPercentChange1h] = r.h1
		v[dataset.ColPercentChange24h] = r.h24
		v[dataset.ColPercentChange7d] = r.d7
		out = append(out, dataset.NewRow(v))
	}
	return dataset.NewTable(out)
}
