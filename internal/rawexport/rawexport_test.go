package rawexport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinlens/internal/dataset"
	"coinlens/internal/fetcher"
)

func TestSaveThenLoad(t *testing.T) {
	dir := NewDir(filepath.Join(t.TempDir(), "data_raw_exports"))
	dir.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local) }

	tickers := []fetcher.Ticker{
		{"id": "90", "symbol": "BTC", "name": "Bitcoin", "price_usd": "67000", "percent_change_1h": "0.5", "percent_change_24h": "1", "percent_change_7d": "2", "extra": "dropped"},
		{"id": "80", "symbol": "ETH", "name": "Ethereum", "price_usd": "3500", "percent_change_1h": "x"},
	}

	path, err := dir.Save(tickers, "consulta_tickers")
	require.NoError(t, err)
	assert.Equal(t, "consulta_tickers_2024-05-01_10-00-00.txt", filepath.Base(path))

	table, err := dir.Load(filepath.Base(path))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"Bitcoin", "Ethereum"}, table.Names())
	assert.Equal(t, dataset.Num(0.5), table.Row(0).PercentChange1h)
	assert.False(t, table.Row(1).PercentChange1h.Valid)
}

func TestSaveRejectsEmpty(t *testing.T) {
	_, err := NewDir(t.TempDir()).Save(nil, "consulta_tickers")
	require.ErrorIs(t, err, ErrNoRecords)
}

func TestListFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.txt", "a.csv", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub.txt"), 0o755))

	files, err := NewDir(root).List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.txt", files[1].Name)

	missing, err := NewDir(filepath.Join(root, "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestResolve(t *testing.T) {
	dir := NewDir("reports/data_raw_exports")
	assert.Equal(t, filepath.Join("reports/data_raw_exports", "a.txt"), dir.Resolve("a.txt"))
	assert.Equal(t, "other/a.txt", dir.Resolve("other/a.txt"))
}
