package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"coinlens/internal/config"
	"coinlens/internal/fetcher"
	"coinlens/internal/logging"
	"coinlens/internal/storage"
)

const exportName = "consulta_2024-01-01_00-00-00.txt"

const exportBody = `id,symbol,name,nameid,rank,price_usd,percent_change_24h,percent_change_1h,percent_change_7d,price_btc,market_cap_usd,volume24,volume24a,csupply,tsupply,msupply
90,BTC,Bitcoin,bitcoin,1,42000.50,2.0,1.0,3.0,1,800000000000,1,1,19000000,19000000,21000000
80,ETH,Ethereum,ethereum,2,2500.25,-1.0,-0.5,-2.0,0.06,300000000000,1,1,120000000,120000000,
518,USDT,Tether,tether,3,1.00,abc,0.01,0.02,0.00002,90000000000,1,1,90000000000,90000000000,
`

type stubFetcher struct {
	tickers []fetcher.Ticker
	err     error
}

func (s stubFetcher) FetchTickers(ctx context.Context) ([]fetcher.Ticker, error) {
	return s.tickers, s.err
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "reports")
	cfg := &config.Config{
		Logging: logging.Config{Level: "debug", Format: "json"},
		Paths: config.PathsConfig{
			Root:           root,
			RawExports:     filepath.Join(root, "raw_exports"),
			Reports:        filepath.Join(root, "analysis"),
			Visualizations: filepath.Join(root, "visualizations"),
		},
		Fetcher: config.FetcherConfig{FilePrefix: "consulta"},
		Storage: config.StorageConfig{Indent: 4},
		Chart:   config.ChartConfig{Width: 640, Height: 480},
	}
	a := NewApp(cfg, zerolog.Nop())
	out := &bytes.Buffer{}
	a.Out = out
	return a, out
}

func writeExport(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, os.MkdirAll(a.Config.Paths.RawExports, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a.Config.Paths.RawExports, exportName), []byte(exportBody), 0o644))
}

func TestFetchSavesRawExport(t *testing.T) {
	a, out := newTestApp(t)
	a.WithFetcher(stubFetcher{tickers: []fetcher.Ticker{
		{"id": "90", "symbol": "BTC", "name": "Bitcoin", "price_usd": "42000.50"},
		{"id": "80", "symbol": "ETH", "name": "Ethereum", "price_usd": "2500.25"},
	}})

	path, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "consulta_"))
	assert.Contains(t, out.String(), "Ticker data successfully saved to: "+path)

	out.Reset()
	require.NoError(t, a.ListFiles(context.Background()))
	assert.Contains(t, out.String(), " 1. "+filepath.Base(path))
}

func TestFetchPropagatesError(t *testing.T) {
	a, _ := newTestApp(t)
	boom := errors.New("boom")
	a.WithFetcher(stubFetcher{err: boom})

	_, err := a.Fetch(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestListFilesEmptyDirectory(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.ListFiles(context.Background()))
	assert.Contains(t, out.String(), "no raw exports found")
}

func TestAnalyzeAppendsReport(t *testing.T) {
	a, out := newTestApp(t)
	writeExport(t, a)
	ctx := context.Background()

	outcome, err := a.Analyze(ctx, AnalyzeOptions{File: exportName, Kind: "weighted_average_change", Coin: "Bitcoin"})
	require.NoError(t, err)
	assert.False(t, outcome.NotFound)
	assert.Contains(t, out.String(), "--- Analysis Result ---")
	assert.Contains(t, out.String(), "The weighted average change for Bitcoin")
	assert.Equal(t, filepath.Join(a.Config.Paths.Reports, "report_2024-01-01_00-00-00.json"), outcome.Report.Path)

	_, err = a.Analyze(ctx, AnalyzeOptions{File: exportName, Kind: "best", Coin: ""})
	require.NoError(t, err)

	entries, err := a.store.Load(ctx, exportName)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "weighted_average_change", entries[0].AnalysisType())
	assert.Equal(t, "best_growth_coin", entries[1].AnalysisType())
	assert.Equal(t, "Bitcoin", entries[1]["best_coin"])
}

func TestAnalyzeUnknownCoinIsNotPersisted(t *testing.T) {
	a, out := newTestApp(t)
	writeExport(t, a)
	ctx := context.Background()

	outcome, err := a.Analyze(ctx, AnalyzeOptions{File: exportName, Kind: "least_squares_trend", Coin: "bitcoin"})
	require.NoError(t, err)
	assert.True(t, outcome.NotFound)
	assert.Contains(t, out.String(), "Error: Coin 'bitcoin' not found")

	entries, err := a.store.Load(ctx, exportName)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnalyzeRejectsMissingCoinAndKind(t *testing.T) {
	a, _ := newTestApp(t)
	writeExport(t, a)

	_, err := a.Analyze(context.Background(), AnalyzeOptions{File: exportName, Kind: "volatility_risk"})
	assert.ErrorContains(t, err, "--coin is required")

	_, err = a.Analyze(context.Background(), AnalyzeOptions{File: exportName, Kind: "astrology", Coin: "Bitcoin"})
	assert.Error(t, err)
}

func TestAnalyzeMissingValueIsAnError(t *testing.T) {
	a, _ := newTestApp(t)
	writeExport(t, a)

	_, err := a.Analyze(context.Background(), AnalyzeOptions{File: exportName, Kind: "volatility_risk", Coin: "Tether"})
	require.Error(t, err)

	entries, err := a.store.Load(context.Background(), exportName)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInspectPrintsTable(t *testing.T) {
	a, out := newTestApp(t)
	writeExport(t, a)

	require.NoError(t, a.Inspect(context.Background(), InspectOptions{File: exportName, Rank: true}))
	text := out.String()
	assert.Contains(t, text, "Shape: (3, 16)")
	assert.Contains(t, text, "42000.50")
	assert.Contains(t, text, "Weighted growth ranking:")
	assert.Contains(t, text, "1.  Bitcoin")
}

func TestExportWritesCSVAndWorkbook(t *testing.T) {
	a, _ := newTestApp(t)
	writeExport(t, a)
	ctx := context.Background()

	_, err := a.Analyze(ctx, AnalyzeOptions{File: exportName, Kind: "volatility_risk", Coin: "Ethereum"})
	require.NoError(t, err)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "table.csv")
	xlsxPath := filepath.Join(dir, "out", "table.xlsx")
	require.NoError(t, a.Export(ctx, ExportOptions{File: exportName, CSVPath: csvPath, XLSXPath: xlsxPath}))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "id,symbol,name"))
	assert.Contains(t, lines[3], "Tether,tether,3,1,,0.01,0.02")

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"table", "reports"}, f.GetSheetList())

	name, err := f.GetCellValue("table", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", name)

	kind, err := f.GetCellValue("reports", "B2")
	require.NoError(t, err)
	assert.Equal(t, "volatility_risk", kind)
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestWriteRecordsReportsWriteFailure(t *testing.T) {
	a, _ := newTestApp(t)
	writeExport(t, a)
	table, err := a.raw.Load(exportName)
	require.NoError(t, err)

	full := errors.New("disk full")
	require.ErrorIs(t, writeRecords(failingWriter{err: full}, table), full)
}

func TestExportRequiresTarget(t *testing.T) {
	a, _ := newTestApp(t)
	writeExport(t, a)
	assert.Error(t, a.Export(context.Background(), ExportOptions{File: exportName}))
}

func TestChartWritesPNG(t *testing.T) {
	a, out := newTestApp(t)
	writeExport(t, a)

	path, err := a.Chart(context.Background(), ChartOptions{File: exportName, Kind: "bar", Column: "24h"})
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, filepath.Base(path), "Graph_Changes_percent_change_24h_")
	assert.Contains(t, out.String(), "Visualization saved to: ")

	path, err = a.Chart(context.Background(), ChartOptions{File: exportName, Kind: "trend", Coin: "Bitcoin"})
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = a.Chart(context.Background(), ChartOptions{File: exportName, Kind: "pie"})
	assert.Error(t, err)
}

func TestReportsListShowClear(t *testing.T) {
	a, out := newTestApp(t)
	writeExport(t, a)
	ctx := context.Background()

	_, err := a.Analyze(ctx, AnalyzeOptions{File: exportName, Kind: "linear_regression", Coin: "Bitcoin"})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, a.ListReports(ctx))
	assert.Contains(t, out.String(), "2024-01-01_00-00-00  current")

	out.Reset()
	require.NoError(t, a.ShowReport(ctx, exportName))
	assert.Contains(t, out.String(), `"analysis_type": "linear_regression"`)

	out.Reset()
	require.NoError(t, a.ClearReports(ctx))
	assert.Contains(t, out.String(), "deleted successfully")
	assert.NoDirExists(t, a.Config.Paths.Root)

	out.Reset()
	require.NoError(t, a.ClearReports(ctx))
	assert.Contains(t, out.String(), "does not exist")
}

func TestExportSkipsCorruptReportLog(t *testing.T) {
	a, _ := newTestApp(t)
	writeExport(t, a)

	logPath := a.store.(*storage.FileStore).Path(exportName)
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte("{not json"), 0o644))

	xlsxPath := filepath.Join(t.TempDir(), "table.xlsx")
	require.NoError(t, a.Export(context.Background(), ExportOptions{File: exportName, XLSXPath: xlsxPath}))
	assert.FileExists(t, xlsxPath)
}
