package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"coinlens/internal/chart"
	"coinlens/internal/config"
	"coinlens/internal/fetcher"
	"coinlens/internal/logging"
	"coinlens/internal/rawexport"
	"coinlens/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer

	fetcher fetcher.TickerFetcher
	store   storage.ReportStore
	raw     *rawexport.Dir
}

// NewApp constructs a new application handle printing command output to stdout.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	a := &App{
		Config: cfg,
		Logger: logging.Component(logger, "app"),
		Out:    os.Stdout,
		raw:    rawexport.NewDir(cfg.Paths.RawExports),
	}
	a.fetcher = fetcher.NewCoinlore(fetcher.CoinloreOptions{
		BaseURL:   cfg.Fetcher.BaseURL,
		Start:     cfg.Fetcher.Start,
		Limit:     cfg.Fetcher.Limit,
		Timeout:   cfg.Fetcher.Timeout,
		UserAgent: cfg.Fetcher.UserAgent,
	}, logger)
	a.store = storage.NewFileStore(storage.Options{
		Dir:         cfg.Paths.Reports,
		RotateBytes: cfg.Storage.RotateBytes,
		Indent:      cfg.Storage.Indent,
	}, logger)
	return a
}

// WithFetcher replaces the ticker source.
func (a *App) WithFetcher(f fetcher.TickerFetcher) *App {
	a.fetcher = f
	return a
}

func (a *App) chartOptions() chart.Options {
	return chart.Options{Width: a.Config.Chart.Width, Height: a.Config.Chart.Height}
}

// AnalyzeOptions select one model run.
type AnalyzeOptions struct {
	File string
	Kind string
	Coin string
}

// InspectOptions configure the records consult.
type InspectOptions struct {
	File  string
	Limit int
	Rank  bool
}

// ChartOptions select a visualization.
type ChartOptions struct {
	File   string
	Kind   string
	Column string
	Coin   string
}

// ExportOptions hold parameters for exporting a table and its report log.
type ExportOptions struct {
	File     string
	XLSXPath string
	CSVPath  string
}
