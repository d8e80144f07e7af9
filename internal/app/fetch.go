package app

import (
	"context"
	"fmt"
)

// Fetch downloads the current ticker snapshot and saves it as a raw export.
func (a *App) Fetch(ctx context.Context) (string, error) {
	tickers, err := a.fetcher.FetchTickers(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch tickers: %w", err)
	}

	path, err := a.raw.Save(tickers, a.Config.Fetcher.FilePrefix)
	if err != nil {
		return "", err
	}

	a.Logger.Info().Str("path", path).Int("tickers", len(tickers)).Msg("raw export saved")
	fmt.Fprintf(a.Out, "Ticker data successfully saved to: %s\n", path)
	return path, nil
}

// ListFiles prints the available raw exports, numbered.
func (a *App) ListFiles(ctx context.Context) error {
	files, err := a.raw.List()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(a.Out, "no raw exports found in %s; run `coinlens fetch` first\n", a.raw.Path())
		return nil
	}
	for i, f := range files {
		fmt.Fprintf(a.Out, " %d. %s\n", i+1, f.Name)
	}
	return nil
}
