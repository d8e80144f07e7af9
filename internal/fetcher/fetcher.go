package fetcher

import (
	"context"
)

// Ticker is one flat key/value asset record as returned by the upstream API.
type Ticker map[string]string

// TickerFetcher retrieves the current ticker snapshot.
type TickerFetcher interface {
	FetchTickers(ctx context.Context) ([]Ticker, error)
}
