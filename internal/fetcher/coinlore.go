package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"coinlens/internal/logging"
)

const tickersPath = "/tickers/"

// ErrNoData is returned when the API answers successfully with an empty data array.
var ErrNoData = errors.New("api returned no data")

// CoinloreOptions parameterise the ticker client.
type CoinloreOptions struct {
	BaseURL   string
	Start     int
	Limit     int
	Timeout   time.Duration
	UserAgent string
}

// Coinlore fetches ticker snapshots from the coinlore public API.
type Coinlore struct {
	opts   CoinloreOptions
	client *resty.Client
	logger zerolog.Logger
}

// NewCoinlore constructs a ticker client.
func NewCoinlore(opts CoinloreOptions, logger zerolog.Logger) *Coinlore {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.coinlore.net/api"
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = "coinlens/1.0"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Coinlore{
		opts:   opts,
		client: client,
		logger: logging.Component(logger, "ticker_fetcher"),
	}
}

// FetchTickers retrieves one page of tickers and flattens every field to text.
func (c *Coinlore) FetchTickers(ctx context.Context) ([]Ticker, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start": strconv.Itoa(c.opts.Start),
			"limit": strconv.Itoa(c.opts.Limit),
		}).
		Get(tickersPath)
	if err != nil {
		return nil, fmt.Errorf("request tickers: %w", err)
	}
	if resp.IsError() {
		return nil, parseHTTPError(resp.StatusCode(), resp.Body())
	}

	var payload tickersResponse
	dec := json.NewDecoder(bytes.NewReader(resp.Body()))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tickers: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, ErrNoData
	}

	tickers := make([]Ticker, 0, len(payload.Data))
	for _, item := range payload.Data {
		tickers = append(tickers, flatten(item))
	}

	c.logger.Info().Int("tickers", len(tickers)).Int("start", c.opts.Start).Msg("tickers fetched")
	return tickers, nil
}

type tickersResponse struct {
	Data []map[string]any `json:"data"`
}

func flatten(item map[string]any) Ticker {
	out := make(Ticker, len(item))
	for k, v := range item {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			raw, _ := json.Marshal(val)
			out[k] = string(raw)
		}
	}
	return out
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Error != "" {
			return fmt.Errorf("coinlore api error (%d): %s", status, apiErr.Error)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("coinlore api error (%d): %s", status, apiErr.Message)
		}
	}
	if body := strings.TrimSpace(string(payload)); body != "" {
		return fmt.Errorf("coinlore api error (%d): %s", status, body)
	}
	return fmt.Errorf("coinlore api error (%d)", status)
}

var _ TickerFetcher = (*Coinlore)(nil)
