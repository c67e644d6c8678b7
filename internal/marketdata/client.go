package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	metaDataKey     = "Meta Data"
	seriesKeyMarker = "Time Series"

	// Step size the provider requires for intraday series requests.
	intradayStep = "5min"

	cryptoSeriesFunction = "DIGITAL_CURRENCY_DAILY"
	exchangeRateFunction = "CURRENCY_EXCHANGE_RATE"
)

// Options parameterise the market data client.
type Options struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client fetches time-series data from the Alpha Vantage HTTP API.
type Client struct {
	opts    Options
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewClient constructs a market data client.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co/query"
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "marketdata").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// TimeSeries retrieves an equity time series for the given interval.
func (c *Client) TimeSeries(ctx context.Context, symbol string, interval Interval) (Series, Metadata, error) {
	function, ok := seriesFunctions[interval]
	if !ok {
		return nil, nil, &InvalidIntervalError{Interval: interval}
	}

	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	if interval == IntervalIntraday {
		params.Set("interval", intradayStep)
	}

	payload, err := c.query(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	return parseSeries(payload, symbol, "4. close")
}

// CryptoSeries retrieves a daily digital currency time series.
func (c *Client) CryptoSeries(ctx context.Context, symbol, market string) (Series, Metadata, error) {
	params := url.Values{}
	params.Set("function", cryptoSeriesFunction)
	params.Set("symbol", symbol)
	params.Set("market", market)

	payload, err := c.query(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	closeKey := fmt.Sprintf("4a. close (%s)", market)
	return parseSeries(payload, symbol, closeKey)
}

// ExchangeRate retrieves the live exchange rate between two currencies.
func (c *Client) ExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, string, error) {
	params := url.Values{}
	params.Set("function", exchangeRateFunction)
	params.Set("from_currency", from)
	params.Set("to_currency", to)

	payload, err := c.query(ctx, params)
	if err != nil {
		return decimal.Decimal{}, "", err
	}

	raw, ok := payload["Realtime Currency Exchange Rate"]
	if !ok {
		return decimal.Decimal{}, "", fmt.Errorf("exchange rate response missing rate block")
	}

	var block map[string]string
	if err := json.Unmarshal(raw, &block); err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("decode exchange rate block: %w", err)
	}

	rate, err := decimal.NewFromString(block["5. Exchange Rate"])
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("parse exchange rate: %w", err)
	}

	return rate, block["6. Last Refreshed"], nil
}

func (c *Client) query(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	params.Set("apikey", c.opts.APIKey)

	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "stockbot/1.0")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(payloadBytes))}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, fmt.Errorf("decode market data response: %w", err)
	}

	if err := providerError(payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// providerError surfaces failures the API reports inside a 200 response,
// including rate-limit notes.
func providerError(payload map[string]json.RawMessage) error {
	for _, key := range []string{"Error Message", "Note", "Information"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var message string
		if err := json.Unmarshal(raw, &message); err != nil {
			continue
		}
		return &APIError{Status: http.StatusOK, Message: message}
	}
	return nil
}

func parseSeries(payload map[string]json.RawMessage, symbol, closeKey string) (Series, Metadata, error) {
	meta := Metadata{}
	if raw, ok := payload[metaDataKey]; ok {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, nil, fmt.Errorf("decode metadata: %w", err)
		}
	}

	var points map[string]map[string]string
	for key, raw := range payload {
		if key == metaDataKey || !strings.Contains(key, seriesKeyMarker) {
			continue
		}
		if err := json.Unmarshal(raw, &points); err != nil {
			return nil, nil, fmt.Errorf("decode time series %q: %w", key, err)
		}
		break
	}

	series := Series{}
	for date, record := range points {
		value, ok := record[closeKey]
		if !ok {
			continue
		}
		closePrice, err := decimal.NewFromString(value)
		if err != nil {
			return nil, nil, fmt.Errorf("parse close value for %s: %w", date, err)
		}
		series[date] = closePrice
	}

	if len(series) == 0 {
		return nil, nil, &EmptyDataError{Symbol: symbol}
	}

	return series, meta, nil
}

var _ Provider = (*Client)(nil)
