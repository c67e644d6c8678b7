package quote

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"stockbot/internal/marketdata"
)

// Source supplies time-series data for one symbol.
type Source interface {
	Fetch(ctx context.Context) (marketdata.Series, marketdata.Metadata, error)
	Symbol() string
	// RefreshedKey names the metadata field carrying the provider's
	// refresh timestamp; the key differs between equities and crypto.
	RefreshedKey() string
	CurrencyLabel() string
}

// enricher augments a fetched series with a near-real-time data point.
// Enrichment is best effort; failures are logged and discarded.
type enricher interface {
	Enrich(ctx context.Context, series marketdata.Series) error
}

// EnrichmentError wraps a failed live-rate lookup.
type EnrichmentError struct {
	Symbol string
	Err    error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("live rate enrichment for %s failed: %v", e.Symbol, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// EquitySource fetches stock time series at a configurable interval.
type EquitySource struct {
	provider marketdata.Provider
	symbol   string
	interval marketdata.Interval
}

// NewEquitySource constructs an equity source. An empty interval defaults
// to intraday.
func NewEquitySource(provider marketdata.Provider, symbol string, interval marketdata.Interval) *EquitySource {
	if interval == "" {
		interval = marketdata.IntervalIntraday
	}
	return &EquitySource{provider: provider, symbol: symbol, interval: interval}
}

func (s *EquitySource) Fetch(ctx context.Context) (marketdata.Series, marketdata.Metadata, error) {
	return s.provider.TimeSeries(ctx, s.symbol, s.interval)
}

func (s *EquitySource) Symbol() string { return s.symbol }

func (s *EquitySource) RefreshedKey() string { return "3. Last Refreshed" }

func (s *EquitySource) CurrencyLabel() string { return "$" }

// CryptoSource fetches daily digital currency series and enriches them
// with the live exchange rate.
type CryptoSource struct {
	provider marketdata.Provider
	symbol   string
	market   string
	logger   zerolog.Logger
}

// NewCryptoSource constructs a crypto source for the given market.
func NewCryptoSource(provider marketdata.Provider, symbol, market string, logger zerolog.Logger) *CryptoSource {
	return &CryptoSource{
		provider: provider,
		symbol:   symbol,
		market:   market,
		logger:   logger.With().Str("component", "crypto_source").Logger(),
	}
}

func (s *CryptoSource) Fetch(ctx context.Context) (marketdata.Series, marketdata.Metadata, error) {
	return s.provider.CryptoSeries(ctx, s.symbol, s.market)
}

func (s *CryptoSource) Symbol() string { return s.symbol }

func (s *CryptoSource) RefreshedKey() string { return "6. Last Refreshed" }

func (s *CryptoSource) CurrencyLabel() string { return s.market }

// Enrich injects the live exchange rate as a synthetic data point for the
// rate's refresh date, so the latest value reflects near-real-time price.
func (s *CryptoSource) Enrich(ctx context.Context, series marketdata.Series) error {
	rate, refreshed, err := s.provider.ExchangeRate(ctx, s.symbol, s.market)
	if err != nil {
		return &EnrichmentError{Symbol: s.symbol, Err: err}
	}

	date := refreshed
	if len(date) > 10 {
		date = date[:10]
	}
	if date == "" {
		return &EnrichmentError{Symbol: s.symbol, Err: fmt.Errorf("rate has no refresh date")}
	}

	series[date] = rate
	s.logger.Info().Str("date", date).Str("rate", rate.String()).Msg("injected live exchange rate")
	return nil
}

var (
	_ Source   = (*EquitySource)(nil)
	_ Source   = (*CryptoSource)(nil)
	_ enricher = (*CryptoSource)(nil)
)
