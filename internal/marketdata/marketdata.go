package marketdata

import (
	"context"

	"github.com/shopspring/decimal"
)

// Series maps a date key to the close value for that date. Dates use the
// provider's ISO-like format and sort correctly as strings.
type Series map[string]decimal.Decimal

// Metadata holds the provider-reported metadata fields verbatim.
type Metadata map[string]string

// Provider retrieves time-series price data from a financial data source.
type Provider interface {
	// TimeSeries fetches equity data for a symbol at the given interval.
	TimeSeries(ctx context.Context, symbol string, interval Interval) (Series, Metadata, error)
	// CryptoSeries fetches daily data for a digital currency in the given market.
	CryptoSeries(ctx context.Context, symbol, market string) (Series, Metadata, error)
	// ExchangeRate fetches the live exchange rate and its refresh timestamp.
	ExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, string, error)
}
