package quote

import (
	"context"

	"github.com/rs/zerolog"

	"stockbot/internal/marketdata"
)

// defaultCryptoWindow is the trailing window applied to crypto quotes when
// the message names no interval.
const defaultCryptoWindow = 7

// Service builds quotes from the configured market data provider.
type Service struct {
	provider     marketdata.Provider
	cryptoSymbol string
	cryptoMarket string
	logger       zerolog.Logger
}

// NewService constructs a quote service.
func NewService(provider marketdata.Provider, cryptoSymbol, cryptoMarket string, logger zerolog.Logger) *Service {
	return &Service{
		provider:     provider,
		cryptoSymbol: cryptoSymbol,
		cryptoMarket: cryptoMarket,
		logger:       logger.With().Str("component", "quotes").Logger(),
	}
}

// Equity builds a quote for a stock ticker.
func (s *Service) Equity(ctx context.Context, symbol string, interval marketdata.Interval, window int) (*Quote, error) {
	src := NewEquitySource(s.provider, symbol, interval)
	return Build(ctx, src, window, s.logger)
}

// Crypto builds a quote for the configured digital currency. The crypto
// series is always daily, so only the window length of a parsed interval
// applies.
func (s *Service) Crypto(ctx context.Context, window int) (*Quote, error) {
	if window <= 0 {
		window = defaultCryptoWindow
	}
	src := NewCryptoSource(s.provider, s.cryptoSymbol, s.cryptoMarket, s.logger)
	return Build(ctx, src, window, s.logger)
}

// CryptoSymbol reports the configured digital currency symbol.
func (s *Service) CryptoSymbol() string {
	return s.cryptoSymbol
}
