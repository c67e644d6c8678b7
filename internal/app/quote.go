package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stockbot/internal/bot"
	"stockbot/internal/intent"
	"stockbot/internal/quote"
	"stockbot/internal/render"
)

// QuoteOptions configure the quote debugging command.
type QuoteOptions struct {
	Symbol   string
	Crypto   bool
	Interval string
	JSONPath string
	PNGPath  string
}

// Quote fetches a quote directly, logs the summary, and optionally writes
// the graph structure as JSON or renders it as a PNG.
func (a *App) Quote(ctx context.Context, opts QuoteOptions) error {
	if opts.Symbol == "" && !opts.Crypto {
		return errors.New("either --symbol or --crypto is required")
	}

	extractor := intent.NewExtractor(a.Logger)
	interval, hasInterval := extractor.FindInterval(opts.Interval)

	quotes := a.newQuotes()

	var (
		q      *quote.Quote
		err    error
		symbol string
	)
	if opts.Crypto {
		symbol = quotes.CryptoSymbol()
		q, err = quotes.Crypto(ctx, interval.Length)
	} else {
		symbol = strings.ToUpper(opts.Symbol)
		q, err = quotes.Equity(ctx, symbol, interval.Unit, interval.Length)
	}
	if err != nil {
		return fmt.Errorf("build quote for %s: %w", symbol, err)
	}

	a.Logger.Info().
		Str("symbol", q.Symbol).
		Int("datapoints", len(q.Dates)).
		Str("current_value", q.CurrentValue).
		Str("mean_value", q.MeanValue).
		Str("range_start", q.DateRange.Start).
		Str("range_end", q.DateRange.End).
		Str("last_refreshed", q.LastRefreshed).
		Msg("quote summary")

	if opts.JSONPath == "" && opts.PNGPath == "" {
		return nil
	}

	length := 0
	if hasInterval {
		length = interval.Length
	}
	payload := render.BuildPayload(q, "", bot.ComposeReply(q), length, interval.Unit)

	if opts.JSONPath != "" {
		if err := writeGraphJSON(opts.JSONPath, payload.Graph); err != nil {
			return err
		}
		a.Logger.Info().Str("path", opts.JSONPath).Msg("graph JSON written")
	}

	if opts.PNGPath != "" {
		if err := render.WritePNG(payload.Graph, opts.PNGPath); err != nil {
			return err
		}
		a.Logger.Info().Str("path", opts.PNGPath).Msg("graph PNG written")
	}

	return nil
}

func writeGraphJSON(path string, g render.Graph) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(g)
}
