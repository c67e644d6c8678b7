package quote

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"stockbot/internal/marketdata"
)

// DateRange spans the earliest and latest date of the selected window.
type DateRange struct {
	Start string
	End   string
}

// Quote is the derived summary over a fetched time series.
type Quote struct {
	Symbol        string
	CurrentValue  string
	MeanValue     string
	DateRange     DateRange
	LastRefreshed string
	CurrencyLabel string

	// Dates and Closes hold the windowed series, ascending by date.
	Dates  []string
	Closes []decimal.Decimal
}

// Build fetches data through the source and derives a Quote. The window,
// when positive, restricts the mean and date range to the most recent N
// dates; the current value always reflects the globally latest date.
func Build(ctx context.Context, src Source, window int, logger zerolog.Logger) (*Quote, error) {
	series, meta, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, &marketdata.EmptyDataError{Symbol: src.Symbol()}
	}

	if e, ok := src.(enricher); ok {
		if err := e.Enrich(ctx, series); err != nil {
			logger.Warn().Err(err).Str("symbol", src.Symbol()).Msg("enrichment failed, using fetched data only")
		}
	}

	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	current := series[dates[len(dates)-1]]

	windowed := dates
	if window > 0 && window < len(dates) {
		windowed = dates[len(dates)-window:]
	}

	closes := make([]decimal.Decimal, len(windowed))
	for i, date := range windowed {
		closes[i] = series[date]
	}

	q := &Quote{
		Symbol:        src.Symbol(),
		CurrentValue:  current.StringFixed(2),
		MeanValue:     meanValue(closes),
		LastRefreshed: meta[src.RefreshedKey()],
		CurrencyLabel: src.CurrencyLabel(),
		Dates:         windowed,
		Closes:        closes,
	}
	if len(windowed) > 0 {
		q.DateRange = DateRange{Start: windowed[0], End: windowed[len(windowed)-1]}
	}

	return q, nil
}

func meanValue(closes []decimal.Decimal) string {
	if len(closes) == 0 {
		return "0.00"
	}

	sum := decimal.Zero
	for _, c := range closes {
		sum = sum.Add(c)
	}
	return sum.Div(decimal.NewFromInt(int64(len(closes)))).StringFixed(2)
}
