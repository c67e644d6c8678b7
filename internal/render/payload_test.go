package render

import (
	"testing"

	"github.com/shopspring/decimal"

	"stockbot/internal/marketdata"
	"stockbot/internal/quote"
)

func testQuote() *quote.Quote {
	return &quote.Quote{
		Symbol:        "AAPL",
		CurrentValue:  "30.00",
		MeanValue:     "20.00",
		DateRange:     quote.DateRange{Start: "2024-01-01", End: "2024-01-03"},
		LastRefreshed: "2024-01-03",
		CurrencyLabel: "$",
		Dates:         []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		Closes: []decimal.Decimal{
			decimal.NewFromInt(10),
			decimal.NewFromInt(20),
			decimal.NewFromInt(30),
		},
	}
}

func TestBuildPayload(t *testing.T) {
	p := BuildPayload(testQuote(), "C123", "the reply", 14, marketdata.IntervalDaily)

	if p.Symbol != "AAPL" || p.Date != "2024-01-03" {
		t.Fatalf("payload header = %q/%q", p.Symbol, p.Date)
	}
	if p.Destination.Channel != "C123" {
		t.Fatalf("channel = %q", p.Destination.Channel)
	}
	if p.MessageText != "the reply" {
		t.Fatalf("message = %q", p.MessageText)
	}
	if p.Interval != "14daily" {
		t.Fatalf("interval = %q, want 14daily", p.Interval)
	}
	if p.Graph.Title != "AAPL (2024-01-01 - 2024-01-03)" {
		t.Fatalf("title = %q", p.Graph.Title)
	}
	if p.Graph.XLabel != "Time" || p.Graph.YLabel != "$" {
		t.Fatalf("labels = %q/%q", p.Graph.XLabel, p.Graph.YLabel)
	}
	if len(p.Graph.YAxis) != 3 || p.Graph.YAxis[2] != 30 {
		t.Fatalf("yaxis = %v", p.Graph.YAxis)
	}
}

func TestBuildPayloadDefaultsToIntraday(t *testing.T) {
	p := BuildPayload(testQuote(), "C123", "the reply", 0, "")
	if p.Interval != "intraday" {
		t.Fatalf("interval = %q, want intraday", p.Interval)
	}
}
