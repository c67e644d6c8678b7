package intent

import (
	"testing"

	"github.com/rs/zerolog"

	"stockbot/internal/marketdata"
)

func testExtractor() *Extractor {
	return NewExtractor(zerolog.Nop())
}

func TestDetectTicker(t *testing.T) {
	cases := map[string]string{
		"how is $AAPL doing":      "AAPL",
		"$msft to the moon":       "MSFT",
		"thoughts on $BRK 14days": "BRK",
	}

	for text, want := range cases {
		got := testExtractor().Detect(text)
		if got.Kind != KindStock {
			t.Fatalf("Detect(%q) kind = %v, want stock", text, got.Kind)
		}
		if got.Ticker != want {
			t.Fatalf("Detect(%q) ticker = %q, want %q", text, got.Ticker, want)
		}
	}
}

func TestDetectTickerCapsAtEightChars(t *testing.T) {
	got := testExtractor().Detect("watch $ABCDEFGHI today")
	if got.Kind != KindStock || got.Ticker != "ABCDEFGH" {
		t.Fatalf("Detect = %+v, want first 8 chars ABCDEFGH", got)
	}
}

func TestDetectCrypto(t *testing.T) {
	for _, text := range []string{
		"what is bitcoin at",
		"BTC price?",
		"how about Btc today",
		"price of ₿ please",
	} {
		got := testExtractor().Detect(text)
		if got.Kind != KindCrypto {
			t.Fatalf("Detect(%q) = %+v, want crypto", text, got)
		}
	}
}

func TestDetectTickerWinsOverCrypto(t *testing.T) {
	got := testExtractor().Detect("$AAPL or bitcoin?")
	if got.Kind != KindStock || got.Ticker != "AAPL" {
		t.Fatalf("Detect = %+v, want ticker priority", got)
	}
}

func TestDetectNoMatch(t *testing.T) {
	for _, text := range []string{
		"good morning team",
		"btcx is not a coin word",
		"obtc neither",
	} {
		if got := testExtractor().Detect(text); got.Kind != KindNone {
			t.Fatalf("Detect(%q) = %+v, want none", text, got)
		}
	}
}

func TestFindInterval(t *testing.T) {
	cases := []struct {
		text   string
		length int
		unit   marketdata.Interval
	}{
		{"$AAPL 14days", 14, marketdata.IntervalDaily},
		{"200weeks of $TSLA", 200, marketdata.IntervalWeekly},
		{"show 6months", 6, marketdata.IntervalMonthly},
	}

	for _, tc := range cases {
		got, ok := testExtractor().FindInterval(tc.text)
		if !ok {
			t.Fatalf("FindInterval(%q) found nothing", tc.text)
		}
		if got.Length != tc.length || got.Unit != tc.unit {
			t.Fatalf("FindInterval(%q) = %+v, want (%d, %s)", tc.text, got, tc.length, tc.unit)
		}
	}
}

func TestFindIntervalUnknownTermFallsBackToIntraday(t *testing.T) {
	got, ok := testExtractor().FindInterval("3decades")
	if !ok {
		t.Fatal("FindInterval should still match an unknown unit word")
	}
	if got.Length != 3 || got.Unit != marketdata.IntervalIntraday {
		t.Fatalf("FindInterval = %+v, want (3, intraday)", got)
	}
}

func TestFindIntervalNoMatch(t *testing.T) {
	for _, text := range []string{"no interval here", "$AAPL please", ""} {
		if _, ok := testExtractor().FindInterval(text); ok {
			t.Fatalf("FindInterval(%q) should not match", text)
		}
	}
}
