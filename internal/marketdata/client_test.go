package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testClient(baseURL string) *Client {
	return NewClient(Options{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: time.Second,
	}, noopLogger())
}

const dailyResponse = `{
	"Meta Data": {
		"1. Information": "Daily Prices",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-01-03"
	},
	"Time Series (Daily)": {
		"2024-01-01": {"1. open": "9.00", "4. close": "10.00"},
		"2024-01-02": {"1. open": "10.00", "4. close": "20.00"},
		"2024-01-03": {"1. open": "20.00", "4. close": "30.00"}
	}
}`

func TestTimeSeriesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_DAILY" {
			t.Fatalf("function = %q, want TIME_SERIES_DAILY", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Fatalf("symbol = %q, want AAPL", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dailyResponse))
	}))
	defer srv.Close()

	series, meta, err := testClient(srv.URL).TimeSeries(context.Background(), "AAPL", IntervalDaily)
	if err != nil {
		t.Fatalf("TimeSeries: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series has %d points, want 3", len(series))
	}
	if got := series["2024-01-02"].StringFixed(2); got != "20.00" {
		t.Fatalf("close for 2024-01-02 = %s, want 20.00", got)
	}
	if got := meta["3. Last Refreshed"]; got != "2024-01-03" {
		t.Fatalf("last refreshed = %q", got)
	}
}

func TestTimeSeriesIntradayPassesStep(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "5min" {
			t.Fatalf("interval = %q, want 5min", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Meta Data": {"3. Last Refreshed": "2024-01-03 16:00:00"},
			"Time Series (5min)": {"2024-01-03 16:00:00": {"4. close": "10.00"}}
		}`))
	}))
	defer srv.Close()

	if _, _, err := testClient(srv.URL).TimeSeries(context.Background(), "AAPL", IntervalIntraday); err != nil {
		t.Fatalf("TimeSeries: %v", err)
	}
}

func TestTimeSeriesInvalidInterval(t *testing.T) {
	_, _, err := testClient("http://localhost").TimeSeries(context.Background(), "AAPL", Interval("yearly"))

	var invalid *InvalidIntervalError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidIntervalError", err)
	}
	if invalid.Interval != Interval("yearly") {
		t.Fatalf("invalid interval = %q", invalid.Interval)
	}
}

func TestTimeSeriesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Error Message": "Invalid API call"}`))
	}))
	defer srv.Close()

	_, _, err := testClient(srv.URL).TimeSeries(context.Background(), "NOPE", IntervalDaily)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Message != "Invalid API call" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestTimeSeriesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var apiErr *APIError
	_, _, err := testClient(srv.URL).TimeSeries(context.Background(), "AAPL", IntervalDaily)
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("err = %v, want APIError with status 503", err)
	}
}

func TestTimeSeriesEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Meta Data": {}, "Time Series (Daily)": {}}`))
	}))
	defer srv.Close()

	var empty *EmptyDataError
	_, _, err := testClient(srv.URL).TimeSeries(context.Background(), "AAPL", IntervalDaily)
	if !errors.As(err, &empty) {
		t.Fatalf("err = %v, want EmptyDataError", err)
	}
	if empty.Symbol != "AAPL" {
		t.Fatalf("symbol = %q", empty.Symbol)
	}
}

func TestCryptoSeriesUsesMarketCloseKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "DIGITAL_CURRENCY_DAILY" {
			t.Fatalf("function = %q", got)
		}
		if got := r.URL.Query().Get("market"); got != "USD" {
			t.Fatalf("market = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Meta Data": {"6. Last Refreshed": "2024-01-03 00:00:00"},
			"Time Series (Digital Currency Daily)": {
				"2024-01-02": {"4a. close (USD)": "42000.10", "4b. close (EUR)": "39000.00"},
				"2024-01-03": {"4a. close (USD)": "43000.50", "4b. close (EUR)": "40000.00"}
			}
		}`))
	}))
	defer srv.Close()

	series, _, err := testClient(srv.URL).CryptoSeries(context.Background(), "BTC", "USD")
	if err != nil {
		t.Fatalf("CryptoSeries: %v", err)
	}
	if got := series["2024-01-03"].StringFixed(2); got != "43000.50" {
		t.Fatalf("close = %s, want the USD value", got)
	}
}

func TestExchangeRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Realtime Currency Exchange Rate": {
				"5. Exchange Rate": "44123.45000000",
				"6. Last Refreshed": "2024-01-04 12:34:56"
			}
		}`))
	}))
	defer srv.Close()

	rate, refreshed, err := testClient(srv.URL).ExchangeRate(context.Background(), "BTC", "USD")
	if err != nil {
		t.Fatalf("ExchangeRate: %v", err)
	}
	if got := rate.StringFixed(2); got != "44123.45" {
		t.Fatalf("rate = %s", got)
	}
	if refreshed != "2024-01-04 12:34:56" {
		t.Fatalf("refreshed = %q", refreshed)
	}
}
