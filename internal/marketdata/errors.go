package marketdata

import "fmt"

// EmptyDataError indicates the provider returned no usable data points.
type EmptyDataError struct {
	Symbol string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("no time series data available for %s", e.Symbol)
}

// InvalidIntervalError indicates an interval outside the supported set.
type InvalidIntervalError struct {
	Interval Interval
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("%q is not a valid interval", string(e.Interval))
}

// APIError conveys a failure reported by the provider itself.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("market data api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("market data api error (%d)", e.Status)
}
