package marketdata

// Interval is the sampling granularity of a time series.
type Interval string

const (
	IntervalIntraday Interval = "intraday"
	IntervalDaily    Interval = "daily"
	IntervalWeekly   Interval = "weekly"
	IntervalMonthly  Interval = "monthly"
)

// seriesFunctions maps each interval to the provider's function name.
// Lookups are bounds-checked; an interval outside this map is rejected
// with an InvalidIntervalError.
var seriesFunctions = map[Interval]string{
	IntervalIntraday: "TIME_SERIES_INTRADAY",
	IntervalDaily:    "TIME_SERIES_DAILY",
	IntervalWeekly:   "TIME_SERIES_WEEKLY",
	IntervalMonthly:  "TIME_SERIES_MONTHLY",
}

func (i Interval) String() string {
	return string(i)
}
