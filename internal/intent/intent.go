package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"stockbot/internal/marketdata"
)

// Kind classifies what an inbound message is asking for.
type Kind int

const (
	KindNone Kind = iota
	KindStock
	KindCrypto
)

// Intent is the outcome of inspecting one message.
type Intent struct {
	Kind   Kind
	Ticker string
}

// Interval pairs a trailing window length with a sampling granularity.
type Interval struct {
	Length int
	Unit   marketdata.Interval
}

var (
	tickerPattern   = regexp.MustCompile(`\$(\w{1,8})`)
	cryptoPattern   = regexp.MustCompile(`(?i)\b(bitcoin|btc)\b`)
	intervalPattern = regexp.MustCompile(`(\d{1,3})([a-z]+)`)
)

const bitcoinSign = "₿"

// Extractor derives intents and intervals from raw message text.
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor constructs an Extractor.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger.With().Str("component", "intent").Logger()}
}

// Detect classifies the message. A $ticker always wins over a crypto
// mention when both appear in the same message.
func (e *Extractor) Detect(text string) Intent {
	if m := tickerPattern.FindStringSubmatch(text); m != nil {
		ticker := strings.ToUpper(m[1])
		e.logger.Info().Str("ticker", ticker).Msg("found stock symbol")
		return Intent{Kind: KindStock, Ticker: ticker}
	}

	if cryptoPattern.MatchString(text) || strings.Contains(text, bitcoinSign) {
		e.logger.Info().Msg("found cryptocurrency mention")
		return Intent{Kind: KindCrypto}
	}

	return Intent{Kind: KindNone}
}

// FindInterval looks for a window length followed by a unit word, such as
// "14days". An unrecognized unit word degrades to intraday with a warning;
// a bad length is treated as no interval at all.
func (e *Extractor) FindInterval(text string) (Interval, bool) {
	m := intervalPattern.FindStringSubmatch(text)
	if m == nil {
		return Interval{}, false
	}

	length, err := strconv.Atoi(m[1])
	if err != nil {
		e.logger.Warn().Err(err).Str("length", m[1]).Msg("invalid interval length")
		return Interval{}, false
	}

	unit := e.toUnit(m[2])
	e.logger.Info().Int("length", length).Str("unit", unit.String()).Msg("found interval")
	return Interval{Length: length, Unit: unit}, true
}

func (e *Extractor) toUnit(term string) marketdata.Interval {
	switch strings.ToLower(term) {
	case "days":
		return marketdata.IntervalDaily
	case "weeks":
		return marketdata.IntervalWeekly
	case "months":
		return marketdata.IntervalMonthly
	}

	e.logger.Warn().Str("term", term).Msg("no such interval term, returning intraday")
	return marketdata.IntervalIntraday
}
