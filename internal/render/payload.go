package render

import (
	"fmt"

	"stockbot/internal/marketdata"
	"stockbot/internal/quote"
)

// Destination routes the rendered chart back to a chat channel.
type Destination struct {
	Channel string `json:"channel"`
}

// Graph describes the chart the renderer should draw.
type Graph struct {
	XAxis  []string  `json:"xaxis"`
	YAxis  []float64 `json:"yaxis"`
	Title  string    `json:"title"`
	XLabel string    `json:"xlabel"`
	YLabel string    `json:"ylabel"`
}

// Payload is the message forwarded to the rendering collaborator.
type Payload struct {
	Symbol      string      `json:"symbol"`
	Date        string      `json:"date"`
	Graph       Graph       `json:"graph"`
	MessageText string      `json:"message_text"`
	Destination Destination `json:"destination"`
	Interval    string      `json:"interval"`
}

// BuildPayload assembles the render request for a quote. The interval field
// reads "<length><unit>" when an interval was parsed from the message,
// otherwise "intraday".
func BuildPayload(q *quote.Quote, channel, message string, length int, unit marketdata.Interval) Payload {
	yaxis := make([]float64, len(q.Closes))
	for i, c := range q.Closes {
		yaxis[i] = c.InexactFloat64()
	}

	interval := "intraday"
	if length > 0 && unit != "" {
		interval = fmt.Sprintf("%d%s", length, unit)
	}

	return Payload{
		Symbol: q.Symbol,
		Date:   q.LastRefreshed,
		Graph: Graph{
			XAxis:  q.Dates,
			YAxis:  yaxis,
			Title:  fmt.Sprintf("%s (%s - %s)", q.Symbol, q.DateRange.Start, q.DateRange.End),
			XLabel: "Time",
			YLabel: q.CurrencyLabel,
		},
		MessageText: message,
		Destination: Destination{Channel: channel},
		Interval:    interval,
	}
}
