package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"stockbot/internal/chat"
	"stockbot/internal/intent"
	"stockbot/internal/marketdata"
	"stockbot/internal/quote"
	"stockbot/internal/render"
)

// Quoter builds quotes for detected intents.
type Quoter interface {
	Equity(ctx context.Context, symbol string, interval marketdata.Interval, window int) (*quote.Quote, error)
	Crypto(ctx context.Context, window int) (*quote.Quote, error)
	CryptoSymbol() string
}

const apologyText = "Sorry, I didn't spot a $ticker or bitcoin mention in that message."

// noGraphMarker suppresses the render dispatch; matched case-sensitively
// anywhere in the message.
const noGraphMarker = "nograph"

// Handler turns one inbound chat message into a reply or a render job.
type Handler struct {
	extractor  *intent.Extractor
	quoter     Quoter
	sender     chat.Sender
	dispatcher render.Dispatcher
	logger     zerolog.Logger
}

// NewHandler constructs a message handler.
func NewHandler(extractor *intent.Extractor, quoter Quoter, sender chat.Sender, dispatcher render.Dispatcher, logger zerolog.Logger) *Handler {
	return &Handler{
		extractor:  extractor,
		quoter:     quoter,
		sender:     sender,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "bot").Logger(),
	}
}

// HandleMessage processes one inbound chat message end to end. Quote
// failures become a chat reply naming the symbol; transport failures
// propagate to the caller.
func (h *Handler) HandleMessage(ctx context.Context, channel, text string) error {
	detected := h.extractor.Detect(text)
	if detected.Kind == intent.KindNone {
		h.logger.Info().Str("channel", channel).Msg("no ticker or crypto mention found")
		return h.sender.Send(ctx, channel, apologyText)
	}

	interval, hasInterval := h.extractor.FindInterval(text)

	symbol := detected.Ticker
	if detected.Kind == intent.KindCrypto {
		symbol = h.quoter.CryptoSymbol()
	}

	var (
		q   *quote.Quote
		err error
	)
	switch detected.Kind {
	case intent.KindStock:
		q, err = h.quoter.Equity(ctx, symbol, interval.Unit, interval.Length)
	case intent.KindCrypto:
		q, err = h.quoter.Crypto(ctx, interval.Length)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("symbol", symbol).Msg("error getting stock info")
		reply := fmt.Sprintf("Error getting stock info for %s: %s", symbol, err)
		return h.sender.Send(ctx, channel, reply)
	}

	message := ComposeReply(q)

	if strings.Contains(text, noGraphMarker) {
		h.logger.Info().Str("channel", channel).Msg("sending quote directly to chat")
		return h.sender.Send(ctx, channel, message)
	}

	length, unit := 0, marketdata.Interval("")
	if hasInterval {
		length, unit = interval.Length, interval.Unit
	}

	payload := render.BuildPayload(q, channel, message, length, unit)
	if err := h.dispatcher.Dispatch(ctx, payload); err != nil {
		return fmt.Errorf("dispatch render job: %w", err)
	}
	return nil
}

// ComposeReply formats the textual quote summary.
func ComposeReply(q *quote.Quote) string {
	return fmt.Sprintf(
		"Current Value for %s: %s Mean Value: %s (Range: %s - %s) (Last Refreshed: %s)",
		q.Symbol, q.CurrentValue, q.MeanValue, q.DateRange.Start, q.DateRange.End, q.LastRefreshed,
	)
}
