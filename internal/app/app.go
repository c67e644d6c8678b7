package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"stockbot/internal/bot"
	"stockbot/internal/chat"
	"stockbot/internal/config"
	"stockbot/internal/intent"
	"stockbot/internal/marketdata"
	"stockbot/internal/quote"
	"stockbot/internal/render"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newProvider() marketdata.Provider {
	return marketdata.NewClient(marketdata.Options{
		APIKey:    a.Config.MarketData.APIKey,
		BaseURL:   a.Config.MarketData.BaseURL,
		Timeout:   a.Config.MarketData.RequestTimeout,
		UserAgent: a.Config.MarketData.UserAgent,
	}, a.Logger)
}

func (a *App) newQuotes() *quote.Service {
	return quote.NewService(
		a.newProvider(),
		a.Config.MarketData.CryptoSymbol,
		a.Config.MarketData.CryptoMarket,
		a.Logger,
	)
}

func (a *App) newHandler() *bot.Handler {
	extractor := intent.NewExtractor(a.Logger)

	sender := chat.NewSlackSender(chat.SlackOptions{
		BotToken: a.Config.Slack.BotToken,
		APIBase:  a.Config.Slack.APIBase,
	}, a.Logger)

	dispatcher := render.NewHTTPDispatcher(render.HTTPOptions{
		Endpoint:  a.Config.Render.Endpoint,
		Timeout:   a.Config.Render.RequestTimeout,
		UserAgent: a.Config.MarketData.UserAgent,
	}, a.Logger)

	return bot.NewHandler(extractor, a.newQuotes(), sender, dispatcher, a.Logger)
}

// Run starts the chat event listener and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	handler := a.newHandler()
	listener := chat.NewListener(chat.ListenerOptions{
		AppToken: a.Config.Slack.AppToken,
		APIBase:  a.Config.Slack.APIBase,
	}, a.Logger)

	a.Logger.Info().Msg("starting chat listener")
	err := listener.Listen(ctx, func(ctx context.Context, msg chat.Message) {
		if err := handler.HandleMessage(ctx, msg.Channel, msg.Text); err != nil {
			a.Logger.Error().Err(err).Str("channel", msg.Channel).Msg("message handling failed")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("chat listener terminated with error")
		return err
	}

	a.Logger.Info().Msg("chat listener stopped")
	return nil
}

// HandleEvent processes a single raw event envelope, mirroring one
// inbound invocation of the bot.
func (a *App) HandleEvent(ctx context.Context, raw []byte) error {
	ev, err := bot.ParseEnvelope(raw)
	if err != nil {
		return err
	}
	return a.newHandler().HandleMessage(ctx, ev.Channel, ev.Text)
}
