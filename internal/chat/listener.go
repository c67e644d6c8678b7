package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const reconnectDelay = 5 * time.Second

// Message is one inbound chat message.
type Message struct {
	Text    string
	Channel string
	User    string
	TS      string
}

// MessageHandler consumes one inbound chat message.
type MessageHandler func(ctx context.Context, msg Message)

// ListenerOptions parameterise the Socket Mode listener.
type ListenerOptions struct {
	AppToken string
	APIBase  string
	Timeout  time.Duration
}

// Listener receives chat events over a Slack Socket Mode connection.
type Listener struct {
	opts    ListenerOptions
	baseURL string
	client  *http.Client
	dialer  *websocket.Dialer
	logger  zerolog.Logger
}

// NewListener constructs a Socket Mode listener.
func NewListener(opts ListenerOptions, logger zerolog.Logger) *Listener {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.APIBase, "/")
	if baseURL == "" {
		baseURL = "https://slack.com/api"
	}

	return &Listener{
		opts:    opts,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		dialer:  websocket.DefaultDialer,
		logger:  logger.With().Str("component", "chat_listener").Logger(),
	}
}

// socketEnvelope is one Socket Mode frame.
type socketEnvelope struct {
	Type       string          `json:"type"`
	EnvelopeID string          `json:"envelope_id"`
	Payload    json.RawMessage `json:"payload"`
}

type eventsPayload struct {
	Event struct {
		Type    string `json:"type"`
		Subtype string `json:"subtype"`
		Text    string `json:"text"`
		Channel string `json:"channel"`
		User    string `json:"user"`
		TS      string `json:"ts"`
	} `json:"event"`
}

// Listen blocks, delivering message events to the handler until ctx is
// cancelled. Connections are re-established after server-side disconnects
// and transport failures.
func (l *Listener) Listen(ctx context.Context, handler MessageHandler) error {
	if l.opts.AppToken == "" {
		return errors.New("chat app token not configured")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := l.runConnection(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			// Server asked for a refresh; reconnect immediately.
			continue
		}

		l.logger.Warn().Err(err).Msg("socket connection lost, reconnecting")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) runConnection(ctx context.Context, handler MessageHandler) error {
	wsURL, err := l.openConnection(ctx)
	if err != nil {
		return err
	}

	conn, resp, err := l.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial socket url: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Unblock the read loop when ctx is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var env socketEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			return fmt.Errorf("read socket frame: %w", err)
		}

		switch env.Type {
		case "hello":
			l.logger.Info().Msg("socket mode connection established")
		case "disconnect":
			l.logger.Info().Msg("server requested reconnect")
			return nil
		case "events_api":
			if env.EnvelopeID != "" {
				ack := map[string]string{"envelope_id": env.EnvelopeID}
				if err := conn.WriteJSON(ack); err != nil {
					return fmt.Errorf("ack envelope: %w", err)
				}
			}

			var payload eventsPayload
			if err := json.Unmarshal(env.Payload, &payload); err != nil {
				l.logger.Warn().Err(err).Msg("undecodable events payload")
				continue
			}

			ev := payload.Event
			if ev.Type != "message" || ev.Subtype != "" || ev.Text == "" {
				continue
			}

			l.logger.Info().Str("channel", ev.Channel).Msg("received chat message")
			handler(ctx, Message{Text: ev.Text, Channel: ev.Channel, User: ev.User, TS: ev.TS})
		}
	}
}

// openConnection requests a fresh Socket Mode websocket URL.
func (l *Listener) openConnection(ctx context.Context) (string, error) {
	url := l.baseURL + "/apps.connections.open"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("create connection request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+l.opts.AppToken)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("open socket connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("connections.open returned status %d", resp.StatusCode)
	}

	var result struct {
		OK    bool   `json:"ok"`
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode connections.open response: %w", err)
	}
	if !result.OK || result.URL == "" {
		return "", fmt.Errorf("connections.open failed: %s", result.Error)
	}

	return result.URL, nil
}
