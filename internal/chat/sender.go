package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sender posts a message to a chat channel.
type Sender interface {
	Send(ctx context.Context, channel, text string) error
}

// SlackOptions parameterise the Slack sender.
type SlackOptions struct {
	BotToken string
	APIBase  string
	Timeout  time.Duration
}

// SlackSender posts messages through the Slack Web API.
type SlackSender struct {
	opts    SlackOptions
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewSlackSender constructs a Slack chat sender.
func NewSlackSender(opts SlackOptions, logger zerolog.Logger) *SlackSender {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.APIBase, "/")
	if baseURL == "" {
		baseURL = "https://slack.com/api"
	}

	return &SlackSender{
		opts:    opts,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "chat_sender").Logger(),
	}
}

// Send posts a chat.postMessage call for the given channel.
func (s *SlackSender) Send(ctx context.Context, channel, text string) error {
	payload := map[string]string{
		"channel": channel,
		"text":    text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal chat payload: %w", err)
	}

	url := s.baseURL + "/chat.postMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.opts.BotToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat api returned status %d", resp.StatusCode)
	}

	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("chat api error: %s", result.Error)
		}
	}

	s.logger.Info().Str("channel", channel).Msg("chat message sent")
	return nil
}

var _ Sender = (*SlackSender)(nil)
