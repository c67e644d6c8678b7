package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher forwards a graph payload for out-of-band rendering. The call
// is fire-and-forget: the rendered chart is delivered by the collaborator,
// and only the dispatch acknowledgment is observed here.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload Payload) error
}

// HTTPOptions parameterise the HTTP dispatcher.
type HTTPOptions struct {
	Endpoint  string
	Timeout   time.Duration
	UserAgent string
}

// HTTPDispatcher posts render jobs to a remote rendering endpoint.
type HTTPDispatcher struct {
	opts   HTTPOptions
	logger zerolog.Logger
	client *http.Client
}

// NewHTTPDispatcher constructs an HTTP render dispatcher.
func NewHTTPDispatcher(opts HTTPOptions, logger zerolog.Logger) *HTTPDispatcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPDispatcher{
		opts:   opts,
		logger: logger.With().Str("component", "render_dispatcher").Logger(),
		client: &http.Client{Timeout: timeout},
	}
}

// Dispatch enqueues the payload with the rendering collaborator. The
// response body is not consumed; the acknowledgment status is logged only.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, payload Payload) error {
	if d.opts.Endpoint == "" {
		return errors.New("render endpoint not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal render payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ua := strings.TrimSpace(d.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send render request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("render endpoint returned status %d", resp.StatusCode)
	}

	d.logger.Info().
		Str("symbol", payload.Symbol).
		Str("channel", payload.Destination.Channel).
		Int("status", resp.StatusCode).
		Msg("render job dispatched")
	return nil
}

var _ Dispatcher = (*HTTPDispatcher)(nil)
