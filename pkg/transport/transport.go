// Package transport defines the HTTP transport collaborator contract
// and ships a net/http-backed default implementation.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Transport issues HTTP GET requests on behalf of the client. Headers
// are stateful: the client resets them and sets the authorization
// header before each request. A transport instance assumes one logical
// call at a time; concurrent callers must use separate instances.
type Transport interface {
	// ResetHeaders clears all configured request headers.
	ResetHeaders()

	// SetHeaders configures request headers, each as a "Name: value" line.
	SetHeaders(headers []string)

	// Get issues a GET request and returns the raw response body.
	Get(ctx context.Context, url string) (string, error)
}

// HTTPConfig holds the default transport configuration.
type HTTPConfig struct {
	// Timeout bounds each request, connection setup included.
	Timeout time.Duration
}

// DefaultHTTPConfig returns a safe default transport configuration.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout: 30 * time.Second,
	}
}

// HTTP is the default Transport built on net/http.
type HTTP struct {
	client  *http.Client
	headers []string
	logger  zerolog.Logger
}

// NewHTTP creates a transport with the given configuration.
func NewHTTP(cfg HTTPConfig) *HTTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultHTTPConfig().Timeout
	}
	return &HTTP{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log.With().Str("component", "transport").Logger(),
	}
}

// ResetHeaders clears all configured request headers.
func (t *HTTP) ResetHeaders() {
	t.headers = nil
}

// SetHeaders configures request headers, each as a "Name: value" line.
func (t *HTTP) SetHeaders(headers []string) {
	t.headers = headers
}

// Get issues a GET request and returns the raw response body. Error
// envelopes arrive with non-2xx status codes; the body is returned
// regardless of status so the parser can classify them.
func (t *HTTP) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for _, line := range t.headers {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		req.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error().Err(err).Str("url", url).Msg("HTTP request failed")
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	t.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("GET complete")

	return string(body), nil
}
