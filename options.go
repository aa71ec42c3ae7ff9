package enso

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. to change the request
// timeout or inject a transport.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// WithBaseURL overrides the API address. Useful for proxies and tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit caps outgoing requests at rps requests per second with
// the given burst. Requests wait for a token before being sent; the wait
// is bounded by each call's context.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets a structured logger. Requests are logged at debug
// level. The default discards everything.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}
