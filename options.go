package synthex

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// AuthScheme selects how the API key is attached to requests.
type AuthScheme int

const (
	// AuthBearer sends "Authorization: Bearer <key>". This is the default.
	AuthBearer AuthScheme = iota

	// AuthAPIKey sends "X-API-Key: <key>".
	AuthAPIKey
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for buffered (non-streaming) requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithStreamTimeout bounds the total duration of a streaming job
// submission. Zero, the default, leaves the deadline to the caller's context.
func WithStreamTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.streamTimeout = d
	}
}

// WithHTTPClient sets a custom HTTP client. A nil client is ignored.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAuthScheme selects the header used to send the API key.
func WithAuthScheme(scheme AuthScheme) Option {
	return func(c *Client) {
		c.authScheme = scheme
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request and stream diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics registers request metrics with reg.
//
// Registration errors (for instance, registering two clients on the same
// registry) surface from [NewClient] as a configuration error.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}
