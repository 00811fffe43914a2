package synthex

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-openapi/runtime"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://compute.tanaos.com"

	defaultTimeout = 30 * time.Second
)

// API endpoints, relative to the base URL.
const (
	pingEndpoint               = ""
	listJobsEndpoint           = "jobs"
	createJobEndpoint          = "jobs/create-with-samples"
	currentUserEndpoint        = "users/me"
	promotionalCreditsEndpoint = "credits/promotional"
)

// Client is the Synthex API client.
//
// A Client holds one authenticated session. It is immutable after
// [NewClient] returns and safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL       string
	apiKey        string
	authScheme    AuthScheme
	userAgent     string
	httpClient    *http.Client
	timeout       time.Duration
	streamTimeout time.Duration
	logger        *zap.Logger
	registerer    prometheus.Registerer
	metrics       *metrics

	// Jobs lists jobs and submits data generation jobs.
	Jobs *JobsService

	// Users reads the authenticated user's profile.
	Users *UsersService

	// Credits reads credit balances.
	Credits *CreditsService
}

// NewClient creates a new Synthex client authenticated with apiKey.
//
// It returns a [KindConfiguration] error when apiKey is empty or the
// base URL is not an absolute http(s) URL.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		authScheme: AuthBearer,
		userAgent:  "synthex-go/" + Version,
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if strings.TrimSpace(c.apiKey) == "" {
		return nil, newError(KindConfiguration, "API key is required", 0, nil)
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, newError(KindConfiguration, "invalid base URL", 0, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, newError(KindConfiguration, "base URL must be an absolute http(s) URL: "+c.baseURL, 0, nil)
	}

	if c.registerer != nil {
		m, err := newMetrics(c.registerer)
		if err != nil {
			return nil, newError(KindConfiguration, "failed to register metrics", 0, err)
		}
		c.metrics = m
	}

	c.Jobs = &JobsService{client: c}
	c.Users = &UsersService{client: c}
	c.Credits = &CreditsService{client: c}

	return c, nil
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpointURL joins endpoint onto the base URL with exactly one slash
// between them, whatever slashes either side carries.
func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, newError(KindValidation, "failed to encode request body", 0, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint, query), reader)
	if err != nil {
		return nil, newError(KindConfiguration, "failed to create request", 0, err)
	}

	req.Header.Set("Accept", runtime.JSONMime)
	if body != nil {
		req.Header.Set("Content-Type", runtime.JSONMime)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	switch c.authScheme {
	case AuthAPIKey:
		req.Header.Set("X-API-Key", c.apiKey)
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

// send executes req and maps failure statuses. On success the caller owns
// resp.Body. Transport errors are returned unchanged.
func (c *Client) send(req *http.Request, endpoint string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		c.metrics.observe(endpoint, req.Method, 0, start)
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", req.Header.Get("X-Request-ID")),
			zap.Error(err),
		)
		return nil, err
	}

	c.metrics.observe(endpoint, req.Method, resp.StatusCode, start)
	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Duration("duration", time.Since(start)),
	)

	if apiErr := checkForError(resp, endpoint); apiErr != nil {
		_ = resp.Body.Close()
		return nil, apiErr
	}
	return resp, nil
}

// request issues a buffered call and returns the fully read response body.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Response, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, nil, err
	}
	resp, err := c.send(req, endpoint)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, data, nil
}

// requestStream opens a call whose body is read incrementally by the
// caller. The response has already passed the error mapper.
func (c *Client) requestStream(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, endpoint, nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	return c.send(req, endpoint)
}

// Get sends a GET request to endpoint and returns the raw response body.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	_, data, err := c.request(ctx, http.MethodGet, endpoint, query, nil)
	return data, err
}

// Post sends body as JSON to endpoint and returns the raw response body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) ([]byte, error) {
	_, data, err := c.request(ctx, http.MethodPost, endpoint, nil, body)
	return data, err
}

// Put sends body as JSON to endpoint and returns the raw response body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) ([]byte, error) {
	_, data, err := c.request(ctx, http.MethodPut, endpoint, nil, body)
	return data, err
}

// Delete sends a DELETE request to endpoint. It reports true when the
// server answers 200 OK.
func (c *Client) Delete(ctx context.Context, endpoint string) (bool, error) {
	resp, _, err := c.request(ctx, http.MethodDelete, endpoint, nil, nil)
	if err != nil {
		return false, err
	}
	return resp.StatusCode == http.StatusOK, nil
}
