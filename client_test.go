package synthex_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanaos/synthex-go"
	"github.com/tanaos/synthex-go/internal/mockapi"
)

const testAPIKey = "test-api-key"

// mustEncode encodes v as JSON and writes it to w.
// Panics on error - safe in tests since errors indicate test bugs.
func mustEncode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// newTestClient creates a client against baseURL or fails the test.
func newTestClient(t *testing.T, baseURL string, opts ...synthex.Option) *synthex.Client {
	t.Helper()
	client, err := synthex.NewClient(testAPIKey, append([]synthex.Option{synthex.WithBaseURL(baseURL)}, opts...)...)
	require.NoError(t, err)
	return client
}

// TestNewClient_Configuration tests that missing settings are configuration errors.
func TestNewClient_Configuration(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		opts   []synthex.Option
	}{
		{name: "empty key", apiKey: ""},
		{name: "blank key", apiKey: "   "},
		{name: "relative base URL", apiKey: "k", opts: []synthex.Option{synthex.WithBaseURL("/api")}},
		{name: "unsupported scheme", apiKey: "k", opts: []synthex.Option{synthex.WithBaseURL("ftp://example.com")}},
		{name: "unparsable base URL", apiKey: "k", opts: []synthex.Option{synthex.WithBaseURL("http://[::1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := synthex.NewClient(tt.apiKey, tt.opts...)
			assert.Nil(t, client)
			require.Error(t, err)
			assert.True(t, errors.Is(err, synthex.ErrConfiguration))
		})
	}
}

// TestNewClient_Defaults tests the default base URL and service wiring.
func TestNewClient_Defaults(t *testing.T) {
	client, err := synthex.NewClient(testAPIKey)

	require.NoError(t, err)
	assert.Equal(t, synthex.DefaultBaseURL, client.BaseURL())
	assert.NotNil(t, client.Jobs)
	assert.NotNil(t, client.Users)
	assert.NotNil(t, client.Credits)
}

// TestClient_Headers tests the auth, accept, user agent and request id headers.
func TestClient_Headers(t *testing.T) {
	server := mockapi.New(t, testAPIKey)

	client := newTestClient(t, server.URL, synthex.WithUserAgent("test-agent/1.0"))
	require.True(t, client.Ping(context.Background()))

	h := server.LastHeaders()
	assert.Equal(t, "Bearer "+testAPIKey, h.Get("Authorization"))
	assert.Empty(t, h.Get("X-API-Key"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Equal(t, "test-agent/1.0", h.Get("User-Agent"))
	_, err := uuid.Parse(h.Get("X-Request-ID"))
	assert.NoError(t, err)
}

// TestClient_APIKeyScheme tests the X-API-Key header variant.
func TestClient_APIKeyScheme(t *testing.T) {
	server := mockapi.New(t, testAPIKey)

	client := newTestClient(t, server.URL, synthex.WithAuthScheme(synthex.AuthAPIKey))
	require.True(t, client.Ping(context.Background()))

	h := server.LastHeaders()
	assert.Equal(t, testAPIKey, h.Get("X-API-Key"))
	assert.Empty(t, h.Get("Authorization"))
}

// TestClient_URLJoining tests that exactly one slash separates base URL and endpoint.
func TestClient_URLJoining(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		mustEncode(w, map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	ctx := context.Background()
	for _, base := range []string{server.URL + "/api/v1", server.URL + "/api/v1/", server.URL + "/api/v1//"} {
		client := newTestClient(t, base)
		for _, endpoint := range []string{"jobs", "/jobs", "//jobs"} {
			_, err := client.Get(ctx, endpoint, nil)
			require.NoError(t, err)
		}
	}

	require.Len(t, paths, 9)
	for _, p := range paths {
		assert.Equal(t, "/api/v1/jobs", p)
	}
}

// TestClient_Verbs tests the raw GET/POST/PUT/DELETE helpers.
func TestClient_Verbs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			mustEncode(w, map[string]string{"method": "get"})
		case http.MethodPost, http.MethodPut:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			mustEncode(w, body)
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	got, err := client.Get(ctx, "items", url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"method":"get"}`, string(got))

	got, err = client.Post(ctx, "items", map[string]string{"name": "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a"}`, string(got))

	got, err = client.Put(ctx, "items", map[string]string{"name": "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"b"}`, string(got))

	ok, err := client.Delete(ctx, "items")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestClient_DeleteNoContent tests that a 204 delete succeeds but reports false.
func TestClient_DeleteNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ok, err := newTestClient(t, server.URL).Delete(context.Background(), "items/1")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestClient_ErrorStatus tests that raw helpers map failure statuses.
func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		mustEncode(w, map[string]string{"error": "maintenance"})
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Get(context.Background(), "jobs", nil)

	apiErr := requireKind(t, err, synthex.KindServer)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "jobs", apiErr.Endpoint)
	assert.Equal(t, map[string]interface{}{"error": "maintenance"}, apiErr.Details)
}

// TestClient_TransportErrorUnchanged tests that network failures are not wrapped in *Error.
func TestClient_TransportErrorUnchanged(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := newTestClient(t, baseURL).Get(context.Background(), "jobs", nil)

	require.Error(t, err)
	var apiErr *synthex.Error
	assert.False(t, errors.As(err, &apiErr))
	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
}

// TestClient_Timeout tests that the buffered request timeout applies.
func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, synthex.WithTimeout(50*time.Millisecond))
	_, err := client.Get(context.Background(), "slow", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestPing tests that ping reports true on 2xx and false otherwise, never failing.
func TestPing(t *testing.T) {
	for _, status := range []int{200, 201, 204} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/", r.URL.Path)
			w.WriteHeader(status)
		}))
		assert.True(t, newTestClient(t, server.URL).Ping(context.Background()), "status %d", status)
		server.Close()
	}

	for _, status := range []int{400, 401, 404, 429, 500, 503} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			mustEncode(w, map[string]string{"message": "Failure"})
		}))
		assert.False(t, newTestClient(t, server.URL).Ping(context.Background()), "status %d", status)
		server.Close()
	}
}

// TestPing_Unreachable tests that connection failures report false.
func TestPing_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	assert.False(t, newTestClient(t, baseURL).Ping(context.Background()))
}

// TestWithHTTPClient_Nil tests that a nil HTTP client keeps the default one.
func TestWithHTTPClient_Nil(t *testing.T) {
	server := mockapi.New(t, testAPIKey)

	client := newTestClient(t, server.URL, synthex.WithHTTPClient(nil))

	assert.NotPanics(t, func() {
		assert.True(t, client.Ping(context.Background()))
	})
}

// TestPing_WrongKey tests that an unauthorized ping reports false.
func TestPing_WrongKey(t *testing.T) {
	server := mockapi.New(t, "another-key")

	assert.False(t, newTestClient(t, server.URL).Ping(context.Background()))
}
