package synthex

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-openapi/runtime"
)

// maxErrorBodySize limits the size of error response bodies read from the server.
const maxErrorBodySize = 4096

// Kind classifies an [Error].
type Kind string

// Error kinds.
const (
	// KindAuthentication is returned for HTTP 401 (invalid or missing API key).
	KindAuthentication Kind = "AUTHENTICATION"

	// KindNotFound is returned for HTTP 404.
	KindNotFound Kind = "NOT_FOUND"

	// KindRateLimit is returned for HTTP 429.
	KindRateLimit Kind = "RATE_LIMIT"

	// KindServer is returned for any HTTP 5xx.
	KindServer Kind = "SERVER"

	// KindValidation is returned when caller input violates a documented
	// constraint. It is always raised before any network I/O.
	KindValidation Kind = "VALIDATION"

	// KindConfiguration is returned when a required setting is missing or malformed.
	KindConfiguration Kind = "CONFIGURATION"

	// KindHTTP is returned for any other non-2xx status.
	KindHTTP Kind = "HTTP"
)

// Error represents a Synthex API error.
//
// Use [errors.As] to inspect it, or [errors.Is] against one of the
// sentinel values to test its kind:
//
//	if errors.Is(err, synthex.ErrRateLimit) {
//	    // back off
//	}
type Error struct {
	Kind    Kind
	Message string

	// Status is the HTTP status code, 0 for client-side errors.
	Status int

	// Endpoint is the API path that produced the error, if any.
	Endpoint string

	// Details is the decoded error body. It holds the parsed JSON value
	// when the body is valid JSON, and the raw text otherwise.
	Details any

	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Status != 0 {
		fmt.Fprintf(&b, "synthex: [%d] %s: %s", e.Status, e.Kind, e.Message)
	} else {
		fmt.Fprintf(&b, "synthex: %s: %s", e.Kind, e.Message)
	}
	if e.Endpoint != "" {
		fmt.Fprintf(&b, " (endpoint: %s)", e.Endpoint)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors. Compare with [errors.Is]; they match any error of the same kind.
var (
	ErrAuthentication = &Error{Kind: KindAuthentication, Message: "invalid credentials", Status: http.StatusUnauthorized}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "resource not found", Status: http.StatusNotFound}
	ErrRateLimit      = &Error{Kind: KindRateLimit, Message: "rate limit exceeded", Status: http.StatusTooManyRequests}
	ErrServer         = &Error{Kind: KindServer, Message: "server error", Status: http.StatusInternalServerError}
	ErrValidation     = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrConfiguration  = &Error{Kind: KindConfiguration, Message: "invalid configuration"}
)

func newError(kind Kind, message string, status int, cause error) *Error {
	return &Error{Kind: kind, Message: message, Status: status, Cause: cause}
}

func validationError(message string, cause error) *Error {
	return newError(KindValidation, message, 0, cause)
}

// checkForError maps a completed response onto an [*Error] by status code.
// It returns nil for any 2xx response. On error it consumes (up to
// maxErrorBodySize bytes of) the body and leaves closing it to the caller.
func checkForError(resp *http.Response, endpoint string) *Error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	e := &Error{
		Status:   resp.StatusCode,
		Endpoint: endpoint,
		Details:  errorDetails(body),
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		e.Kind, e.Message = KindAuthentication, "authentication failed"
	case resp.StatusCode == http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, "resource not found"
	case resp.StatusCode == http.StatusTooManyRequests:
		e.Kind, e.Message = KindRateLimit, "rate limit exceeded"
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		e.Kind, e.Message = KindServer, "server error"
	default:
		e.Kind = KindHTTP
		e.Message = fmt.Sprintf("request failed: %s", strings.TrimSpace(string(body)))
	}
	return e
}

// errorDetails returns body decoded as JSON, or the raw text when it is not JSON.
func errorDetails(body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var v any
	if err := runtime.JSONConsumer().Consume(bytes.NewReader(body), &v); err != nil {
		return string(body)
	}
	return v
}

// DecodeError reports a 2xx response whose body does not have the expected
// shape. It signals a contract violation between SDK and server and is
// never retriable. It is not an [*Error].
type DecodeError struct {
	Endpoint string
	Reason   string
	Cause    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("synthex: malformed response from %s: %s", e.Endpoint, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
