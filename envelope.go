package synthex

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SuccessResponse is the envelope wrapping every non-streaming response.
type SuccessResponse[T any] struct {
	StatusCode int     `json:"status_code"`
	Status     string  `json:"status"`
	Message    *string `json:"message,omitempty"`
	Data       *T      `json:"data,omitempty"`
}

// MessageText returns the envelope message, or "" when absent.
func (r *SuccessResponse[T]) MessageText() string {
	return swag.StringValue(r.Message)
}

var envelopeKeys = map[string]bool{
	"status_code": true,
	"status":      true,
	"message":     true,
	"data":        true,
}

// validatable is implemented by models that check string formats after decoding.
type validatable interface {
	Validate(formats strfmt.Registry) error
}

// decodeEnvelope decodes raw as a [SuccessResponse]. Unknown top-level keys,
// a missing status_code or status, or data on a non-success envelope are
// all reported as a [*DecodeError].
func decodeEnvelope[T any](endpoint string, raw []byte) (*SuccessResponse[T], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "body is not a JSON object", Cause: err}
	}
	for k := range fields {
		if !envelopeKeys[k] {
			return nil, &DecodeError{Endpoint: endpoint, Reason: "unexpected key " + k}
		}
	}
	for _, k := range []string{"status_code", "status"} {
		if _, ok := fields[k]; !ok {
			return nil, &DecodeError{Endpoint: endpoint, Reason: "missing key " + k}
		}
	}

	env := &SuccessResponse[T]{}
	if err := json.Unmarshal(fields["status_code"], &env.StatusCode); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid status_code", Cause: err}
	}
	if err := json.Unmarshal(fields["status"], &env.Status); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid status", Cause: err}
	}
	if m, ok := fields["message"]; ok && !isNull(m) {
		var msg string
		if err := json.Unmarshal(m, &msg); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid message", Cause: err}
		}
		env.Message = &msg
	}
	if d, ok := fields["data"]; ok && !isNull(d) {
		if env.Status != StatusSuccess {
			return nil, &DecodeError{Endpoint: endpoint, Reason: "data present on " + env.Status + " envelope"}
		}
		var data T
		if err := json.Unmarshal(d, &data); err != nil {
			return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid data", Cause: err}
		}
		if v, ok := any(&data).(validatable); ok {
			if err := v.Validate(strfmt.Default); err != nil {
				return nil, &DecodeError{Endpoint: endpoint, Reason: "invalid data", Cause: err}
			}
		}
		env.Data = &data
	}
	return env, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// getData issues a GET to endpoint and returns the envelope payload.
func getData[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (*T, error) {
	_, raw, err := c.request(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[T](endpoint, raw)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: "envelope has no data"}
	}
	return env.Data, nil
}
