package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnavailable marks transport-level failures (server unreachable,
	// timeout). Retryable, and distinct from credential rejection.
	ErrUnavailable = errors.New("apierr: service unavailable")
)

// FieldError is a single validation failure attached to a named field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// APIError is the one error shape the rest of the client sees, regardless of
// which of the server's ad hoc error envelopes produced it.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field != "" {
			parts = append(parts, f.Field+": "+f.Message)
			continue
		}
		parts = append(parts, f.Message)
	}
	return fmt.Sprintf("api: %s (status %d): %s", e.Message, e.Status, strings.Join(parts, "; "))
}

// IsUnauthorized reports whether the server rejected the bearer credential.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsRetryable reports whether retrying the same request may succeed without
// any client-side change.
func (e *APIError) IsRetryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// wireError covers every error envelope the API has been observed to emit:
// {message}, {error: "..."}, {error: {message}}, and {errors: [...]} with
// entries that are either strings or {field, message} objects.
type wireError struct {
	Message string            `json:"message"`
	Error   json.RawMessage   `json:"error"`
	Errors  []json.RawMessage `json:"errors"`
}

// Decode maps a non-2xx response body into an APIError. It never fails: an
// unrecognized or empty body yields a generic message for the status.
func Decode(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var wire wireError
	if err := json.Unmarshal(body, &wire); err == nil {
		apiErr.Message = wire.Message

		if apiErr.Message == "" && len(wire.Error) > 0 {
			apiErr.Message = messageFromRaw(wire.Error)
		}

		for _, raw := range wire.Errors {
			if fe, ok := fieldErrorFromRaw(raw); ok {
				apiErr.Fields = append(apiErr.Fields, fe)
			}
		}
		if apiErr.Message == "" && len(apiErr.Fields) > 0 {
			apiErr.Message = apiErr.Fields[0].Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status %d", status)
	}
	return apiErr
}

// Unauthorized reports whether err represents a rejected bearer credential.
func Unauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}

// Retryable reports whether err is worth retrying as-is: either a transport
// failure or a server-side error status.
func Retryable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsRetryable()
}

func messageFromRaw(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}

func fieldErrorFromRaw(raw json.RawMessage) (FieldError, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return FieldError{Message: s}, true
	}
	var fe FieldError
	if err := json.Unmarshal(raw, &fe); err == nil && (fe.Message != "" || fe.Field != "") {
		if fe.Message == "" {
			fe.Message = "invalid value"
		}
		return fe, true
	}
	return FieldError{}, false
}
