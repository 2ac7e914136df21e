package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error codes returned by the transport and exposed through result envelopes.
// HTTP failures use the dynamic form "HTTP_ERROR_<status>" (see HTTPErrorCode).
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNetworkError = "NETWORK_ERROR"
	CodeAborted      = "REQUEST_ABORTED"
	CodeUnknown      = "UNKNOWN_ERROR"

	httpErrorPrefix = "HTTP_ERROR_"
)

// APIError is the error carried inside a result envelope. Code identifies the
// failure class, Message is human-readable (the backend's {detail} field when
// available), and Details preserves the raw error body for callers that need it.
type APIError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// NewAPIError creates an APIError with the given code and message.
func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// HTTPErrorCode builds the code string for a non-2xx HTTP status,
// e.g. HTTPErrorCode(404) == "HTTP_ERROR_404".
func HTTPErrorCode(status int) string {
	return httpErrorPrefix + strconv.Itoa(status)
}

// HTTPStatus extracts the status from an HTTP_ERROR_<status> code.
// The second return value is false for non-HTTP error codes.
func HTTPStatus(err error) (int, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}
	rest, ok := strings.CutPrefix(apiErr.Code, httpErrorPrefix)
	if !ok {
		return 0, false
	}
	status, convErr := strconv.Atoi(rest)
	if convErr != nil {
		return 0, false
	}
	return status, true
}

// IsUnauthorized reports whether err is or wraps an APIError with CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsNetwork reports whether err is or wraps an APIError with CodeNetworkError.
func IsNetwork(err error) bool {
	return hasCode(err, CodeNetworkError)
}

// IsAborted reports whether err is or wraps an APIError with CodeAborted.
// Aborted requests are a consequence of explicit cancellation and are never
// surfaced to the user as failures.
func IsAborted(err error) bool {
	return hasCode(err, CodeAborted)
}

// IsConflict reports whether err is an HTTP 409 error. Reaction endpoints use
// 409 to signal "already reacted", which callers treat as a success no-op.
func IsConflict(err error) bool {
	status, ok := HTTPStatus(err)
	return ok && status == 409
}

// hasCode checks whether err is or wraps an *APIError with the given code.
func hasCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// errorBody matches the backend's error response shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// MessageFromBody extracts the backend's {detail} message from a raw error
// body, falling back to the given default when the body has none.
func MessageFromBody(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Detail) == "" {
		return fallback
	}
	return body.Detail
}

// HTTPError builds the APIError for a non-2xx response, mapping the backend's
// {detail} field into Message and keeping the parsed body as Details.
func HTTPError(status int, raw json.RawMessage) *APIError {
	return &APIError{
		Code:    HTTPErrorCode(status),
		Message: MessageFromBody(raw, fmt.Sprintf("HTTP error: %d", status)),
		Details: raw,
	}
}
