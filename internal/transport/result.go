package transport

import (
	"encoding/json"

	"github.com/simp-lee/forumclient/internal/domain"
)

// Result is the uniform envelope every service call resolves to. Expected
// failures (HTTP errors, network errors, cancellation) never cross the
// service boundary as Go errors; they arrive here with Success=false.
// Callers must check Success before reading Data.
type Result[T any] struct {
	Success bool             `json:"success"`
	Data    T                `json:"data,omitempty"`
	Err     *domain.APIError `json:"error,omitempty"`
}

// OK wraps data in a successful result.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps an APIError in a failed result.
func Fail[T any](err *domain.APIError) Result[T] {
	if err == nil {
		err = domain.NewAPIError(domain.CodeUnknown, "unknown error")
	}
	return Result[T]{Success: false, Err: err}
}

// FailFrom propagates the error of another result into a result of a
// different payload type. Panics if r succeeded.
func FailFrom[T, U any](r Result[U]) Result[T] {
	if r.Success {
		panic("transport.FailFrom: result is successful")
	}
	return Fail[T](r.Err)
}

// Ack collapses a raw result into an empty acknowledgement, for endpoints
// whose response body carries nothing the client needs.
func Ack(r Result[json.RawMessage]) Result[struct{}] {
	if !r.Success {
		return FailFrom[struct{}](r)
	}
	return OK(struct{}{})
}

// Error returns the envelope's error, or nil on success.
func (r Result[T]) Error() *domain.APIError {
	if r.Success {
		return nil
	}
	return r.Err
}

// Decode unmarshals a raw envelope's payload into T. A decoding failure is
// an unexpected-shape condition and maps to UNKNOWN_ERROR, honoring the
// never-throw contract of the service boundary.
func Decode[T any](r Result[json.RawMessage]) Result[T] {
	if !r.Success {
		return FailFrom[T](r)
	}
	var data T
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return Fail[T](domain.NewAPIError(domain.CodeUnknown, "unexpected response shape: "+err.Error()))
		}
	}
	return OK(data)
}
