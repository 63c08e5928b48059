package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
)

const (
	msgCannotReach = "Cannot reach server"
	msgGeneric     = "Something went wrong"
)

// Error is the only error type that leaves this package. Message is always a
// human-readable string; Status is 0 when no response was received at all.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func transportError(cause error) *Error {
	return &Error{Status: 0, Message: msgCannotReach, cause: cause}
}

// normalizeError turns a non-2xx response into an Error. The message is taken
// from the body's "message" field, then the first entry of a validation
// "errors" array, then the HTTP status text.
func normalizeError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Errors  []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return &Error{Status: status, Message: payload.Message}
		}
		if len(payload.Errors) > 0 && payload.Errors[0].Msg != "" {
			return &Error{Status: status, Message: payload.Errors[0].Msg}
		}
	}
	if text := http.StatusText(status); text != "" {
		return &Error{Status: status, Message: text}
	}
	return &Error{Status: status, Message: msgGeneric}
}

// shouldFallback reports whether an error from the primary catalog is of a
// class the fallback catalog can recover from: no response at all, or the
// route not existing (404) or not being implemented (501). The loose variant
// additionally accepts 400, which the category listing needs.
func shouldFallback(err error, loose bool) bool {
	var ge *Error
	if !errors.As(err, &ge) {
		return false
	}
	switch ge.Status {
	case 0, http.StatusNotFound, http.StatusNotImplemented:
		return true
	case http.StatusBadRequest:
		return loose
	}
	return false
}
