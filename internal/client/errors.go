package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Error string

const (
	ErrNoConnection    = Error("no connection to the assisted installer")
	ErrNotFound        = Error("resource not found")
	ErrInvalidID       = Error("invalid resource id")
	ErrInvalidEndpoint = Error("invalid endpoint")
	ErrConflict        = Error("request conflicts with the resource state")
)

func (e Error) Error() string {
	return string(e)
}

// APIError is a non 2xx response from the backend.
type APIError struct {
	StatusCode int
	Code       string
	Reason     string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Reason
}

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	default:
		return false
	}
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

type errorBody struct {
	Code   any    `json:"code"`
	Reason string `json:"reason"`
}

func decodeAPIError(status int, body []byte) *APIError {
	e := APIError{StatusCode: status}
	var b errorBody
	if err := json.Unmarshal(body, &b); err == nil {
		e.Reason = b.Reason
		if b.Code != nil {
			e.Code = fmt.Sprint(b.Code)
		}
	}

	return &e
}

// Message returns the text to show for err, preferring the backend reason.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !errors.Is(err, ErrInvalidID)
}
