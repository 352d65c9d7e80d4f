package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any *RequestError carrying a 401. It drives the
// forced-logout path in the dashboard.
var ErrUnauthorized = errors.New("api: unauthorized")

// AuthError is a failed login: either the endpoint rejected the credentials
// or it was unreachable. Message carries the server's "message" field when
// the response body had one.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return "login failed: " + e.Message
	}
	if e.Err != nil {
		return "login failed: " + e.Err.Error()
	}
	return "login failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError is any non-2xx response or transport failure outside the
// login flow. 4xx and 5xx are deliberately not distinguished; the caller's
// only recovery is to leave state as-is and let the operator retry.
type RequestError struct {
	Op     string
	Method string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned %d", e.Op, e.Method, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
