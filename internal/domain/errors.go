package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrAuth          = errors.New("authentication error")
	ErrAPI           = errors.New("api error")
	ErrTransport     = errors.New("transport error")
)

// ValidationError reports malformed input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// APIError is an upstream response with status >= 400. Body is truncated.
type APIError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amadeus: %s %s status=%d body=%s", e.Method, e.URL, e.Status, e.Body)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// AuthError wraps a failed token exchange.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("amadeus auth: %s: %v", e.Reason, e.Err)
	}
	return "amadeus auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// TransportError is returned once every attempt failed at the transport level.
// It unwraps to the error of the last attempt.
type TransportError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("amadeus: %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
