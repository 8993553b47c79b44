package bricklink

import (
	"errors"
	"fmt"
)

// Error kinds produced by the envelope pipeline. Match them with errors.Is.
var (
	ErrDecode           = errors.New("bricklink: decode error")
	ErrClient           = errors.New("bricklink: client error")
	ErrAuthentication   = errors.New("bricklink: authentication error")
	ErrNotFound         = errors.New("bricklink: not found")
	ErrServer           = errors.New("bricklink: server error")
	ErrRateLimited      = errors.New("bricklink: rate limit exceeded")
	ErrUnexpectedStatus = errors.New("bricklink: unexpected status")
	ErrRequest          = errors.New("bricklink: request error")
)

// APIError is a classified failure of a single store API call.
type APIError struct {
	Kind       error
	StatusCode int
	// Path is the resource path relative to the API prefix
	Path    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsNotFound reports whether err is a marketplace 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func newAPIError(kind error, status int, path, message string) *APIError {
	return &APIError{Kind: kind, StatusCode: status, Path: path, Message: message}
}
