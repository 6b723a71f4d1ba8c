// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common application errors.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NetworkError means a request never completed: DNS, connect, reset, timeout.
type NetworkError struct {
	Err error
	Op  string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-success HTTP status returned by the scoring service.
type ServiceError struct {
	Op         string
	Message    string
	StatusCode int
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: service returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: service returned %d", e.Op, e.StatusCode)
}

// NotFound reports whether the service said the resource does not exist.
func (e *ServiceError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// DataShapeError means a response arrived but did not have the expected shape.
type DataShapeError struct {
	Err   error
	Op    string
	Field string
}

func (e *DataShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: unexpected data in %s: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: unexpected data: %v", e.Op, e.Err)
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if repeating the same request could succeed.
// Nothing retries automatically; this only drives what the user is told.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode >= http.StatusInternalServerError ||
			svcErr.StatusCode == http.StatusTooManyRequests
	}

	return false
}

// IsPermanent reports whether the service rejected the request outright,
// e.g. an unknown neighborhood id.
func IsPermanent(err error) bool {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return false
	}
	return svcErr.StatusCode >= http.StatusBadRequest &&
		svcErr.StatusCode < http.StatusInternalServerError &&
		svcErr.StatusCode != http.StatusTooManyRequests
}

// ErrorKind names the taxonomy bucket of err for logs.
func ErrorKind(err error) string {
	var (
		netErr   *NetworkError
		svcErr   *ServiceError
		shapeErr *DataShapeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &svcErr):
		return "service"
	case errors.As(err, &shapeErr):
		return "data_shape"
	default:
		return "unknown"
	}
}
