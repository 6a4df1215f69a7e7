package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API failures.
type ErrorKind string

const (
	KindClient ErrorKind = "client" // 4xx-style failures.
	KindServer ErrorKind = "server" // 5xx-style failures.
)

// API failure classes, matched with errors.Is against an *APIError.
var (
	ErrClientError = errors.New("hubspot client error")
	ErrServerError = errors.New("hubspot server error")
)

// APIError is a failure reported by the (simulated) HubSpot portal.
type APIError struct {
	Kind    ErrorKind
	Message string
	Code    int
}

// NewClientError returns a client-side (4xx-style) failure.
func NewClientError(message string, code int) *APIError {
	return &APIError{Kind: KindClient, Message: message, Code: code}
}

// NewServerError returns a server-side (5xx-style) failure.
func NewServerError(message string, code int) *APIError {
	return &APIError{Kind: KindServer, Message: message, Code: code}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot %s error (%d): %s", e.Kind, e.Code, e.Message)
}

// Is matches ErrClientError or ErrServerError according to Kind.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrClientError:
		return e.Kind == KindClient
	case ErrServerError:
		return e.Kind == KindServer
	}
	return false
}

// ErrInvalidResponse is matched by every *ResponseSchemaError.
var ErrInvalidResponse = errors.New("response does not match the expected schema")

// ResponseSchemaError reports a response body missing a required field or
// carrying a field of the wrong type.
type ResponseSchemaError struct {
	Endpoint string // Request path that produced the body.
	Field    string // Offending field, dotted for nested values.
	Reason   string
}

func (e *ResponseSchemaError) Error() string {
	return fmt.Sprintf("invalid response from %s: field %q %s", e.Endpoint, e.Field, e.Reason)
}

// Is matches ErrInvalidResponse.
func (e *ResponseSchemaError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// Simulation errors.
var (
	ErrFailureIndexInvalid = errors.New("failure index out of range")
	ErrConflictingEmail    = errors.New("email property conflicts with the contact's email address")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidPropertyType = errors.New("invalid property type")
	ErrInvalidValue        = errors.New("invalid property value")
)

// Mock connection errors.
var (
	ErrUnexpectedCall   = errors.New("unexpected API call")
	ErrRequestMismatch  = errors.New("request does not match the expected API call")
	ErrUnconsumedCalls  = errors.New("expected API calls were not made")
	ErrConnectionClosed = errors.New("connection is closed")
)
