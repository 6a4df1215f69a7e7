package types

import (
	"fmt"
	"net/url"
)

// HTTP methods used by the Contacts API.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// Request is a single Contacts API request as the client would issue it.
// Body holds the decoded JSON document (maps, slices, scalars) or nil.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// String returns "METHOD path?query", used in logs and mismatch errors.
func (r Request) String() string {
	if q := r.Query.Encode(); q != "" {
		return fmt.Sprintf("%s %s?%s", r.Method, r.Path, q)
	}
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}

// Outcome is the result of a simulated call: Success or Failure.
type Outcome interface {
	outcome()
}

// Success carries the decoded response body. A nil Body is an empty
// acknowledgment.
type Success struct {
	Body any
}

// Failure carries the error the call raises when dispatched.
type Failure struct {
	Err *APIError
}

func (Success) outcome() {}
func (Failure) outcome() {}

// APICall pairs an expected request with its simulated outcome.
type APICall struct {
	Request
	Outcome Outcome
}

// Succeeded reports whether the call carries a Success outcome.
func (c APICall) Succeeded() bool {
	_, ok := c.Outcome.(Success)
	return ok
}

// ResponseBody returns the body of a successful call, or nil.
func (c APICall) ResponseBody() any {
	if s, ok := c.Outcome.(Success); ok {
		return s.Body
	}
	return nil
}

// Err returns the error of a failed call, or nil.
func (c APICall) Err() *APIError {
	if f, ok := c.Outcome.(Failure); ok {
		return f.Err
	}
	return nil
}
