package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ValidationError reports required local input that is missing or
// empty, detected before any request is issued.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NetworkError wraps a request that never produced a server response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerResponseError reports a success-shaped reply whose payload
// does not have the expected shape.
type ServerResponseError struct {
	Reason string
}

func (e *ServerResponseError) Error() string {
	return "invalid server response: " + e.Reason
}

// AuthenticationError is a 401 reply. Receiving one tears down the
// stored credential; see Client.SessionInvalidated.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "not authenticated"
	}
	return e.Message
}

// AuthorizationError is a 403 reply. Recorded for diagnostics only,
// never acted on.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "access forbidden"
	}
	return e.Message
}

// ServerFaultError is a 5xx reply.
type ServerFaultError struct {
	Status  int
	Message string
}

func (e *ServerFaultError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server fault (HTTP %d)", e.Status)
	}
	return e.Message
}

// ApplicationError is any other 4xx reply, carrying the
// server-supplied message when one is present.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected (HTTP %d)", e.Status)
	}
	return e.Message
}

// Message extracts a short human-readable message from an error,
// preferring server-supplied text, falling back to the given generic
// message. Used by views to build notices.
func Message(err error, generic string) string {
	var app *ApplicationError
	if errors.As(err, &app) && app.Message != "" {
		return app.Message
	}
	var val *ValidationError
	if errors.As(err, &val) {
		return val.Error()
	}
	if err != nil && generic == "" {
		return err.Error()
	}
	return generic
}

// errorBody is the error payload shape used by the backend.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// serverMessage extracts the server-supplied error message from a
// non-2xx body, or empty when the body carries none.
func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Detail
}
