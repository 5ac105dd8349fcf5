package twitch

import (
	"errors"
	"fmt"
	"net/http"
)

// Stage errors. Every error returned by this package matches exactly one of
// these with errors.Is, identifying which stage of the call failed.
var (
	// ErrConfiguration is returned when the client cannot be built or a request
	// cannot be constructed (missing credentials, malformed URLs, unencodable
	// query or body).
	ErrConfiguration = errors.New("configuration error")

	// ErrAuth is returned when the authorization server rejects a grant, the
	// token exchange fails, or a refresh is requested that cannot happen.
	ErrAuth = errors.New("auth error")

	// ErrTransport is returned when an HTTP request could not be sent.
	ErrTransport = errors.New("transport error")

	// ErrDecode is returned when a response body does not have the expected shape.
	ErrDecode = errors.New("decode error")
)

// Detail errors, wrapped together with a stage error.
var (
	ErrNoProvider         = errors.New("unable to create auth provider")
	ErrRefreshUnsupported = errors.New("auth provider does not support token refresh")
	ErrNoRefreshToken     = errors.New("access token has no refresh token")
	ErrUnknownEndpoint    = errors.New("unknown endpoint")
)

// Error carries the failing stage (Kind), the operation and the cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("twitch: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("twitch: %s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the stage and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// APIError is the error envelope returned by the Helix API for non-2xx
// responses, e.g. {"error":"Unauthorized","status":401,"message":"Invalid OAuth token"}.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// newAPIError builds an APIError from a response, falling back to the status
// text when the body is not a Helix error envelope.
func newAPIError(resp *http.Response, envelope *APIError) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if envelope != nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
