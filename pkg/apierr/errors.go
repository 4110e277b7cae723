// Package apierr defines the error taxonomy shared by token validation,
// response parsing, and the fetch loop.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. All failures are terminal; the client
// performs no automatic retry.
type Kind string

const (
	// KindEmptyToken means the supplied token was empty or whitespace.
	KindEmptyToken Kind = "empty_token"

	// KindMalformedToken means the token did not split into three
	// dot-separated segments.
	KindMalformedToken Kind = "malformed_token"

	// KindUndecodableToken means the token payload segment was not
	// base64url-encoded JSON.
	KindUndecodableToken Kind = "undecodable_token"

	// KindExpiredToken means the token's exp claim lies in the past.
	KindExpiredToken Kind = "expired_token"

	// KindEmptyResponse means the server returned a blank body.
	KindEmptyResponse Kind = "empty_response"

	// KindUndecodableResponse means the body was not a non-empty JSON object.
	KindUndecodableResponse Kind = "undecodable_response"

	// KindAPIError means the envelope carried an errors list.
	KindAPIError Kind = "api_error"

	// KindAPIErrorWithCode means the envelope carried code and message
	// fields instead of the expected entity collection.
	KindAPIErrorWithCode Kind = "api_error_with_code"

	// KindEntityNotFound means the envelope lacked the expected entity
	// collection key and carried no recognizable error fields.
	KindEntityNotFound Kind = "entity_not_found"
)

// Error is a classified API client failure.
type Error struct {
	Kind    Kind
	Entity  string
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindAPIErrorWithCode:
		return fmt.Sprintf("api client %s: code %d: %s", e.Kind, e.Code, e.Message)
	case KindEntityNotFound:
		return fmt.Sprintf("api client %s: no %q key in response", e.Kind, e.Entity)
	}
	if e.Err != nil {
		if e.Message != "" {
			return fmt.Sprintf("api client %s: %s: %v", e.Kind, e.Message, e.Err)
		}
		return fmt.Sprintf("api client %s: %v", e.Kind, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("api client %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("api client %s", e.Kind)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the classification of err, or "" if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
