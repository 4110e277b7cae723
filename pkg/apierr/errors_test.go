package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "kind only",
			err:      &Error{Kind: KindEmptyToken},
			expected: "api client empty_token",
		},
		{
			name:     "kind with message",
			err:      New(KindAPIError, "something went wrong"),
			expected: "api client api_error: something went wrong",
		},
		{
			name: "kind with message and wrapped error",
			err: &Error{
				Kind:    KindUndecodableResponse,
				Message: "response body is not a JSON object",
				Err:     errors.New("invalid character 'g'"),
			},
			expected: "api client undecodable_response: response body is not a JSON object: invalid character 'g'",
		},
		{
			name: "code and message",
			err: &Error{
				Kind:    KindAPIErrorWithCode,
				Code:    403,
				Message: "Access Denied",
			},
			expected: "api client api_error_with_code: code 403: Access Denied",
		},
		{
			name: "entity not found",
			err: &Error{
				Kind:   KindEntityNotFound,
				Entity: "courses",
			},
			expected: `api client entity_not_found: no "courses" key in response`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	wrapped := errors.New("wrapped error")
	err := &Error{Kind: KindUndecodableToken, Err: wrapped}

	if err.Unwrap() != wrapped {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), wrapped)
	}
	if !errors.Is(err, wrapped) {
		t.Error("errors.Is should work with wrapped error")
	}
}

func TestIsKind(t *testing.T) {
	err := New(KindExpiredToken, "token is expired")

	if !IsKind(err, KindExpiredToken) {
		t.Error("IsKind should match the error's own kind")
	}
	if IsKind(err, KindEmptyToken) {
		t.Error("IsKind should not match a different kind")
	}
	if IsKind(errors.New("plain"), KindExpiredToken) {
		t.Error("IsKind should not match a plain error")
	}
}

func TestIsKind_Wrapped(t *testing.T) {
	inner := New(KindAPIError, "boom")
	outer := fmt.Errorf("list courses: %w", inner)

	if !IsKind(outer, KindAPIError) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if KindOf(outer) != KindAPIError {
		t.Errorf("KindOf() = %q, want %q", KindOf(outer), KindAPIError)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if kind := KindOf(errors.New("plain")); kind != "" {
		t.Errorf("KindOf(plain error) = %q, want empty", kind)
	}
}
