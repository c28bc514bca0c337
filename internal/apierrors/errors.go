// Package apierrors defines the client-visible error taxonomy. Every value
// carries the HTTP status it is reported with.
package apierrors

import (
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindInvalidOrExpired
	KindForbidden
	KindTooManyRequests
	KindConfig
)

// APIError is an error safe to show to the caller.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Fields   map[string]string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// invalidOrExpiredMessage is shared by every OTP and reset token failure so
// that callers cannot tell a mismatch from an expiry.
const invalidOrExpiredMessage = "code is invalid or has expired"

// NewErrValidation reports malformed input with per-field messages.
func NewErrValidation(fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusBadRequest, Message: "validation failed", Fields: fields}
}

// NewErrBadRequest reports a body that could not be decoded.
func NewErrBadRequest(msg string) *APIError {
	return &APIError{Kind: KindValidation, HTTPCode: http.StatusBadRequest, Message: msg}
}

func NewErrEmailIsTaken(email string) *APIError {
	return &APIError{
		Kind: KindConflict, HTTPCode: http.StatusBadRequest,
		Message: fmt.Sprintf("email %s is already taken", email),
		Fields:  map[string]string{"email": "already registered"},
	}
}

func NewErrPhoneIsTaken() *APIError {
	return &APIError{
		Kind: KindConflict, HTTPCode: http.StatusBadRequest,
		Message: "phone number is already registered",
		Fields:  map[string]string{"phone": "already registered"},
	}
}

func NewErrIDNumberIsTaken() *APIError {
	return &APIError{
		Kind: KindConflict, HTTPCode: http.StatusBadRequest,
		Message: "ID number is already registered",
		Fields:  map[string]string{"idNumber": "already registered"},
	}
}

// NewErrConflict reports a uniqueness collision detected at write time.
func NewErrConflict(msg string) *APIError {
	return &APIError{Kind: KindConflict, HTTPCode: http.StatusBadRequest, Message: msg}
}

func NewErrUserNotFound() *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: "user not found"}
}

func NewErrRoleNotFound(name string) *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: fmt.Sprintf("role %s not found", name)}
}

func NewErrNotFound(what string) *APIError {
	return &APIError{Kind: KindNotFound, HTTPCode: http.StatusNotFound, Message: what + " not found"}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindUnauthorized, HTTPCode: http.StatusUnauthorized, Message: "invalid email or password"}
}

func NewErrEmailNotVerified() *APIError {
	return &APIError{Kind: KindUnauthorized, HTTPCode: http.StatusUnauthorized, Message: "email address not verified"}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Kind: KindUnauthorized, HTTPCode: http.StatusUnauthorized, Message: "authorization token is missing"}
}

func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Kind: KindUnauthorized, HTTPCode: http.StatusUnauthorized, Message: "authorization token is invalid"}
}

// NewErrInvalidOrExpiredOTP is reported for a wrong, stale, or missing code.
func NewErrInvalidOrExpiredOTP() *APIError {
	return &APIError{Kind: KindInvalidOrExpired, HTTPCode: http.StatusUnauthorized, Message: invalidOrExpiredMessage}
}

// NewErrInvalidOrExpiredResetToken is reported for an unknown or stale reset token.
func NewErrInvalidOrExpiredResetToken() *APIError {
	return &APIError{
		Kind: KindInvalidOrExpired, HTTPCode: http.StatusBadRequest,
		Message: invalidOrExpiredMessage,
		Fields:  map[string]string{"token": "invalid or expired"},
	}
}

func NewErrForbidden(resource, action string) *APIError {
	return &APIError{
		Kind: KindForbidden, HTTPCode: http.StatusForbidden,
		Message: fmt.Sprintf("not allowed to %s %s", action, resource),
	}
}

func NewErrTooManyRequests(msg string) *APIError {
	return &APIError{Kind: KindTooManyRequests, HTTPCode: http.StatusTooManyRequests, Message: msg}
}

// NewErrConfig reports missing server-side configuration. The detail is kept
// for logs; the caller sees a generic message.
func NewErrConfig(detail string) *APIError {
	return &APIError{
		Kind: KindConfig, HTTPCode: http.StatusInternalServerError,
		Message: "server is not configured to handle this request",
		Err:     fmt.Errorf("config: %s", detail),
	}
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{Kind: KindInternal, HTTPCode: http.StatusInternalServerError, Message: "internal server error", Err: err}
}
