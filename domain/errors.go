package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session has expired")
	ErrRefreshFailed    = errors.New("token refresh failed")
	ErrTokenMissing     = errors.New("token missing from response")
)

// OTP errors
var (
	ErrOTPExpired       = errors.New("OTP expired")
	ErrOTPInvalidFormat = errors.New("OTP must be exactly 6 digits")
	ErrStudentNotFound  = errors.New("student is not registered")
	ErrInvalidStep      = errors.New("action not allowed in the current step")
	ErrBusy             = errors.New("another request is in progress")
)

// Tree errors
var (
	ErrNodeNotFound = errors.New("node not found in category tree")
	ErrInvalidKind  = errors.New("invalid node kind")
	ErrNotAParent   = errors.New("node cannot have children")
)

// Authorization errors
var (
	ErrForbidden = errors.New("access denied")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	// IsRegistered is set when the backend reports whether an identifier is known
	IsRegistered *bool
	Body         []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// OTPFormatError rejects a code that is not Length digits
type OTPFormatError struct {
	Length int
}

func (e *OTPFormatError) Error() string {
	return fmt.Sprintf("OTP must be exactly %d digits", e.Length)
}

func (e *OTPFormatError) Is(target error) bool {
	return target == ErrOTPInvalidFormat
}

// IsUnregistered reports whether err carries an isRegistered:false payload
func IsUnregistered(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return errors.Is(err, ErrStudentNotFound)
	}
	return apiErr.IsRegistered != nil && !*apiErr.IsRegistered
}

// StatusCode extracts the HTTP status of an API error, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// FieldError is a validation failure on one form field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is a client-side validation failure caught before any network call
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for a field, or ""
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}
