package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-001"
	ErrCodeAuthSessionExpired ErrorCode = "AUTH-002"
	ErrCodeAuthAdminRequired  ErrorCode = "AUTH-003"
	ErrCodeAuthLoginFailed    ErrorCode = "AUTH-004"
	ErrCodeAuthRegisterFailed ErrorCode = "AUTH-005"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequestFailed ErrorCode = "API-001"
	ErrCodeAPIBadResponse   ErrorCode = "API-002"
	ErrCodeAPINotFound      ErrorCode = "API-003"
	ErrCodeAPIRejected      ErrorCode = "API-004"

	// Network errors (NET-001 to NET-099)
	ErrCodeNetUnavailable ErrorCode = "NET-001"

	// Form validation errors (FORM-001 to FORM-099)
	ErrCodeFormFieldRequired    ErrorCode = "FORM-001"
	ErrCodeFormFieldInvalid     ErrorCode = "FORM-002"
	ErrCodeFormPasswordMismatch ErrorCode = "FORM-003"

	// Registration errors (REG-001 to REG-099)
	ErrCodeRegClosed            ErrorCode = "REG-001"
	ErrCodeRegFull              ErrorCode = "REG-002"
	ErrCodeRegAlreadyRegistered ErrorCode = "REG-003"
	ErrCodeRegNotRegistered     ErrorCode = "REG-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid    ErrorCode = "CONFIG-001"
	ErrCodeConfigKeyUnknown ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
)

// AppError represents an enhanced error with code, suggestions, and documentation
type AppError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *AppError) WithDocs(url string) *AppError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError indicates an operation that requires a session
func NewNotLoggedInError() *AppError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'cqnu auth login' to log in").
		WithSuggestion("Run 'cqnu auth register' to create an account")
}

// NewAdminRequiredError indicates an operation that requires the admin role
func NewAdminRequiredError() *AppError {
	return New(ErrCodeAuthAdminRequired, "admin role required").
		WithSuggestion("Log in with an administrator account").
		WithSuggestion("Ask an administrator to perform this operation")
}

// NewLoginFailedError carries the backend-provided message when present
func NewLoginFailedError(backendMessage string) *AppError {
	msg := "login failed"
	if backendMessage != "" {
		msg = backendMessage
	}
	return New(ErrCodeAuthLoginFailed, msg).
		WithSuggestion("Check your username and password")
}

// NewAPIRejectedError wraps a backend-rejected request (4xx/5xx)
func NewAPIRejectedError(action, backendMessage string) *AppError {
	msg := fmt.Sprintf("%s failed", action)
	if backendMessage != "" {
		msg = backendMessage
	}
	return New(ErrCodeAPIRejected, msg)
}

// NewNotFoundError indicates a missing backend resource
func NewNotFoundError(resource string) *AppError {
	return New(ErrCodeAPINotFound, fmt.Sprintf("%s not found", resource)).
		WithSuggestion("Check the id and try again")
}

// NewNetworkError wraps a failed request with no response
func NewNetworkError(cause error) *AppError {
	return Wrap(ErrCodeNetUnavailable, "network error", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the server address with 'cqnu config get api.base_url'")
}

// NewBadResponseError indicates a response shape the client cannot interpret
func NewBadResponseError(cause error) *AppError {
	return Wrap(ErrCodeAPIBadResponse, "unexpected response from server", cause)
}

// NewFieldRequiredError indicates a missing required form field
func NewFieldRequiredError(field string) *AppError {
	return New(ErrCodeFormFieldRequired, fmt.Sprintf("%s is required", field))
}

// NewPasswordMismatchError indicates a failed password confirmation
func NewPasswordMismatchError() *AppError {
	return New(ErrCodeFormPasswordMismatch, "passwords do not match").
		WithSuggestion("Enter the same password in both fields")
}

// NewRegistrationClosedError indicates sign-up on a non-open activity
func NewRegistrationClosedError() *AppError {
	return New(ErrCodeRegClosed, "registration is closed for this activity")
}

// NewActivityFullError indicates sign-up on a full activity
func NewActivityFullError() *AppError {
	return New(ErrCodeRegFull, "this activity is full")
}
