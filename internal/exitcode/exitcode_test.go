package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/Stuart-0728/cqnu/internal/errors"
)

func TestDetermineExitCodeCodedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: Success,
		},
		{
			name:     "not logged in",
			err:      errors.NewNotLoggedInError(),
			expected: AuthError,
		},
		{
			name:     "admin required",
			err:      errors.NewAdminRequiredError(),
			expected: AuthError,
		},
		{
			name:     "session expired",
			err:      errors.New(errors.ErrCodeAuthSessionExpired, "session expired"),
			expected: AuthError,
		},
		{
			name:     "resource not found",
			err:      errors.NewNotFoundError("activity"),
			expected: NotFound,
		},
		{
			name:     "form validation",
			err:      errors.NewFieldRequiredError("username"),
			expected: ValidationError,
		},
		{
			name:     "password mismatch",
			err:      errors.NewPasswordMismatchError(),
			expected: ValidationError,
		},
		{
			name:     "network failure",
			err:      errors.NewNetworkError(stderrors.New("connection refused")),
			expected: NetworkError,
		},
		{
			name:     "config key unknown",
			err:      errors.New(errors.ErrCodeConfigKeyUnknown, "unknown key"),
			expected: UsageError,
		},
		{
			name:     "server rejection",
			err:      errors.NewAPIRejectedError("sign-up", "activity is full"),
			expected: GeneralError,
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("registrations list: %w", errors.NewNotLoggedInError()),
			expected: AuthError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := DetermineExitCode(tt.err); code != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCodePlainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "cobra unknown command",
			err:      stderrors.New(`unknown command "activties" for "cqnu"`),
			expected: UsageError,
		},
		{
			name:     "cobra unknown flag",
			err:      stderrors.New("unknown flag: --colour"),
			expected: UsageError,
		},
		{
			name:     "cobra arg count",
			err:      stderrors.New("accepts 1 arg(s), received 0"),
			expected: UsageError,
		},
		{
			name:     "dial failure",
			err:      stderrors.New("dial tcp: connection refused"),
			expected: NetworkError,
		},
		{
			name:     "timeout",
			err:      stderrors.New("request timeout"),
			expected: NetworkError,
		},
		{
			name:     "anything else",
			err:      stderrors.New("something went wrong"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := DetermineExitCode(tt.err); code != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{UsageError, "Usage error (invalid flags or arguments)"},
		{AuthError, "Authentication error"},
		{NotFound, "Resource not found"},
		{ValidationError, "Validation error (input rejected before sending)"},
		{NetworkError, "Network error"},
		{Interrupted, "Interrupted"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		if got := GetExitCodeDescription(tt.code); got != tt.expected {
			t.Errorf("GetExitCodeDescription(%d) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}
