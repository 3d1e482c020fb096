package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/Stuart-0728/cqnu/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NotFound indicates a requested resource does not exist
	NotFound = 4

	// ValidationError indicates input was rejected before any request was sent
	ValidationError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code. Coded errors are
// classified by their code family; anything else (cobra usage errors,
// wrapped stdlib errors) falls back to message heuristics.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return codeFamilyExit(appErr.Code)
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "unknown command"),
		strings.Contains(errMsg, "unknown flag"),
		strings.Contains(errMsg, "invalid argument"),
		strings.Contains(errMsg, "required flag"),
		strings.Contains(errMsg, "accepts"):
		return UsageError
	case strings.Contains(errMsg, "connection"),
		strings.Contains(errMsg, "timeout"),
		strings.Contains(errMsg, "unreachable"):
		return NetworkError
	default:
		return GeneralError
	}
}

func codeFamilyExit(code errors.ErrorCode) int {
	switch {
	case code == errors.ErrCodeAPINotFound:
		return NotFound
	case strings.HasPrefix(string(code), "AUTH-"):
		return AuthError
	case strings.HasPrefix(string(code), "FORM-"):
		return ValidationError
	case strings.HasPrefix(string(code), "NET-"):
		return NetworkError
	case strings.HasPrefix(string(code), "CONFIG-"):
		return UsageError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NotFound:
		return "Resource not found"
	case ValidationError:
		return "Validation error (input rejected before sending)"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
