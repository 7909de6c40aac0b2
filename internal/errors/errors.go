package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsCode reports whether err carries the given code
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes. The first four are the engine's validation
// failures; none of them are transient or retryable.
const (
	CodeEmptySeries      = "EMPTY_SERIES"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeDivisionByZero   = "DIVISION_BY_ZERO"
	CodeInvalidTarget    = "INVALID_TARGET"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeRenderError      = "RENDER_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors

func EmptySeries() *AppError {
	return New(CodeEmptySeries, "series has no observations")
}

func InsufficientData(n int) *AppError {
	return New(CodeInsufficientData, fmt.Sprintf("trend requires at least 2 observations, got %d", n))
}

func DivisionByZero(message string) *AppError {
	return New(CodeDivisionByZero, message)
}

func InvalidTarget(target float64) *AppError {
	return New(CodeInvalidTarget, fmt.Sprintf("target must be positive, got %f", target))
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func RenderError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderError,
		Message: message,
		Cause:   cause,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
