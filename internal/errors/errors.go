// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Standard error types used throughout the application
var (
	// Configuration errors
	ErrConfigInvalid    = errors.New("invalid configuration format")
	ErrConfigPermission = errors.New("permission denied accessing configuration")

	// Generation errors
	ErrEmptyText   = errors.New("message text is empty")
	ErrThrottled   = errors.New("generation cooldown has not elapsed")
	ErrBuildFailed = errors.New("failed to build generation request")

	// Export errors
	ErrNotLoaded        = errors.New("image is not loaded yet")
	ErrFetchFailed      = errors.New("failed to fetch image")
	ErrShareUnsupported = errors.New("file sharing is not supported on this device")
)

// AppError represents an application-specific error with context
type AppError struct {
	Err       error
	Message   string
	Operation string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(err error, operation string, message string) *AppError {
	return &AppError{
		Err:       err,
		Message:   message,
		Operation: operation,
	}
}

// ThrottleError is returned when a submission arrives inside the cooldown window.
type ThrottleError struct {
	Remaining time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("Security system active: please wait %d more seconds.", e.Seconds())
}

// Seconds returns the remaining wait rounded up to whole seconds.
func (e *ThrottleError) Seconds() int {
	return int(math.Ceil(e.Remaining.Seconds()))
}

func (e *ThrottleError) Unwrap() error {
	return ErrThrottled
}

// Is reports whether err is, or wraps, target. It mirrors the standard library
// so callers only need to import this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsConfigError returns true if the error is related to configuration
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) ||
		errors.Is(err, ErrConfigPermission)
}

// IsGenerationError returns true if the error came from a rejected or failed submission
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrThrottled) ||
		errors.Is(err, ErrBuildFailed)
}

// IsExportError returns true if the error came from download or share
func IsExportError(err error) bool {
	return errors.Is(err, ErrNotLoaded) ||
		errors.Is(err, ErrFetchFailed) ||
		errors.Is(err, ErrShareUnsupported)
}

// Level classifies how an error should be surfaced to the user.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	default:
		return "error"
	}
}

// Classify maps an error to the notification level and message shown to the user.
func Classify(err error) (Level, string) {
	var throttle *ThrottleError
	switch {
	case errors.As(err, &throttle):
		return LevelWarning, throttle.Error()
	case errors.Is(err, ErrShareUnsupported):
		return LevelInfo, "Your device does not support sharing files directly. Please download first."
	case errors.Is(err, ErrEmptyText):
		return LevelWarning, "Write a message first."
	case errors.Is(err, ErrNotLoaded):
		return LevelWarning, "Wait for the image to finish loading."
	case errors.Is(err, ErrBuildFailed):
		return LevelError, "Failed to create the image. Try again later."
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return LevelError, appErr.Message
	}
	return LevelError, err.Error()
}
