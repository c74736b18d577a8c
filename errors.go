package renderer

import (
	"errors"
	"fmt"

	"github.com/openhive-network/denser-sub002/internal/pipeline"
	"github.com/openhive-network/denser-sub002/internal/security"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput    = errors.New("input cannot be empty")
	ErrInputTooLarge = errors.New("input exceeds size limit")
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrHTMLConversion wraps markdown conversion and DOM parsing failures.
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// ErrDangerousContent is wrapped by every *SecurityError.
	ErrDangerousContent = security.ErrDangerousContent
)

// SecurityError names every dangerous pattern found in rendered content.
// Match it with errors.As, or errors.Is(err, ErrDangerousContent).
type SecurityError = security.Error

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	// Field is the option name, e.g. "baseUrl" or "assetsWidth".
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
