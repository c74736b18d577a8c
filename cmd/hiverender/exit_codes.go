package main

import (
	"errors"
	"os"

	renderer "github.com/openhive-network/denser-sub002"
	"github.com/openhive-network/denser-sub002/internal/config"
)

// Exit codes for the hiverender CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Rendered
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or input
	ExitIO       = 3 // File not found, permission denied
	ExitSecurity = 4 // Dangerous content rejected
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Security errors (exit 4)
	if errors.Is(err, renderer.ErrDangerousContent) {
		return ExitSecurity
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputNotDir) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidTemplate) ||
		errors.Is(err, config.ErrUnknownPlugin) ||
		errors.Is(err, renderer.ErrInvalidConfig) ||
		errors.Is(err, renderer.ErrEmptyInput) ||
		errors.Is(err, renderer.ErrInputTooLarge) {
		return ExitUsage
	}

	return ExitGeneral
}
