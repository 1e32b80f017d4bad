package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdenrich"
	"github.com/alnah/go-mdenrich/internal/assets"
	"github.com/alnah/go-mdenrich/internal/cache"
	"github.com/alnah/go-mdenrich/internal/config"
	"github.com/alnah/go-mdenrich/internal/hints"
)

// Exit codes for the mdenrich CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful render
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoInputFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdenrich.ErrEmptyMarkdown) ||
		errors.Is(err, mdenrich.ErrInputTooLarge) ||
		errors.Is(err, mdenrich.ErrInvalidOption) ||
		errors.Is(err, mdenrich.ErrInvalidTOCDepth) ||
		errors.Is(err, mdenrich.ErrStyleNotFound) ||
		errors.Is(err, mdenrich.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, mdenrich.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, mdenrich.ErrInputTooLarge):
		return hints.ForInputTooLarge()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, cache.ErrLocked):
		return hints.ForCacheLocked()
	}
	return ""
}
