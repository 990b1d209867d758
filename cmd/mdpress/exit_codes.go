package main

import (
	"errors"
	"os"

	mdpress "github.com/mdpress/mdpress"
	"github.com/mdpress/mdpress/internal/assets"
	"github.com/mdpress/mdpress/internal/config"
)

// Exit codes for the mdpress CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitDiagrams = 5 // Diagram failure under strict mode
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Strict diagram failures (exit 5)
	if errors.Is(err, mdpress.ErrStrictDiagrams) {
		return ExitDiagrams
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpress.ErrBrowserConnect) ||
		errors.Is(err, mdpress.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdpress.ErrInputNotFound) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpress.ErrEmptyMarkdown) ||
		errors.Is(err, mdpress.ErrInvalidPageSize) ||
		errors.Is(err, mdpress.ErrInvalidOrientation) ||
		errors.Is(err, mdpress.ErrInvalidMargin) ||
		errors.Is(err, mdpress.ErrInvalidBackend) ||
		errors.Is(err, mdpress.ErrInvalidDiagramFormat) ||
		errors.Is(err, mdpress.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
