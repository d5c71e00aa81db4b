package main

import (
	"errors"
	"os"

	site2pdf "github.com/alnah/go-site2pdf"
	"github.com/alnah/go-site2pdf/internal/config"
)

// Exit codes for site2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful snapshot
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Network, file not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, site2pdf.ErrBrowserConnect) ||
		errors.Is(err, site2pdf.ErrPageCreate) ||
		errors.Is(err, site2pdf.ErrPageLoad) ||
		errors.Is(err, site2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O and network errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, site2pdf.ErrTOCFetch) ||
		errors.Is(err, site2pdf.ErrSourceUnreadable) ||
		errors.Is(err, site2pdf.ErrWriteOutput) ||
		errors.Is(err, ErrReadPrintCSS) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, site2pdf.ErrEmptySiteURL) ||
		errors.Is(err, site2pdf.ErrInvalidPageSize) ||
		errors.Is(err, site2pdf.ErrInvalidOrientation) ||
		errors.Is(err, site2pdf.ErrInvalidMargin) ||
		errors.Is(err, site2pdf.ErrNegativeDepth) ||
		errors.Is(err, ErrNoSiteURL) ||
		errors.Is(err, ErrInvalidSiteURL) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
