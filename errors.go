package site2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Merge engine errors.
	ErrNoEntries        = errors.New("no entries to merge")
	ErrNoPages          = errors.New("merged document would have no pages")
	ErrSourceUnreadable = errors.New("source PDF unreadable")
	ErrWriteOutput      = errors.New("failed to write merged PDF")
	ErrNegativeDepth    = errors.New("entry depth cannot be negative")

	// TOC resolver errors.
	ErrEmptySiteURL = errors.New("site URL cannot be empty")
	ErrTOCFetch     = errors.New("failed to fetch table of contents")
	ErrTOCParse     = errors.New("failed to parse table of contents")
	ErrNoTOCEntries = errors.New("no linked entries found in table of contents")

	// Browser rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Render settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Cover validation errors.
	ErrCoverRender = errors.New("cover template rendering failed")
)
