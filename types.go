package site2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.45
)

// PageEntry is one entry of a site's table of contents, in navigation order.
type PageEntry struct {
	Title string // Link text, used as the bookmark label
	URL   string // Absolute URL of the page
	Depth int    // Nesting level in the sidebar; 0 = top-level
}

// DocumentEntry names one rendered PDF contributing a contiguous page run
// to the merged output. The slice order is the output page order and must
// never be resorted.
type DocumentEntry struct {
	Title  string // Bookmark label
	Source string // Path to a single-document PDF on disk
	Depth  int    // Nesting level in the output outline; 0 = top-level
}

// RenderSettings configures PDF page dimensions for the browser renderer.
type RenderSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultRenderSettings returns render settings with default values.
func DefaultRenderSettings() *RenderSettings {
	return &RenderSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that render settings are valid.
// Returns nil if r is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (r *RenderSettings) Validate() error {
	if r == nil {
		return nil
	}

	if !isValidPageSize(r.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, r.Size)
	}

	if !isValidOrientation(r.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, r.Orientation)
	}

	if r.Margin < MinMargin || r.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, r.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Cover configures an optional title page prepended to the merged document.
type Cover struct {
	Title       string
	Subtitle    string
	Date        string
	Description string // Markdown, rendered below the title block
}

// Progress reports per-page pipeline progress to the caller.
type Progress struct {
	Index  int    // 1-based position within the TOC
	Total  int    // Number of TOC entries
	Title  string
	URL    string
	Cached bool // Page reused from the work directory instead of rendered
}

// ProgressFunc receives progress updates during Snapshot.
type ProgressFunc func(Progress)

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout         time.Duration
	workers         int
	userAgent       string
	sidebarSelector string
	itemSelector    string
	printCSS        string
	render          *RenderSettings
	cover           *Cover
	progress        ProgressFunc
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-page fetch and render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("site2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithWorkers sets the number of parallel page renderers.
// Values < 1 fall back to ResolvePoolSize's auto-sizing.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.cfg.workers = n
	}
}

// WithUserAgent overrides the User-Agent header sent when fetching the TOC.
func WithUserAgent(ua string) Option {
	return func(s *Service) {
		s.cfg.userAgent = ua
	}
}

// WithSidebarSelector sets the CSS selector for the navigation container.
func WithSidebarSelector(selector string) Option {
	return func(s *Service) {
		s.cfg.sidebarSelector = selector
	}
}

// WithItemSelector sets the CSS selector for TOC items inside the container.
func WithItemSelector(selector string) Option {
	return func(s *Service) {
		s.cfg.itemSelector = selector
	}
}

// WithPrintCSS replaces the CSS injected into each page before rendering.
func WithPrintCSS(css string) Option {
	return func(s *Service) {
		s.cfg.printCSS = css
	}
}

// WithRenderSettings sets page dimensions for the browser renderer.
func WithRenderSettings(r *RenderSettings) Option {
	return func(s *Service) {
		s.cfg.render = r
	}
}

// WithCover prepends a rendered cover page to the merged document.
func WithCover(c *Cover) Option {
	return func(s *Service) {
		s.cfg.cover = c
	}
}

// WithProgress registers a callback for per-page progress updates.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Service) {
		s.cfg.progress = fn
	}
}
