// Package config loads and validates YAML configuration for site2pdf.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-site2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxURLLength         = 2048 // Browser limit
	MaxSelectorLength    = 200  // CSS selector
	MaxTitleLength       = 200  // Cover title/subtitle
	MaxDateLength        = 30   // "2025-12-31" or "December 31, 2025"
	MaxDescriptionLength = 2000 // Cover description (Markdown)
	MaxUserAgentLength   = 300  // UA header value
	MaxPathLength        = 4096 // Output/work dir paths
)

// Config holds all configuration for a site snapshot.
type Config struct {
	Site    SiteConfig   `yaml:"site"`
	Output  OutputConfig `yaml:"output"`
	Render  RenderConfig `yaml:"render"`
	Cover   CoverConfig  `yaml:"cover"`
	Workers int          `yaml:"workers"` // Parallel renderers (0 = auto)
	Timeout string       `yaml:"timeout"` // Per-page timeout, e.g. "30s", "2m"
}

// SiteConfig identifies the site and its navigation structure.
type SiteConfig struct {
	URL             string `yaml:"url"`             // TOC page URL
	SidebarSelector string `yaml:"sidebarSelector"` // Navigation container (default "#sidebar")
	ItemSelector    string `yaml:"itemSelector"`    // TOC items (default ".chapter-item")
	UserAgent       string `yaml:"userAgent"`       // Override fetch User-Agent
}

// OutputConfig defines output destinations.
type OutputConfig struct {
	File    string `yaml:"file"`    // Merged PDF path (default "site.pdf")
	WorkDir string `yaml:"workDir"` // Per-page PDF cache (default "site-pdf")
}

// RenderConfig defines browser rendering options.
type RenderConfig struct {
	PageSize    string  `yaml:"pageSize"`    // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches, all sides
	CSSFile     string  `yaml:"cssFile"`     // Print CSS override file (empty = built-in)
}

// CoverConfig defines the optional cover page.
type CoverConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"` // Markdown
}

// Fallback output locations, applied after flag/env/file resolution so
// that every layer can distinguish "unset" from an explicit value.
const (
	DefaultOutputFile = "site.pdf"
	DefaultWorkDir    = "site-pdf"
)

// DefaultConfig returns an empty config; zero values mean "unset" until
// resolution finishes.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flag/env
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field length limits.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"site.url", c.Site.URL, MaxURLLength},
		{"site.sidebarSelector", c.Site.SidebarSelector, MaxSelectorLength},
		{"site.itemSelector", c.Site.ItemSelector, MaxSelectorLength},
		{"site.userAgent", c.Site.UserAgent, MaxUserAgentLength},
		{"output.file", c.Output.File, MaxPathLength},
		{"output.workDir", c.Output.WorkDir, MaxPathLength},
		{"render.cssFile", c.Render.CSSFile, MaxPathLength},
		{"cover.title", c.Cover.Title, MaxTitleLength},
		{"cover.subtitle", c.Cover.Subtitle, MaxTitleLength},
		{"cover.date", c.Cover.Date, MaxDateLength},
		{"cover.description", c.Cover.Description, MaxDescriptionLength},
	}

	for _, check := range checks {
		if len(check.value) > check.max {
			return fmt.Errorf("%w: %s is %d chars (max %d)", ErrFieldTooLong, check.name, len(check.value), check.max)
		}
	}

	return nil
}
