package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-site2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath      string // SITE2PDF_CONFIG: config file path
	Timeout         string // SITE2PDF_TIMEOUT: per-page timeout
	Workers         int    // SITE2PDF_WORKERS: parallel renderers
	Output          string // SITE2PDF_OUTPUT: merged PDF path
	WorkDir         string // SITE2PDF_WORK_DIR: per-page PDF cache
	UserAgent       string // SITE2PDF_USER_AGENT: TOC fetch User-Agent
	PageSize        string // SITE2PDF_PAGE_SIZE: letter, a4, legal
	SidebarSelector string // SITE2PDF_SIDEBAR_SELECTOR: navigation container
	ItemSelector    string // SITE2PDF_ITEM_SELECTOR: TOC items
}

// knownEnvVars lists valid SITE2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SITE2PDF_CONFIG":           true,
	"SITE2PDF_TIMEOUT":          true,
	"SITE2PDF_WORKERS":          true,
	"SITE2PDF_OUTPUT":           true,
	"SITE2PDF_WORK_DIR":         true,
	"SITE2PDF_USER_AGENT":       true,
	"SITE2PDF_PAGE_SIZE":        true,
	"SITE2PDF_SIDEBAR_SELECTOR": true,
	"SITE2PDF_ITEM_SELECTOR":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized SITE2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:      os.Getenv("SITE2PDF_CONFIG"),
		Timeout:         os.Getenv("SITE2PDF_TIMEOUT"),
		Output:          os.Getenv("SITE2PDF_OUTPUT"),
		WorkDir:         os.Getenv("SITE2PDF_WORK_DIR"),
		UserAgent:       os.Getenv("SITE2PDF_USER_AGENT"),
		PageSize:        os.Getenv("SITE2PDF_PAGE_SIZE"),
		SidebarSelector: os.Getenv("SITE2PDF_SIDEBAR_SELECTOR"),
		ItemSelector:    os.Getenv("SITE2PDF_ITEM_SELECTOR"),
	}

	// Parse int for workers
	if workers := os.Getenv("SITE2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SITE2PDF_* variables.
// Helps catch typos like SITE2PDF_WORKER instead of SITE2PDF_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SITE2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout != "" && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.Output != "" && cfg.Output.File == "" {
		cfg.Output.File = env.Output
	}
	if env.WorkDir != "" && cfg.Output.WorkDir == "" {
		cfg.Output.WorkDir = env.WorkDir
	}
	if env.UserAgent != "" && cfg.Site.UserAgent == "" {
		cfg.Site.UserAgent = env.UserAgent
	}
	if env.PageSize != "" && cfg.Render.PageSize == "" {
		cfg.Render.PageSize = env.PageSize
	}
	if env.SidebarSelector != "" && cfg.Site.SidebarSelector == "" {
		cfg.Site.SidebarSelector = env.SidebarSelector
	}
	if env.ItemSelector != "" && cfg.Site.ItemSelector == "" {
		cfg.Site.ItemSelector = env.ItemSelector
	}
}
