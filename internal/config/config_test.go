package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `site:
  url: https://docs.example.com/
  sidebarSelector: "#sidebar"
  itemSelector: ".chapter-item"
output:
  file: docs.pdf
  workDir: docs-pages
render:
  pageSize: a4
  orientation: landscape
  margin: 0.5
cover:
  enabled: true
  title: Example Docs
  description: "Generated snapshot"
workers: 4
timeout: 45s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site2pdf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Site.URL != "https://docs.example.com/" {
		t.Errorf("Site.URL = %q", cfg.Site.URL)
	}
	if cfg.Output.File != "docs.pdf" || cfg.Output.WorkDir != "docs-pages" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Render.PageSize != "a4" || cfg.Render.Orientation != "landscape" || cfg.Render.Margin != 0.5 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if !cfg.Cover.Enabled || cfg.Cover.Title != "Example Docs" {
		t.Errorf("Cover = %+v", cfg.Cover)
	}
	if cfg.Workers != 4 || cfg.Timeout != "45s" {
		t.Errorf("Workers/Timeout = %d/%q", cfg.Workers, cfg.Timeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, "site:\n  url: https://x\nbogusKey: 1\n"))
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, "site: [unclosed"))
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestConfigValidateFieldLengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"url too long", func(c *Config) { c.Site.URL = strings.Repeat("a", MaxURLLength+1) }},
		{"selector too long", func(c *Config) { c.Site.SidebarSelector = strings.Repeat("a", MaxSelectorLength+1) }},
		{"title too long", func(c *Config) { c.Cover.Title = strings.Repeat("a", MaxTitleLength+1) }},
		{"date too long", func(c *Config) { c.Cover.Date = strings.Repeat("a", MaxDateLength+1) }},
		{"description too long", func(c *Config) { c.Cover.Description = strings.Repeat("a", MaxDescriptionLength+1) }},
		{"output path too long", func(c *Config) { c.Output.File = strings.Repeat("a", MaxPathLength+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("Validate() error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}
