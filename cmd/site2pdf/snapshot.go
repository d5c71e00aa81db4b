package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	site2pdf "github.com/alnah/go-site2pdf"
	"github.com/alnah/go-site2pdf/internal/config"
	"github.com/alnah/go-site2pdf/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoSiteURL          = errors.New("no site URL specified")
	ErrInvalidSiteURL     = errors.New("site URL must start with http:// or https://")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrReadPrintCSS       = errors.New("failed to read print CSS file")
)

// maxWorkers caps --workers to keep browser memory usage sane.
const maxWorkers = 32

// Snapshotter is the interface for the snapshot service.
type Snapshotter interface {
	Snapshot(ctx context.Context, siteURL, workDir, outputPath string) (*site2pdf.SnapshotResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Snapshotter = (*site2pdf.Service)(nil)

// newService builds the production service; tests swap it out.
var newService = func(opts ...site2pdf.Option) Snapshotter {
	return site2pdf.New(opts...)
}

// runSnapshot orchestrates one site snapshot.
func runSnapshot(ctx context.Context, positionalArgs []string, flags *snapshotFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration: file < env < flags
	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg := config.DefaultConfig()
	configPath := flags.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	siteURL, err := resolveSiteURL(positionalArgs, cfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(cfg.Timeout)
	if err != nil {
		return err
	}

	opts := []site2pdf.Option{
		site2pdf.WithWorkers(cfg.Workers),
		site2pdf.WithRenderSettings(buildRenderSettings(cfg)),
	}
	if timeout > 0 {
		opts = append(opts, site2pdf.WithTimeout(timeout))
	}
	if cfg.Site.UserAgent != "" {
		opts = append(opts, site2pdf.WithUserAgent(cfg.Site.UserAgent))
	}
	if cfg.Site.SidebarSelector != "" {
		opts = append(opts, site2pdf.WithSidebarSelector(cfg.Site.SidebarSelector))
	}
	if cfg.Site.ItemSelector != "" {
		opts = append(opts, site2pdf.WithItemSelector(cfg.Site.ItemSelector))
	}

	if cfg.Render.CSSFile != "" {
		css, err := os.ReadFile(cfg.Render.CSSFile) // #nosec G304 -- path comes from the user's own flag/config
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadPrintCSS, err)
		}
		opts = append(opts, site2pdf.WithPrintCSS(string(css)))
	}

	if cfg.Cover.Enabled {
		opts = append(opts, site2pdf.WithCover(&site2pdf.Cover{
			Title:       cfg.Cover.Title,
			Subtitle:    cfg.Cover.Subtitle,
			Date:        cfg.Cover.Date,
			Description: cfg.Cover.Description,
		}))
	}

	if flags.common.verbose {
		opts = append(opts, site2pdf.WithProgress(func(p site2pdf.Progress) {
			action := "Rendered"
			if p.Cached {
				action = "Cached  "
			}
			fmt.Fprintf(env.Stderr, "[%d/%d] %s %s\n", p.Index, p.Total, action, p.Title)
		}))
	}

	outputPath := cfg.Output.File
	if outputPath == "" {
		outputPath = config.DefaultOutputFile
	}
	workDir := cfg.Output.WorkDir
	if workDir == "" {
		workDir = config.DefaultWorkDir
	}

	svc := newService(opts...)
	defer func() { _ = svc.Close() }()

	start := env.Now()
	result, err := svc.Snapshot(ctx, siteURL, workDir, outputPath)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		elapsed := env.Now().Sub(start).Round(time.Millisecond)
		fmt.Fprintf(env.Stdout, "Created %s: %d pages from %d documents (%d rendered, %d cached) in %s\n",
			result.OutputPath, result.Pages, len(result.Entries), result.Rendered, result.Skipped, elapsed)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *snapshotFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.File = flags.output
	}
	if flags.workDir != "" {
		cfg.Output.WorkDir = flags.workDir
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}

	if flags.site.sidebarSelector != "" {
		cfg.Site.SidebarSelector = flags.site.sidebarSelector
	}
	if flags.site.itemSelector != "" {
		cfg.Site.ItemSelector = flags.site.itemSelector
	}
	if flags.site.userAgent != "" {
		cfg.Site.UserAgent = flags.site.userAgent
	}

	if flags.render.pageSize != "" {
		cfg.Render.PageSize = flags.render.pageSize
	}
	if flags.render.orientation != "" {
		cfg.Render.Orientation = flags.render.orientation
	}
	if flags.render.margin != 0 {
		cfg.Render.Margin = flags.render.margin
	}
	if flags.render.cssFile != "" {
		cfg.Render.CSSFile = flags.render.cssFile
	}

	if flags.cover.title != "" {
		cfg.Cover.Title = flags.cover.title
		cfg.Cover.Enabled = true
	}
	if flags.cover.subtitle != "" {
		cfg.Cover.Subtitle = flags.cover.subtitle
	}
	if flags.cover.date != "" {
		cfg.Cover.Date = flags.cover.date
	}
	if flags.cover.description != "" {
		cfg.Cover.Description = flags.cover.description
	}
	if flags.cover.disabled {
		cfg.Cover.Enabled = false
	}
}

// resolveSiteURL returns the TOC URL: positional argument wins over config.
func resolveSiteURL(positionalArgs []string, cfg *config.Config) (string, error) {
	siteURL := cfg.Site.URL
	if len(positionalArgs) > 0 {
		siteURL = positionalArgs[0]
	}
	if siteURL == "" {
		return "", ErrNoSiteURL
	}
	if !fileutil.IsURL(siteURL) {
		return "", fmt.Errorf("%w: got %q", ErrInvalidSiteURL, siteURL)
	}
	return siteURL, nil
}

// resolveTimeout parses the configured timeout; empty means library default.
func resolveTimeout(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q (want e.g. 30s, 2m)", ErrInvalidTimeout, value)
	}
	return d, nil
}

// buildRenderSettings maps config onto render settings, keeping library
// defaults for unset fields.
func buildRenderSettings(cfg *config.Config) *site2pdf.RenderSettings {
	rs := site2pdf.DefaultRenderSettings()
	if cfg.Render.PageSize != "" {
		rs.Size = cfg.Render.PageSize
	}
	if cfg.Render.Orientation != "" {
		rs.Orientation = cfg.Render.Orientation
	}
	if cfg.Render.Margin != 0 {
		rs.Margin = cfg.Render.Margin
	}
	return rs
}

// validateWorkers rejects negative or excessive worker counts.
func validateWorkers(workers int) error {
	if workers < 0 || workers > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d, 0 = auto)", ErrInvalidWorkerCount, workers, maxWorkers)
	}
	return nil
}
