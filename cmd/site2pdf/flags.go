package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds site navigation flags.
type siteFlags struct {
	sidebarSelector string
	itemSelector    string
	userAgent       string
}

// renderFlags holds browser rendering flags.
type renderFlags struct {
	pageSize    string
	orientation string
	margin      float64
	cssFile     string
}

// coverFlags holds cover page flags.
type coverFlags struct {
	title       string
	subtitle    string
	date        string
	description string
	disabled    bool
}

// snapshotFlags holds all flags for the snapshot command.
type snapshotFlags struct {
	common  commonFlags
	output  string
	workDir string
	workers int
	timeout string
	site    siteFlags
	render  renderFlags
	cover   coverFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page progress")
}

// addSiteFlags adds site navigation flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.sidebarSelector, "sidebar-selector", "", "CSS selector for the navigation container")
	fs.StringVar(&f.itemSelector, "item-selector", "", "CSS selector for TOC items")
	fs.StringVar(&f.userAgent, "user-agent", "", "User-Agent header for the TOC fetch")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
	fs.StringVar(&f.cssFile, "print-css", "", "file with print CSS injected into each page")
}

// addCoverFlags adds cover page flags to a FlagSet.
func addCoverFlags(fs *flag.FlagSet, f *coverFlags) {
	fs.StringVar(&f.title, "cover-title", "", "cover page title (implies a cover)")
	fs.StringVar(&f.subtitle, "cover-subtitle", "", "cover page subtitle")
	fs.StringVar(&f.date, "cover-date", "", "cover page date")
	fs.StringVar(&f.description, "cover-desc", "", "cover page description (Markdown)")
	fs.BoolVar(&f.disabled, "no-cover", false, "disable cover page")
}

// parseSnapshotFlags parses snapshot command flags and returns positional args.
func parseSnapshotFlags(args []string) (*snapshotFlags, []string, error) {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	f := &snapshotFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "merged PDF output path")
	fs.StringVar(&f.workDir, "work-dir", "", "directory for per-page PDFs (enables resume)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renderers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addRenderFlags(fs, &f.render)
	addCoverFlags(fs, &f.cover)

	fs.Usage = func() { printSnapshotUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
