package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: site2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  snapshot   Snapshot a documentation site into one bookmarked PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'site2pdf help <command>' for details on a specific command.")
}

// printSnapshotUsage prints usage for the snapshot command.
func printSnapshotUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: site2pdf snapshot <url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fetch a site's table of contents, render every page to PDF, and merge")
	fmt.Fprintln(w, "them into one document with depth-nested bookmarks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  url    TOC page URL (optional if config has site.url)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Merged PDF output path (default: site.pdf)")
	fmt.Fprintln(w, "      --work-dir <path>       Per-page PDF cache directory (default: site-pdf)")
	fmt.Fprintln(w, "  -c, --config <path>         Config file path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel renderers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-page timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --sidebar-selector <s>  Navigation container selector (default: #sidebar)")
	fmt.Fprintln(w, "      --item-selector <s>     TOC item selector (default: .chapter-item)")
	fmt.Fprintln(w, "      --user-agent <s>        User-Agent for the TOC fetch")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --print-css <path>      File with print CSS injected into each page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cover:")
	fmt.Fprintln(w, "      --cover-title <s>       Cover page title (implies a cover)")
	fmt.Fprintln(w, "      --cover-subtitle <s>    Cover page subtitle")
	fmt.Fprintln(w, "      --cover-date <s>        Cover page date")
	fmt.Fprintln(w, "      --cover-desc <s>        Cover page description (Markdown)")
	fmt.Fprintln(w, "      --no-cover              Disable cover page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show per-page progress")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SITE2PDF_CONFIG, SITE2PDF_TIMEOUT, SITE2PDF_WORKERS, SITE2PDF_OUTPUT,")
	fmt.Fprintln(w, "  SITE2PDF_WORK_DIR, SITE2PDF_USER_AGENT, SITE2PDF_PAGE_SIZE,")
	fmt.Fprintln(w, "  SITE2PDF_SIDEBAR_SELECTOR, SITE2PDF_ITEM_SELECTOR")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: CLI flags > environment > config file > defaults.")
}

// runHelp shows help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "snapshot":
		printSnapshotUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: site2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		printUsage(env.Stderr)
	}
}
