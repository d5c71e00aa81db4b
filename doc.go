// Package site2pdf snapshots a documentation site into a single PDF with
// a navigable outline.
//
// # Quick Start
//
// Create a service, snapshot a site, and close when done:
//
//	svc := site2pdf.New()
//	defer svc.Close()
//
//	result, err := svc.Snapshot(ctx, "https://zed.dev/docs", "work", "zed-docs.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %s (%d pages)\n", result.OutputPath, result.Pages)
//
// # Pipeline
//
// A snapshot runs three stages:
//
//  1. TOC resolution: the site's sidebar is fetched and parsed (goquery)
//     into an ordered list of (title, url, depth) entries.
//  2. Page rendering: each page is rendered to its own PDF via headless
//     Chrome (go-rod), in parallel, with print CSS hiding site chrome.
//     Already-rendered pages in the work directory are reused.
//  3. Merging: the per-page PDFs are concatenated in TOC order (pdfcpu)
//     and the merged document gets one bookmark per page, nested by
//     sidebar depth, targeting the first page each source contributed.
//
// The merge engine is usable on its own for pre-rendered inputs:
//
//	m := site2pdf.NewMerger()
//	result, err := m.Merge(ctx, []site2pdf.DocumentEntry{
//	    {Title: "Getting Started", Source: "01.pdf", Depth: 0},
//	    {Title: "Installation", Source: "02.pdf", Depth: 1},
//	}, "book.pdf")
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := site2pdf.New(
//	    site2pdf.WithTimeout(2 * time.Minute),
//	    site2pdf.WithWorkers(4),
//	    site2pdf.WithSidebarSelector("nav.toc"),
//	    site2pdf.WithCover(&site2pdf.Cover{Title: "Zed Docs"}),
//	)
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; CI environments
// run with the sandbox disabled.
package site2pdf
