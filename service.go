package site2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alnah/go-site2pdf/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// pdfMerger abstracts the merge engine for testability.
type pdfMerger interface {
	Merge(ctx context.Context, entries []DocumentEntry, outputPath string) (*MergeResult, error)
}

// Compile-time interface check.
var _ pdfMerger = (*Merger)(nil)

// SnapshotResult describes a completed site snapshot.
type SnapshotResult struct {
	OutputPath string
	Pages      int            // Total page count of the merged PDF
	Outline    []*OutlineNode // Merged document outline, one node per entry
	Entries    []PageEntry    // Resolved TOC, in sidebar order
	Rendered   int            // Pages rendered during this run
	Skipped    int            // Pages reused from the work directory
}

// Service orchestrates the snapshot pipeline: resolve the site's TOC,
// render each page to its own PDF, and merge them into one document with
// a depth-nested outline.
type Service struct {
	cfg      serviceConfig
	resolver tocResolver
	merger   pdfMerger
	pool     *RendererPool

	progressMu sync.Mutex
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithWorkers).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:  defaultTimeout,
			printCSS: defaultPrintCSS,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.render == nil {
		s.cfg.render = DefaultRenderSettings()
	}

	// Create pipeline stages if not injected (e.g., by tests)
	if s.resolver == nil {
		s.resolver = newHTMLResolver(s.cfg.userAgent, s.cfg.sidebarSelector, s.cfg.itemSelector)
	}
	if s.merger == nil {
		s.merger = NewMerger()
	}
	if s.pool == nil {
		cfg := s.cfg
		s.pool = newRendererPool(ResolvePoolSize(cfg.workers), func() pageRenderer {
			return newRodRenderer(cfg.timeout, cfg.printCSS, cfg.render)
		})
	}

	return s
}

// renderJob is one page waiting to be rendered to its target path.
type renderJob struct {
	index int // position within the TOC, 0-based
	total int
	entry PageEntry
	path  string
}

// Snapshot runs the full pipeline for one site: resolves the TOC at
// siteURL, renders every page into workDir (reusing files already there,
// so an interrupted run resumes where it stopped), and merges the results
// into outputPath in TOC order.
//
// Page rendering is parallel across the renderer pool; the merge itself is
// strictly sequential since bookmark offsets depend on processing order.
func (s *Service) Snapshot(ctx context.Context, siteURL, workDir, outputPath string) (*SnapshotResult, error) {
	if err := s.cfg.render.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.resolver.Resolve(ctx, siteURL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(workDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}

	docs := make([]DocumentEntry, 0, len(entries)+1)

	if s.cfg.cover != nil {
		coverPath, err := s.renderCover(ctx, workDir)
		if err != nil {
			return nil, err
		}
		docs = append(docs, DocumentEntry{Title: coverOutlineTitle(s.cfg.cover), Source: coverPath, Depth: 0})
	}

	var jobs []renderJob
	skipped := 0
	for i, e := range entries {
		name := fmt.Sprintf("%03d. %s.pdf", i+1, fileutil.SanitizeFilename(e.Title))
		path := filepath.Join(workDir, name)

		if fileutil.FileExists(path) {
			skipped++
			s.reportProgress(Progress{Index: i + 1, Total: len(entries), Title: e.Title, URL: e.URL, Cached: true})
		} else {
			jobs = append(jobs, renderJob{index: i, total: len(entries), entry: e, path: path})
		}

		docs = append(docs, DocumentEntry{Title: e.Title, Source: path, Depth: e.Depth})
	}

	if err := s.renderPages(ctx, jobs); err != nil {
		return nil, err
	}

	merged, err := s.merger.Merge(ctx, docs, outputPath)
	if err != nil {
		return nil, err
	}

	return &SnapshotResult{
		OutputPath: outputPath,
		Pages:      merged.Pages,
		Outline:    merged.Outline,
		Entries:    entries,
		Rendered:   len(jobs),
		Skipped:    skipped,
	}, nil
}

// renderCover renders the configured cover to a PDF inside workDir.
// The cover is re-rendered every run; only site pages are cached.
func (s *Service) renderCover(ctx context.Context, workDir string) (string, error) {
	htmlContent, err := buildCoverHTML(s.cfg.cover)
	if err != nil {
		return "", err
	}

	r := s.pool.Acquire()
	defer s.pool.Release(r)

	pdf, err := r.RenderHTML(ctx, htmlContent)
	if err != nil {
		return "", fmt.Errorf("rendering cover: %w", err)
	}

	path := filepath.Join(workDir, "000. "+fileutil.SanitizeFilename(coverOutlineTitle(s.cfg.cover))+".pdf")
	if err := os.WriteFile(path, pdf, filePermissions); err != nil {
		return "", fmt.Errorf("writing cover: %w", err)
	}
	return path, nil
}

// renderPages renders all jobs using up to pool-size parallel workers.
// The first failure cancels the remaining work and is returned; partially
// rendered pages stay in the work directory for the next run.
func (s *Service) renderPages(parent context.Context, jobs []renderJob) error {
	if len(jobs) == 0 {
		return parent.Err()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	workers := s.pool.Size()
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan renderJob)
	errCh := make(chan error, workers)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if err := s.renderOne(ctx, job); err != nil {
					errCh <- err
					cancel()
					return
				}
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobCh)
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return err
	}
	return parent.Err()
}

// renderOne renders a single page and writes it to its target path.
func (s *Service) renderOne(ctx context.Context, job renderJob) error {
	r := s.pool.Acquire()
	defer s.pool.Release(r)

	pdf, err := r.RenderURL(ctx, job.entry.URL)
	if err != nil {
		return fmt.Errorf("rendering entry %d (%q) at %s: %w", job.index, job.entry.Title, job.entry.URL, err)
	}

	if err := os.WriteFile(job.path, pdf, filePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", job.path, err)
	}

	s.reportProgress(Progress{Index: job.index + 1, Total: job.total, Title: job.entry.Title, URL: job.entry.URL})
	return nil
}

// reportProgress invokes the progress callback, serialized so callers can
// write to a shared stream without their own locking.
func (s *Service) reportProgress(p Progress) {
	if s.cfg.progress == nil {
		return
	}
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.cfg.progress(p)
}

// Close releases resources (headless Chrome browsers).
func (s *Service) Close() error {
	if s.pool != nil {
		return s.pool.Close()
	}
	return nil
}
