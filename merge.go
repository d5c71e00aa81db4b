package site2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// offsetTracker maintains the running total of pages already appended to
// the output. It is local to one Merge call; repeated or concurrent merges
// never share state.
type offsetTracker struct {
	total int
}

// current returns the number of pages appended so far.
func (t *offsetTracker) current() int { return t.total }

// record advances the running total by pageCount. Called exactly once per
// processed entry, after reading that entry's page count.
func (t *offsetTracker) record(pageCount int) { t.total += pageCount }

// pdfBackend abstracts the PDF manipulation layer to enable testing the
// merge bookkeeping without fixture PDFs.
type pdfBackend interface {
	PageCount(path string) (int, error)
	MergeTo(sources []string, dest string) error
	WriteOutline(path string, outline []*OutlineNode, totalPages int) error
}

// Compile-time interface check.
var _ pdfBackend = (*pdfcpuBackend)(nil)

// pdfcpuBackend implements pdfBackend using pdfcpu's file-based API.
type pdfcpuBackend struct {
	conf *model.Configuration
}

// newPdfcpuBackend creates a backend with relaxed validation, since
// browser-generated PDFs are not always strictly conformant.
func newPdfcpuBackend() *pdfcpuBackend {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfcpuBackend{conf: conf}
}

func (b *pdfcpuBackend) PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

func (b *pdfcpuBackend) MergeTo(sources []string, dest string) error {
	return api.MergeCreateFile(sources, dest, false, b.conf)
}

// WriteOutline rewrites path with the given outline attached. pdfcpu wants
// distinct in/out files, so it writes a sibling temp file and renames it back.
func (b *pdfcpuBackend) WriteOutline(path string, outline []*OutlineNode, totalPages int) error {
	bms := toBookmarks(outline, totalPages)
	if len(bms) == 0 {
		return nil
	}

	tmp := path + ".outline"
	if err := api.AddBookmarksFile(path, tmp, bms, true, b.conf); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// toBookmarks converts the outline forest to pdfcpu bookmarks. Bookmark
// pages are 1-based; a node pointing past the end (a zero-page source at
// the tail of the sequence) is clamped to the last existing page.
func toBookmarks(nodes []*OutlineNode, totalPages int) []pdfcpu.Bookmark {
	if len(nodes) == 0 {
		return nil
	}

	bms := make([]pdfcpu.Bookmark, 0, len(nodes))
	for _, n := range nodes {
		pageFrom := n.Page + 1
		if pageFrom > totalPages {
			pageFrom = totalPages
		}
		bms = append(bms, pdfcpu.Bookmark{
			Title:    n.Title,
			PageFrom: pageFrom,
			Kids:     toBookmarks(n.Children, totalPages),
		})
	}
	return bms
}

// MergeResult describes a successfully merged document.
type MergeResult struct {
	Pages   int            // Total page count of the output
	Outline []*OutlineNode // One node per input entry, nested by depth
}

// Merger concatenates single-document PDFs into one file whose outline has
// one bookmark per input, nested by depth, each targeting the first page
// contributed by its source.
type Merger struct {
	backend pdfBackend
}

// NewMerger creates a Merger backed by pdfcpu.
func NewMerger() *Merger {
	return &Merger{backend: newPdfcpuBackend()}
}

// Merge processes entries strictly in order: reads each source's page
// count, assigns the pre-advance offset as the entry's bookmark target,
// then concatenates all pages and writes the outline.
//
// Policies:
//   - An empty entry sequence fails with ErrNoEntries.
//   - A zero-page source contributes no pages but keeps its outline node;
//     its bookmark resolves to the next entry's first page (or the last
//     page, if nothing follows).
//   - If every source is empty the merge fails with ErrNoPages, since a
//     PDF must contain at least one page.
//
// On any failure no output is produced: the merge happens in a temp file
// next to outputPath which is renamed only after every step succeeds, so
// an existing destination is never left half-written.
func (m *Merger) Merge(ctx context.Context, entries []DocumentEntry, outputPath string) (*MergeResult, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	tracker := &offsetTracker{}
	flat := make([]outlineEntry, 0, len(entries))
	sources := make([]string, 0, len(entries))

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.Depth < 0 {
			return nil, fmt.Errorf("%w: entry %d (%q) has depth %d", ErrNegativeDepth, i, e.Title, e.Depth)
		}

		count, err := m.backend.PageCount(e.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q) at %s: %v", ErrSourceUnreadable, i, e.Title, e.Source, err)
		}

		flat = append(flat, outlineEntry{title: e.Title, depth: e.Depth, page: tracker.current()})
		if count > 0 {
			sources = append(sources, e.Source)
		}
		tracker.record(count)
	}

	if tracker.current() == 0 {
		return nil, fmt.Errorf("%w: all %d sources are empty", ErrNoPages, len(entries))
	}

	outline := buildOutline(flat)

	// Merge into a temp file in the destination directory so the final
	// rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".site2pdf-merge-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer func() { _ = os.Remove(tmpPath) }() // no-op once renamed

	if err := m.backend.MergeTo(sources, tmpPath); err != nil {
		return nil, fmt.Errorf("%w: merging %d documents: %v", ErrWriteOutput, len(sources), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := m.backend.WriteOutline(tmpPath, outline, tracker.current()); err != nil {
		return nil, fmt.Errorf("%w: writing outline: %v", ErrWriteOutput, err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	return &MergeResult{Pages: tracker.current(), Outline: outline}, nil
}
