package site2pdf

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeRenderer is a pageRenderer for pool and service tests. Rendered
// output is deterministic so tests can assert on written files.
type fakeRenderer struct {
	mu       sync.Mutex
	urls     []string
	renderFn func(pageURL string) ([]byte, error)
	htmlFn   func(htmlContent string) ([]byte, error)
	closed   bool
}

func (f *fakeRenderer) RenderURL(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.urls = append(f.urls, pageURL)
	f.mu.Unlock()
	if f.renderFn != nil {
		return f.renderFn(pageURL)
	}
	return []byte("%PDF " + pageURL), nil
}

func (f *fakeRenderer) RenderHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.htmlFn != nil {
		return f.htmlFn(htmlContent)
	}
	return []byte("%PDF cover"), nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestRendererPool
// ---------------------------------------------------------------------------

func TestRendererPoolLazyCreation(t *testing.T) {
	t.Parallel()

	var created atomic.Int32
	pool := newRendererPool(4, func() pageRenderer {
		created.Add(1)
		return &fakeRenderer{}
	})

	if created.Load() != 0 {
		t.Fatalf("created %d renderers before first acquire", created.Load())
	}

	r := pool.Acquire()
	if created.Load() != 1 {
		t.Errorf("created = %d after one acquire, want 1", created.Load())
	}
	pool.Release(r)

	// Release then acquire reuses the existing renderer.
	r2 := pool.Acquire()
	if created.Load() != 1 {
		t.Errorf("created = %d after reuse, want 1", created.Load())
	}
	pool.Release(r2)
}

func TestRendererPoolCapacity(t *testing.T) {
	t.Parallel()

	var created atomic.Int32
	pool := newRendererPool(2, func() pageRenderer {
		created.Add(1)
		return &fakeRenderer{}
	})

	a := pool.Acquire()
	b := pool.Acquire()
	if created.Load() != 2 {
		t.Fatalf("created = %d, want 2", created.Load())
	}

	// Third acquire must wait until a release.
	done := make(chan pageRenderer)
	go func() { done <- pool.Acquire() }()

	select {
	case <-done:
		t.Fatal("Acquire returned without a free renderer")
	default:
	}

	pool.Release(a)
	c := <-done
	if created.Load() != 2 {
		t.Errorf("created = %d after blocking acquire, want 2", created.Load())
	}

	pool.Release(b)
	pool.Release(c)
}

func TestRendererPoolClose(t *testing.T) {
	t.Parallel()

	pool := newRendererPool(2, func() pageRenderer {
		return &fakeRenderer{}
	})

	r := pool.Acquire().(*fakeRenderer)
	pool.Release(r)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !r.closed {
		t.Error("renderer not closed")
	}

	// Double close is a no-op; release after close is swallowed.
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	pool.Release(r)
}

func TestRendererPoolMinimumSize(t *testing.T) {
	t.Parallel()

	pool := newRendererPool(0, func() pageRenderer { return &fakeRenderer{} })
	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(5); got != 5 {
		t.Errorf("ResolvePoolSize(5) = %d, want 5", got)
	}

	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, outside [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}

	if got := ResolvePoolSize(-3); got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(-3) = %d, outside [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}
}
