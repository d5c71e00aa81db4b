package site2pdf

// Notes:
// - Uses httptest servers; no live network.
// - Covers: entry order, depth extraction from nested items, link-less
//   section headings, duplicate targets, relative URL resolution, and the
//   fetch/parse error kinds.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// sidebarHTML mimics an mdBook navigation tree: nested chapter items,
// a link-less part title, and a duplicate link.
const sidebarHTML = `<!DOCTYPE html>
<html><body>
<nav id="sidebar">
  <ol class="chapter">
    <li class="chapter-item"><a href="getting-started">Getting Started</a>
      <ol class="section">
        <li class="chapter-item"><a href="getting-started/install">Install</a></li>
        <li class="chapter-item"><a href="getting-started/setup">Setup</a>
          <ol class="section">
            <li class="chapter-item"><a href="getting-started/setup/keys">Key Bindings</a></li>
          </ol>
        </li>
      </ol>
    </li>
    <li class="chapter-item part-title">Reference</li>
    <li class="chapter-item"><a href="reference/config">Configuration</a></li>
    <li class="chapter-item"><a href="getting-started">Start Here</a></li>
  </ol>
</nav>
</body></html>`

func newSidebarServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ---------------------------------------------------------------------------
// TestHTMLResolver_Resolve - Order, depth, dedup
// ---------------------------------------------------------------------------

func TestHTMLResolver_Resolve(t *testing.T) {
	t.Parallel()

	srv := newSidebarServer(t, sidebarHTML)
	resolver := newHTMLResolver("", "", "")

	entries, err := resolver.Resolve(context.Background(), srv.URL+"/docs/")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []PageEntry{
		{Title: "Getting Started", URL: srv.URL + "/docs/getting-started", Depth: 0},
		{Title: "Install", URL: srv.URL + "/docs/getting-started/install", Depth: 1},
		{Title: "Setup", URL: srv.URL + "/docs/getting-started/setup", Depth: 1},
		{Title: "Key Bindings", URL: srv.URL + "/docs/getting-started/setup/keys", Depth: 2},
		{Title: "Configuration", URL: srv.URL + "/docs/reference/config", Depth: 0},
	}

	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestHTMLResolver_CustomSelectors(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<nav class="toc"><ul>
	  <li class="toc-entry"><a href="/one">One</a></li>
	  <li class="toc-entry"><a href="/two">Two</a></li>
	</ul></nav>
	</body></html>`

	srv := newSidebarServer(t, html)
	resolver := newHTMLResolver("", "nav.toc", ".toc-entry")

	entries, err := resolver.Resolve(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "One" || entries[1].Title != "Two" {
		t.Errorf("entries = %+v, want [One, Two]", entries)
	}
	if entries[0].URL != srv.URL+"/one" {
		t.Errorf("URL = %q, want %q", entries[0].URL, srv.URL+"/one")
	}
}

// ---------------------------------------------------------------------------
// TestHTMLResolver_Errors
// ---------------------------------------------------------------------------

func TestHTMLResolver_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		status  int
		siteURL string // "" = use test server URL
		wantErr error
	}{
		{
			name:    "empty URL",
			siteURL: " ", // placeholder, replaced below
			wantErr: ErrEmptySiteURL,
		},
		{
			name:    "unsupported scheme",
			siteURL: "ftp://example.com/docs",
			wantErr: ErrTOCFetch,
		},
		{
			name:    "http error status",
			html:    sidebarHTML,
			status:  http.StatusNotFound,
			wantErr: ErrTOCFetch,
		},
		{
			name:    "missing sidebar",
			html:    `<html><body><p>no nav here</p></body></html>`,
			wantErr: ErrTOCParse,
		},
		{
			name:    "sidebar without linked items",
			html:    `<html><body><nav id="sidebar"><li class="chapter-item">Part One</li></nav></body></html>`,
			wantErr: ErrNoTOCEntries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				fmt.Fprint(w, tt.html)
			}))
			defer srv.Close()

			siteURL := tt.siteURL
			switch siteURL {
			case "":
				siteURL = srv.URL
			case " ":
				siteURL = ""
			}

			resolver := newHTMLResolver("", "", "")
			_, err := resolver.Resolve(context.Background(), siteURL)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTMLResolver_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, sidebarHTML)
	}))
	defer srv.Close()

	resolver := newHTMLResolver("doc-snapshotter/2.0", "", "")
	if _, err := resolver.Resolve(context.Background(), srv.URL); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if gotUA != "doc-snapshotter/2.0" {
		t.Errorf("User-Agent = %q, want doc-snapshotter/2.0", gotUA)
	}
}
