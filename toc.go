package site2pdf

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Default CSS selectors matching mdBook-style documentation sidebars.
const (
	DefaultSidebarSelector = "#sidebar"
	DefaultItemSelector    = ".chapter-item"
)

// defaultUserAgent identifies the tool when fetching the TOC page.
const defaultUserAgent = "go-site2pdf/1.0 (+https://github.com/alnah/go-site2pdf)"

// maxRedirects caps redirect chains when fetching the TOC.
const maxRedirects = 10

// tocResolver abstracts TOC resolution to enable testing without a network.
type tocResolver interface {
	Resolve(ctx context.Context, siteURL string) ([]PageEntry, error)
}

// Compile-time interface check.
var _ tocResolver = (*htmlResolver)(nil)

// htmlResolver extracts the ordered page list from a documentation site's
// navigation sidebar.
type htmlResolver struct {
	client          *http.Client
	userAgent       string
	sidebarSelector string
	itemSelector    string
}

// newHTMLResolver creates a resolver for the given selectors. Empty
// selectors fall back to the mdBook defaults.
func newHTMLResolver(userAgent, sidebarSelector, itemSelector string) *htmlResolver {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if sidebarSelector == "" {
		sidebarSelector = DefaultSidebarSelector
	}
	if itemSelector == "" {
		itemSelector = DefaultItemSelector
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			// Preserve User-Agent across redirects
			req.Header.Set("User-Agent", userAgent)
			return nil
		},
	}

	return &htmlResolver{
		client:          client,
		userAgent:       userAgent,
		sidebarSelector: sidebarSelector,
		itemSelector:    itemSelector,
	}
}

// Resolve fetches siteURL and returns one PageEntry per linked sidebar
// item, in sidebar order. Items without a link (pure section headings) are
// skipped, duplicate targets are kept only at their first position, and
// relative hrefs are resolved against siteURL.
func (r *htmlResolver) Resolve(ctx context.Context, siteURL string) ([]PageEntry, error) {
	if siteURL == "" {
		return nil, ErrEmptySiteURL
	}

	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %v", ErrTOCFetch, siteURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrTOCFetch, base.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTOCFetch, err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.7")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTOCFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrTOCFetch, siteURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTOCParse, err)
	}

	return r.extractEntries(doc, base)
}

// extractEntries walks the sidebar items and builds the ordered entry list.
// Depth is the number of enclosing sidebar items, which mirrors the nested
// section lists of the navigation tree.
func (r *htmlResolver) extractEntries(doc *goquery.Document, base *url.URL) ([]PageEntry, error) {
	nav := doc.Find(r.sidebarSelector).First()
	if nav.Length() == 0 {
		return nil, fmt.Errorf("%w: no element matches %q", ErrTOCParse, r.sidebarSelector)
	}

	seen := make(map[string]bool)
	var entries []PageEntry

	nav.Find(r.itemSelector).Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return // section heading without a page
		}

		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if !ok || title == "" || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		target := base.ResolveReference(ref).String()

		if seen[target] {
			return
		}
		seen[target] = true

		entries = append(entries, PageEntry{
			Title: title,
			URL:   target,
			Depth: item.ParentsFiltered(r.itemSelector).Length(),
		})
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %q matched nothing under %q", ErrNoTOCEntries, r.itemSelector, r.sidebarSelector)
	}

	return entries, nil
}
