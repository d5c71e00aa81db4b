package site2pdf

import (
	"strings"
	"testing"
)

func TestBuildCoverHTML(t *testing.T) {
	t.Parallel()

	html, err := buildCoverHTML(&Cover{
		Title:       "Project Docs",
		Subtitle:    "User Guide",
		Date:        "2026-08-30",
		Description: "Rendered from **Markdown** with a [link](https://example.com).",
	})
	if err != nil {
		t.Fatalf("buildCoverHTML() error = %v", err)
	}

	for _, want := range []string{
		"<h1>Project Docs</h1>",
		"User Guide",
		"2026-08-30",
		"<strong>Markdown</strong>",
		`<a href="https://example.com">link</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("cover HTML missing %q", want)
		}
	}
}

func TestBuildCoverHTML_OmitsEmptySections(t *testing.T) {
	t.Parallel()

	html, err := buildCoverHTML(&Cover{Title: "Bare"})
	if err != nil {
		t.Fatalf("buildCoverHTML() error = %v", err)
	}

	for _, absent := range []string{"subtitle", "date", "description"} {
		if strings.Contains(html, `class="`+absent+`"`) {
			t.Errorf("cover HTML contains empty %s section", absent)
		}
	}
}

func TestBuildCoverHTML_EscapesTitle(t *testing.T) {
	t.Parallel()

	html, err := buildCoverHTML(&Cover{Title: `Docs <script>alert("x")</script>`})
	if err != nil {
		t.Fatalf("buildCoverHTML() error = %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("title not HTML-escaped")
	}
}

func TestCoverOutlineTitle(t *testing.T) {
	t.Parallel()

	if got := coverOutlineTitle(&Cover{Title: "Manual"}); got != "Manual" {
		t.Errorf("coverOutlineTitle = %q, want Manual", got)
	}
	if got := coverOutlineTitle(&Cover{}); got != coverTitleFallback {
		t.Errorf("coverOutlineTitle = %q, want %q", got, coverTitleFallback)
	}
}
