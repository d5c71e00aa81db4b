package site2pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// coverTitleFallback labels the cover's outline node when no title is set.
const coverTitleFallback = "Cover"

// coverTemplate is a full-page, vertically centered title block. The
// description slot receives HTML produced by goldmark from trusted,
// caller-supplied Markdown.
var coverTemplate = template.Must(template.New("cover").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
html, body { height: 100%; margin: 0; }
body {
    display: flex;
    flex-direction: column;
    justify-content: center;
    align-items: center;
    font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    text-align: center;
}
h1 { font-size: 2.4em; margin: 0 0 0.3em; }
.subtitle { font-size: 1.3em; color: #555; margin: 0 0 1.5em; }
.date { color: #888; margin-bottom: 2em; }
.description { max-width: 32em; font-size: 0.95em; color: #333; text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}
{{if .Date}}<p class="date">{{.Date}}</p>{{end}}
{{if .Description}}<div class="description">{{.Description}}</div>{{end}}
</body>
</html>`))

// coverData feeds coverTemplate.
type coverData struct {
	Title       string
	Subtitle    string
	Date        string
	Description template.HTML
}

// coverMarkdown converts the cover description with the GFM extensions.
var coverMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// buildCoverHTML renders the cover configuration to a standalone HTML page
// ready for the browser renderer.
func buildCoverHTML(c *Cover) (string, error) {
	data := coverData{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Date:     c.Date,
	}
	if data.Title == "" {
		data.Title = coverTitleFallback
	}

	if c.Description != "" {
		var buf bytes.Buffer
		if err := coverMarkdown.Convert([]byte(c.Description), &buf); err != nil {
			return "", fmt.Errorf("%w: converting description: %v", ErrCoverRender, err)
		}
		data.Description = template.HTML(buf.String()) // #nosec G203 -- caller-supplied config, not user input
	}

	var out bytes.Buffer
	if err := coverTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCoverRender, err)
	}
	return out.String(), nil
}

// coverOutlineTitle returns the bookmark label for the cover entry.
func coverOutlineTitle(c *Cover) string {
	if c.Title != "" {
		return c.Title
	}
	return coverTitleFallback
}
