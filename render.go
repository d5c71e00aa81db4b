package site2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-site2pdf/internal/fileutil"
)

// pageRenderer abstracts URL/HTML to PDF rendering to enable testing
// without a browser.
type pageRenderer interface {
	RenderURL(ctx context.Context, pageURL string) ([]byte, error)
	RenderHTML(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ pageRenderer = (*rodRenderer)(nil)

// Paper dimensions in inches, portrait.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// defaultPrintCSS hides site chrome that has no place in a printed page.
// The selectors cover mdBook-style layouts; override via WithPrintCSS for
// other site generators.
const defaultPrintCSS = `
@media print {
    #sidebar, .header-bar, .menu-bar, .toc-container, .footer-buttons, .nav-wrapper {
        display: none !important;
    }
}

body, #body-container {
    height: auto;
    overflow: auto;
}
`

// injectStyleJS appends a style element carrying the print CSS.
const injectStyleJS = `(css) => {
    const style = document.createElement("style");
    style.textContent = css;
    document.head.appendChild(style);
}`

// rodRenderer renders live pages to PDF using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	timeout  time.Duration
	printCSS string
	settings *RenderSettings
}

// newRodRenderer creates a rodRenderer. Nil settings mean defaults.
func newRodRenderer(timeout time.Duration, printCSS string, settings *RenderSettings) *rodRenderer {
	if settings == nil {
		settings = DefaultRenderSettings()
	}
	return &rodRenderer{
		timeout:  timeout,
		printCSS: printCSS,
		settings: settings,
	}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderURL opens pageURL in headless Chrome, injects the print CSS, and
// renders the loaded page to PDF.
func (r *rodRenderer) RenderURL(ctx context.Context, pageURL string) ([]byte, error) {
	return r.render(ctx, pageURL)
}

// RenderHTML writes htmlContent to a temp file and renders it like a page.
// Used for the cover, which has no live URL.
func (r *rodRenderer) RenderHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.render(ctx, "file://"+tmpPath)
}

func (r *rodRenderer) render(ctx context.Context, target string) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if css := r.printCSS; css != "" {
		if _, err := page.Eval(injectStyleJS, css); err != nil {
			return nil, fmt.Errorf("%w: injecting print CSS: %v", ErrPDFGeneration, err)
		}
	}

	reader, err := page.PDF(r.buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from the render settings.
func (r *rodRenderer) buildPDFOptions() *proto.PagePrintToPDF {
	width, height := paperDimensions(r.settings)

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(r.settings.Margin),
		MarginBottom:    floatPtr(r.settings.Margin),
		MarginLeft:      floatPtr(r.settings.Margin),
		MarginRight:     floatPtr(r.settings.Margin),
		PrintBackground: false,
	}
}

// paperDimensions returns (width, height) in inches for the settings,
// swapping the axes for landscape orientation.
func paperDimensions(s *RenderSettings) (float64, float64) {
	dims, ok := paperSizes[strings.ToLower(s.Size)]
	if !ok {
		dims = paperSizes[PageSizeLetter]
	}

	if strings.ToLower(s.Orientation) == OrientationLandscape {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
