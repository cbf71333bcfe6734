package mdpages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpages/internal/fileutil"
)

// pdfConverter turns an assembled page into PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// pagePrinter prints the document at a URL. It is the browser seam:
// tests replace it so no Chrome is needed.
type pagePrinter interface {
	Print(ctx context.Context, pageURL string, timeout time.Duration) ([]byte, error)
	Close() error
}

// A4 with the 1.5cm margins of the templates' @page rule, in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.59
)

// chromeExporter writes each page to a temp file and has headless Chrome
// print it, so relative asset URLs and web fonts resolve as in a browser.
type chromeExporter struct {
	printer pagePrinter
	timeout time.Duration
}

func newChromeExporter(timeout time.Duration) *chromeExporter {
	return &chromeExporter{printer: &rodPrinter{getenv: os.Getenv}, timeout: timeout}
}

// ToPDF exports one page. The per-page timeout is clamped to ctx's deadline.
func (e *chromeExporter) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	timeout, err := exportTimeout(ctx, e.timeout)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.printer.Print(ctx, fileURL(path), timeout)
}

func (e *chromeExporter) Close() error {
	return e.printer.Close()
}

// exportTimeout returns how long a single export may take: limit, or
// less when ctx expires sooner.
func exportTimeout(ctx context.Context, limit time.Duration) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return limit, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	return min(limit, remaining), nil
}

// fileURL converts a local path to an escaped file:// URL.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// rodPrinter drives a lazily launched Chrome through go-rod. Rod
// downloads Chromium on first use when no browser is found.
type rodPrinter struct {
	getenv  func(string) string
	browser *rod.Browser
}

// chromeLauncher configures the launcher from the environment:
// ROD_BROWSER_BIN selects a preinstalled browser, and the sandbox is
// disabled in CI, on request, or with a preinstalled (container) browser.
func chromeLauncher(getenv func(string) string) *launcher.Launcher {
	l := launcher.New()
	bin := getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if bin != "" || getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	return l
}

func (p *rodPrinter) connect() error {
	if p.browser != nil {
		return nil
	}

	controlURL, err := chromeLauncher(p.getenv).Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	p.browser = browser
	return nil
}

func (p *rodPrinter) Print(ctx context.Context, pageURL string, timeout time.Duration) ([]byte, error) {
	if err := p.connect(); err != nil {
		return nil, err
	}

	page, err := p.browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Fonts come from the network; the load wait is bounded by timeout
	// and aborted with ctx.
	bound := page.Context(ctx).Timeout(timeout)
	defer bound.CancelTimeout()

	if err := bound.WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	stream, err := bound.PDF(pdfOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

func (p *rodPrinter) Close() error {
	if p.browser == nil {
		return nil
	}
	err := p.browser.Close()
	p.browser = nil
	return err
}

// pdfOptions returns the print settings for every page. The templates
// carry their own footer, so Chrome's header and footer stay off.
func pdfOptions() *proto.PagePrintToPDF {
	width, height, margin := paperWidthInches, paperHeightInches, marginInches
	return &proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
		PrintBackground: true,
	}
}
