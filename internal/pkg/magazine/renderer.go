package magazine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

// A4 paper size in inches, the unit PrintToPDF wants.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
	mmPerInch  = 25.4
)

// Margins holds the print margins in millimeters.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// RenderSession is one acquired browser with which pages are rasterized.
// It must be closed on every exit path of a generation run.
type RenderSession interface {
	RenderFile(htmlPath string) ([]byte, error)
	Close()
}

// Renderer hands out rendering sessions, one per magazine-generation request.
type Renderer interface {
	NewSession(ctx context.Context) (RenderSession, error)
}

// ChromeRenderer renders HTML files to PDF through a headless Chrome
// instance driven over the DevTools protocol.
type ChromeRenderer struct {
	Margins Margins
	Timeout time.Duration
}

// NewChromeRenderer builds a renderer with full-bleed margins and a per-page
// render timeout.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{
		Timeout: 60 * time.Second,
	}
}

type chromeSession struct {
	ctx     context.Context
	margins Margins
	timeout time.Duration
	cancels []context.CancelFunc
}

// NewSession launches one browser process. The session wraps both the
// allocator and browser contexts so Close reliably reaps the OS process.
func (r *ChromeRenderer) NewSession(ctx context.Context) (RenderSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so acquisition failures surface here, not in the
	// middle of a render.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, apperr.Upstream("chrome", "failed to launch headless browser", err)
	}

	return &chromeSession{
		ctx:     browserCtx,
		margins: r.Margins,
		timeout: r.Timeout,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
	}, nil
}

// RenderFile navigates to the HTML file and prints it as an A4 PDF with
// backgrounds enabled.
func (s *chromeSession) RenderFile(htmlPath string) ([]byte, error) {
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("resolve html path: %w", err)
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+absPath),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithPrintBackground(true).
				WithMarginTop(s.margins.Top / mmPerInch).
				WithMarginRight(s.margins.Right / mmPerInch).
				WithMarginBottom(s.margins.Bottom / mmPerInch).
				WithMarginLeft(s.margins.Left / mmPerInch).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, apperr.Upstream("chrome", fmt.Sprintf("render %s", filepath.Base(absPath)), err)
	}
	return pdf, nil
}

// Close tears down the browser and allocator contexts.
func (s *chromeSession) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}
