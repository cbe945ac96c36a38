package export

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromeRasterizer prints HTML to PDF with headless Chrome.
type ChromeRasterizer struct {
	// ExecPath overrides the browser binary. Empty falls back to CHROME_PATH, then to lookup.
	ExecPath string
	Timeout  time.Duration
}

// Compile-time check that ChromeRasterizer implements Rasterizer.
var _ Rasterizer = (*ChromeRasterizer)(nil)

// NewChromeRasterizer creates a ChromeRasterizer with a 60 second budget.
func NewChromeRasterizer() *ChromeRasterizer {
	return &ChromeRasterizer{ExecPath: os.Getenv("CHROME_PATH"), Timeout: 60 * time.Second}
}

// Rasterize loads html into a blank page and prints it. No network access is needed.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()
	if r.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		cctx, cancelTimeout = context.WithTimeout(cctx, r.Timeout)
		defer cancelTimeout()
	}

	var pdf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
