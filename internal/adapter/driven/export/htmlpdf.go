package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	// A4 paisagem, em polegadas
	chromePaperWidth  = 11.69
	chromePaperHeight = 8.27
	chromeMargin      = 0.4
)

// HTMLPrinter turns an HTML document into PDF bytes.
type HTMLPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter imprime HTML em PDF com um Chrome headless.
type ChromePrinter struct {
	timeout time.Duration
	execOpt []chromedp.ExecAllocatorOption
}

// NewChromePrinter cria um ChromePrinter; timeout limita cada impressão.
func NewChromePrinter(timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
	)
	return &ChromePrinter{timeout: timeout, execOpt: opts}
}

// PrintPDF writes the HTML to a temp file, loads it in Chrome and prints it.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "erp-report-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp HTML file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write HTML to temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp HTML file: %w", err)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, p.execOpt...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	timeoutCtx, cancel := context.WithTimeout(browserCtx, p.timeout)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(timeoutCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(tmpName)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(chromePaperWidth).
				WithPaperHeight(chromePaperHeight).
				WithMarginTop(chromeMargin).
				WithMarginBottom(chromeMargin).
				WithMarginLeft(chromeMargin).
				WithMarginRight(chromeMargin).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF with chrome: %w", err)
	}

	return pdfBuf, nil
}
