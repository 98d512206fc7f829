// Package export prints a rendered resume to PDF with a headless browser.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTimeout bounds a single print job including browser start-up
const DefaultTimeout = 60 * time.Second

// A4 portrait in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// Options configures the headless browser
type Options struct {
	Timeout time.Duration
	// ExecPath overrides the Chrome binary; empty uses CHROME_PATH or the default lookup
	ExecPath string
	Verbose  bool
}

// Exporter prints HTML documents to PDF
type Exporter struct {
	opts Options
}

// NewExporter returns an Exporter, filling zero options with defaults
func NewExporter(opts Options) *Exporter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ExecPath == "" {
		opts.ExecPath = os.Getenv("CHROME_PATH")
	}
	return &Exporter{opts: opts}
}

func (e *Exporter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.opts.ExecPath))
	}
	return opts
}

// PDF loads html into a blank page and prints it as A4 portrait with backgrounds
func (e *Exporter) PDF(ctx context.Context, html string) ([]byte, error) {
	if e.opts.Verbose {
		log.Printf("[export] starting headless browser (%d bytes of HTML)", len(html))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.opts.Timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
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
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf export failed: %w", err)
	}

	if e.opts.Verbose {
		log.Printf("[export] printed PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

// Resume renders data with the given layout and prints it
func (e *Exporter) Resume(ctx context.Context, data *types.ResumeData, id types.TemplateID) ([]byte, error) {
	var buf bytes.Buffer
	if err := rendering.RenderHTML(&buf, data, id); err != nil {
		return nil, err
	}
	return e.PDF(ctx, buf.String())
}

// FileName returns "<name>.pdf", or "resume.pdf" when the resume has no name.
// Path separators and control characters are replaced so the result is a single file name.
func FileName(data *types.ResumeData) string {
	name := ""
	if data != nil {
		name = strings.TrimSpace(data.PersonalInfo.Name)
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '-'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "resume"
	}
	return name + ".pdf"
}
