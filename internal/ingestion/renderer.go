package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Renderer rasterizes the first page of a document into an encoded image.
type Renderer interface {
	RenderFirstPage(ctx context.Context, document []byte) ([]byte, error)
}

// A4 at 96 dpi, doubled. Resumes are rendered at a fixed 2x upscale so the
// model gets legible text.
const (
	renderWidth  = 1588
	renderHeight = 2246
)

// ChromedpRenderer renders the first page of a PDF via headless Chrome's
// built-in viewer and screenshots the viewport as PNG.
type ChromedpRenderer struct{}

func NewChromedpRenderer() *ChromedpRenderer { return &ChromedpRenderer{} }

func (r *ChromedpRenderer) RenderFirstPage(ctx context.Context, document []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "resume.pdf")
	if err := os.WriteFile(pdfPath, document, 0o644); err != nil {
		return nil, err
	}

	var buf []byte
	err = chromedp.Run(ctx2,
		chromedp.EmulateViewport(renderWidth, renderHeight),
		chromedp.Navigate("file://"+pdfPath),
		// The PDF viewer has no DOM ready signal; give it a moment to paint.
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
