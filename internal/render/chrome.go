package render

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"
)

// Renderer drives a headless Chrome/Chromium to turn HTML into PDF
// pages and JPEG snapshots.
type Renderer struct {
	chromePath string
}

func NewRenderer(chromePath string) *Renderer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &Renderer{chromePath: chromePath}
}

// detectChromePath checks CHROME_PATH first, then common install
// locations. Empty means chromedp falls back to its own lookup.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (r *Renderer) newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		chromedpCancel()
		allocCancel()
	}
	return chromedpCtx, cancel
}

func dataURL(html string) string {
	return "data:text/html;charset=utf-8," + url.PathEscape(html)
}

// PDF renders the document on A4 paper with no margins; page layout
// lives in the document's own CSS.
func (r *Renderer) PDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	chromedpCtx, cancelChrome := r.newContext(ctx)
	defer cancelChrome()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(dataURL(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 210mm x 297mm in inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdfBuf, nil
}

// JPEG screenshots the rendered document and re-encodes it as JPEG,
// downscaling anything wider than maxWidth.
func (r *Renderer) JPEG(ctx context.Context, html string, maxWidth int, quality int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	chromedpCtx, cancelChrome := r.newContext(ctx)
	defer cancelChrome()

	var pngBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(dataURL(html)),
		chromedp.WaitReady("body"),
		chromedp.CaptureScreenshot(&pngBuf),
	)
	if err != nil {
		return nil, fmt.Errorf("render screenshot: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(pngBuf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
