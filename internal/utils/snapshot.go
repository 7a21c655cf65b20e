package utils

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
)

// ErrRendererDisabled is returned when no headless browser is configured.
var ErrRendererDisabled = errors.New("snapshot renderer disabled")

// Renderer turns an HTML page into a PNG image.
type Renderer interface {
	RenderPNG(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer screenshots a page with a headless Chrome driven by chromedp.
type ChromeRenderer struct {
	Width   int
	Timeout time.Duration
}

func NewChromeRenderer(width int) *ChromeRenderer {
	if width <= 0 {
		width = 900
	}
	return &ChromeRenderer{Width: width, Timeout: 30 * time.Second}
}

func (r *ChromeRenderer) RenderPNG(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(r.Width, 800),
			chromedp.DisableGPU,
		)...,
	)
	defer cancelAlloc()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.Timeout)
	defer cancelTimeout()

	var png []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.WaitVisible("#order", chromedp.ByQuery),
		chromedp.Screenshot("#order", &png, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	return png, nil
}

// NoopRenderer is used when Chrome is not available on the host.
type NoopRenderer struct{}

func (NoopRenderer) RenderPNG(context.Context, string) ([]byte, error) {
	return nil, ErrRendererDisabled
}
