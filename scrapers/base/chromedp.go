package base

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const defaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// BrowserFetcher renders pages in headless Chrome, for result pages that need scripts to run
type BrowserFetcher struct {
	Timeout time.Duration
}

// NewBrowserFetcher creates a BrowserFetcher whose navigations give up after timeout
func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	return &BrowserFetcher{Timeout: timeout}
}

// Fetch navigates to url once and returns the rendered document
func (f *BrowserFetcher) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	userAgent := defaultBrowserUserAgent
	extra := network.Headers{}
	for k, v := range headers {
		if k == "User-Agent" {
			userAgent = v
			continue
		}
		// Chrome negotiates encoding itself
		if k == "Accept-Encoding" {
			continue
		}
		extra[k] = v
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if len(extra) > 0 {
		if err := chromedp.Run(taskCtx, network.Enable(), network.SetExtraHTTPHeaders(extra)); err != nil {
			return nil, fmt.Errorf("chromedp header error: %w", err)
		}
	}

	res, err := chromedp.RunResponse(taskCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, fmt.Errorf("chromedp navigation error: %w", err)
	}
	if res != nil && (res.Status < 200 || res.Status > 299) {
		return nil, fmt.Errorf("status code error: %d %s", res.Status, res.StatusText)
	}

	var htmlContent string
	err = chromedp.Run(taskCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp render error: %w", err)
	}

	return []byte(htmlContent), nil
}
