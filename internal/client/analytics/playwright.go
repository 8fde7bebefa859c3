package analytics

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Browser is a Capturer backed by headless Chromium. The browser starts on
// first use and lives until Close.
type Browser struct {
	install bool

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewBrowser returns a lazily started browser. With install set, missing
// browser binaries are downloaded on first use.
func NewBrowser(install bool) *Browser {
	return &Browser{install: install}
}

func (b *Browser) start() (playwright.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	if b.install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(true)})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	b.pw, b.browser = pw, browser
	return browser, nil
}

func (b *Browser) newPage(ctx context.Context) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := b.start()
	if err != nil {
		return nil, err
	}
	return browser.NewPage(playwright.BrowserNewPageOptions{
		DeviceScaleFactor: playwright.Float(2),
		Viewport:          &playwright.Size{Width: 800, Height: 1000},
	})
}

func (b *Browser) CapturePNG(ctx context.Context, doc []byte, selector string) ([]byte, error) {
	page, err := b.newPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.SetContent(string(doc)); err != nil {
		return nil, err
	}
	return page.Locator(selector).Screenshot(playwright.LocatorScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
}

const pdfPage = `<!DOCTYPE html><html><head><style>
@page { margin: 0; }
html, body { margin: 0; padding: 0; background: #0f172a; }
img { display: block; width: %.2fmm; height: %.2fmm; }
</style></head><body><img src="data:image/png;base64,%s"></body></html>`

func (b *Browser) PrintPDF(ctx context.Context, img []byte, widthMM, heightMM float64) ([]byte, error) {
	page, err := b.newPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	html := fmt.Sprintf(pdfPage, widthMM, heightMM, base64.StdEncoding.EncodeToString(img))
	if err := page.SetContent(html); err != nil {
		return nil, err
	}

	return page.PDF(playwright.PagePdfOptions{
		Width:           playwright.String(fmt.Sprintf("%.2fmm", widthMM)),
		Height:          playwright.String(fmt.Sprintf("%.2fmm", heightMM)),
		PrintBackground: playwright.Bool(true),
		PageRanges:      playwright.String("1"),
	})
}

// Close shuts the browser down. It is safe to call when never started.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	if stopErr := b.pw.Stop(); err == nil {
		err = stopErr
	}
	b.pw, b.browser = nil, nil
	return err
}
