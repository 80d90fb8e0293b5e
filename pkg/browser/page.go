package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/playwright-community/playwright-go"
)

// Driver calls do not take a context, so every adapter method checks ctx
// before talking to the browser.

type pageView struct {
	page     playwright.Page
	fullPage bool
}

func (v pageView) QueryFirst(ctx context.Context, selector string) (types.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	el, err := v.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, nil
	}
	return &element{handle: el}, nil
}

func (v pageView) QueryAll(ctx context.Context, selector string) ([]types.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := v.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	out := make([]types.Element, 0, len(handles))
	for _, h := range handles {
		out = append(out, &element{handle: h})
	}
	return out, nil
}

func (v pageView) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := v.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(v.fullPage),
	})
	return err
}

type sessionPage struct {
	pageView

	bctx playwright.BrowserContext
	opts Options
}

// Navigate waits for DOMContentLoaded only, not the full load event.
func (s *sessionPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if s.opts.NavigationTimeout > 0 {
		opts.Timeout = playwright.Float(float64(s.opts.NavigationTimeout.Milliseconds()))
	}
	if _, err := s.page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (s *sessionPage) Close() error {
	return errors.Join(s.page.Close(), s.bctx.Close())
}

type element struct {
	handle playwright.ElementHandle
}

func (e *element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.handle.Click()
}

func (e *element) Fill(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.handle.Fill(value)
}

func (e *element) TextContent(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.handle.TextContent()
}

func (e *element) Screenshot(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.handle.Screenshot(playwright.ElementHandleScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

var (
	_ types.SessionPage = (*sessionPage)(nil)
	_ types.Element     = (*element)(nil)
)
