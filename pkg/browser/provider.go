// Package browser provides isolated playwright pages backed by one shared,
// lazily launched Chromium instance.
package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/sync/singleflight"
)

// Provider owns the shared browser. The browser is launched on first use;
// concurrent first calls share one launch, and a failed launch is retried on
// the next call.
type Provider struct {
	opts   Options
	logger types.Logger

	launches singleflight.Group

	mu      sync.RWMutex
	pw      *playwright.Playwright
	browser playwright.Browser
	closed  bool
}

func NewProvider(opts Options, logger types.Logger) *Provider {
	if logger == nil {
		logger = types.NopLogger()
	}
	if opts.Args == nil {
		opts.Args = DefaultArgs
	}
	return &Provider{
		opts:   opts,
		logger: logger,
	}
}

// OpenPage returns a page in a fresh browser context. Closing the page also
// closes its context.
func (p *Provider) OpenPage(ctx context.Context) (types.SessionPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := p.session()
	if err != nil {
		return nil, err
	}

	bctx, err := b.NewContext()
	if err != nil {
		return nil, fmt.Errorf("%w: creating context: %v", ErrUnavailable, err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("%w: creating page: %v", ErrUnavailable, err)
	}

	return &sessionPage{
		pageView: pageView{page: page, fullPage: p.opts.FullPage},
		bctx:     bctx,
		opts:     p.opts,
	}, nil
}

// Warm launches the browser ahead of the first run.
func (p *Provider) Warm() error {
	_, err := p.session()
	return err
}

func (p *Provider) session() (playwright.Browser, error) {
	p.mu.RLock()
	b, closed := p.browser, p.closed
	p.mu.RUnlock()

	if closed {
		return nil, ErrSessionClosed
	}
	if b != nil && b.IsConnected() {
		return b, nil
	}

	v, err, shared := p.launches.Do("launch", func() (any, error) {
		return p.launch()
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debug().Msg("Joined in-flight browser launch")
	}
	return v.(playwright.Browser), nil
}

func (p *Provider) launch() (playwright.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrSessionClosed
	}
	if p.browser != nil {
		if p.browser.IsConnected() {
			return p.browser, nil
		}
		p.logger.Warn().Msg("Browser disconnected, relaunching")
		p.stopLocked()
	}

	if p.opts.InstallDriver {
		p.logger.Info().Msg("Installing playwright driver and Chromium")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("%w: installing driver: %v", ErrUnavailable, err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: starting playwright: %v", ErrUnavailable, err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(p.opts.Headless),
		Args:     p.opts.Args,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: launching chromium: %v", ErrUnavailable, err)
	}

	p.pw, p.browser = pw, b
	p.logger.Info().
		Interface("args", p.opts.Args).
		Str("version", b.Version()).
		Msgf("Launched Chromium (headless=%t)", p.opts.Headless)
	return b, nil
}

// Close shuts the browser down. Later OpenPage calls fail with ErrSessionClosed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.stopLocked()
}

func (p *Provider) stopLocked() error {
	var firstErr error
	if p.browser != nil {
		if err := p.browser.Close(); err != nil {
			firstErr = fmt.Errorf("closing browser: %w", err)
		}
		p.browser = nil
	}
	if p.pw != nil {
		if err := p.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stopping playwright: %w", err)
		}
		p.pw = nil
	}
	return firstErr
}
