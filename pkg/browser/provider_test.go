package browser_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/arnavsurve/stepshot/pkg/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := browser.DefaultOptions()
	assert.True(t, opts.Headless)
	assert.True(t, opts.FullPage)
	assert.Equal(t, []string{"--no-sandbox", "--disable-dev-shm-usage"}, opts.Args)
}

func TestProvider_ClosedBeforeLaunch(t *testing.T) {
	p := browser.NewProvider(browser.DefaultOptions(), nil)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "closing twice is fine")

	_, err := p.OpenPage(context.Background())
	assert.ErrorIs(t, err, browser.ErrSessionClosed)
}

func TestProvider_CancelledContext(t *testing.T) {
	p := browser.NewProvider(browser.DefaultOptions(), nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.OpenPage(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

const fixture = `data:text/html,<html><body>` +
	`<input id="name"><button id="go" onclick="document.title='clicked'">Go</button>` +
	`<p class="item">one</p><p class="item">two</p><p class="item"></p>` +
	`</body></html>`

// Needs a playwright driver and Chromium on the machine.
func TestProvider_Chromium(t *testing.T) {
	if os.Getenv("STEPSHOT_BROWSER_TESTS") != "1" {
		t.Skip("set STEPSHOT_BROWSER_TESTS=1 to run against a real browser")
	}

	p := browser.NewProvider(browser.DefaultOptions(), nil)
	defer p.Close()
	ctx := context.Background()

	// Concurrent first calls share one launch.
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Warm())
		}()
	}
	wg.Wait()

	page, err := p.OpenPage(ctx)
	require.NoError(t, err)
	defer page.Close()

	require.NoError(t, page.Navigate(ctx, fixture))

	missing, err := page.QueryFirst(ctx, "#missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	input, err := page.QueryFirst(ctx, "#name")
	require.NoError(t, err)
	require.NotNil(t, input)
	require.NoError(t, input.Fill(ctx, "Ana"))

	btn, err := page.QueryFirst(ctx, "#go")
	require.NoError(t, err)
	require.NoError(t, btn.Click(ctx))

	items, err := page.QueryAll(ctx, ".item")
	require.NoError(t, err)
	require.Len(t, items, 3)
	var texts []string
	for _, it := range items {
		text, err := it.TextContent(ctx)
		require.NoError(t, err)
		texts = append(texts, text)
	}
	assert.Equal(t, []string{"one", "two", ""}, texts)

	dir := t.TempDir()
	require.NoError(t, page.Screenshot(ctx, filepath.Join(dir, "page.png")))
	require.NoError(t, items[0].Screenshot(ctx, filepath.Join(dir, "item.png")))
	assert.FileExists(t, filepath.Join(dir, "page.png"))
	assert.FileExists(t, filepath.Join(dir, "item.png"))
}
