package types

import "context"

// Screenshotter writes an image of itself to path.
type Screenshotter interface {
	Screenshot(ctx context.Context, path string) error
}

// Element is a resolved DOM element.
type Element interface {
	Screenshotter
	Click(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	// TextContent returns "" when the element has no text content.
	TextContent(ctx context.Context) (string, error)
}

// Page is the automation handle a run acts on. QueryFirst returns (nil, nil)
// when nothing matches; an error means the lookup itself failed.
type Page interface {
	Screenshotter
	QueryFirst(ctx context.Context, selector string) (Element, error)
	QueryAll(ctx context.Context, selector string) ([]Element, error)
}

// SessionPage is an isolated page owned by a single run.
type SessionPage interface {
	Page
	Navigate(ctx context.Context, url string) error
	// Close releases the page and its browser context.
	Close() error
}
