package browser

import "errors"

var (
	// ErrUnavailable means the browser could not be started or reached.
	ErrUnavailable = errors.New("browser unavailable")
	// ErrSessionClosed is returned once the provider has been closed.
	ErrSessionClosed = errors.New("browser session closed")
)
