package browser

import "time"

// DefaultArgs are the Chromium flags used when Options.Args is nil. They let
// the browser run inside containers with a small /dev/shm.
var DefaultArgs = []string{"--no-sandbox", "--disable-dev-shm-usage"}

type Options struct {
	Headless bool
	Args     []string
	// NavigationTimeout bounds Navigate. Zero leaves the driver default.
	NavigationTimeout time.Duration
	// FullPage captures the whole scrollable page instead of the viewport.
	FullPage bool
	// InstallDriver downloads the driver and Chromium before the first launch.
	InstallDriver bool
}

func DefaultOptions() Options {
	return Options{
		Headless:          true,
		Args:              DefaultArgs,
		NavigationTimeout: 30 * time.Second,
		FullPage:          true,
	}
}
