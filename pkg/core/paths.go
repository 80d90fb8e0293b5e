package core

import (
	"net/url"
	"path/filepath"
)

// ResolveSuiteURL turns a suite's url into something a browser can open.
// Values with a scheme are returned as is. Anything else is a local file: an
// absolute path is used directly, a relative one is joined with suiteDir.
func ResolveSuiteURL(suiteDir, raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return raw
	}

	p := raw
	if !filepath.IsAbs(p) {
		p = filepath.Join(suiteDir, p)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(p)}).String()
}
