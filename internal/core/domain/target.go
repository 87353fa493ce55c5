package domain

import (
	"regexp"
	"slices"

	"go.trai.ch/zerr"
)

// BrowserEngines lists the engines a browser target may name.
var BrowserEngines = []string{"chrome", "edge", "firefox", "ie", "ios", "opera", "safari"}

var browserTargetRegex = regexp.MustCompile(`^([a-z]+)(\d+(?:\.\d+){0,2})$`)

// BrowserTarget is an engine and the oldest version output must run on, e.g. "safari13".
type BrowserTarget struct {
	Engine  string
	Version string
}

// ParseBrowserTarget splits a target such as "chrome80" into engine and version.
func ParseBrowserTarget(s string) (BrowserTarget, error) {
	m := browserTargetRegex.FindStringSubmatch(s)
	if m == nil || !slices.Contains(BrowserEngines, m[1]) {
		return BrowserTarget{}, zerr.With(ErrInvalidBrowserTarget, "target", s)
	}
	return BrowserTarget{Engine: m[1], Version: m[2]}, nil
}

// ParseBrowserTargets parses every target, failing on the first invalid one.
func ParseBrowserTargets(targets []string) ([]BrowserTarget, error) {
	out := make([]BrowserTarget, 0, len(targets))
	for _, s := range targets {
		t, err := ParseBrowserTarget(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
