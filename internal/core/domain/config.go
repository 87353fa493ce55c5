package domain

import (
	"path/filepath"
	"time"
)

// DefaultAddr is the development server listen address.
const DefaultAddr = "localhost:3000"

// DefaultWatchDebounce coalesces bursts of file events before a task re-runs.
const DefaultWatchDebounce = 200 * time.Millisecond

// DefaultBrowserTargets are the engines stylesheets and scripts are lowered for.
func DefaultBrowserTargets() []string {
	return []string{"chrome80", "edge88", "firefox78", "safari13"}
}

// Config is the resolved runtime configuration of a project.
type Config struct {
	// Root is the absolute project directory.
	Root   string
	Layout Layout

	// Platform is the operating system the generator binary is selected for.
	Platform string
	// HugoVersion is the HUGO_VERSION environment override.
	HugoVersion string
	// Debug is set when the DEBUG environment variable is non-empty.
	Debug bool

	Addr           string
	BrowserTargets []string
	WatchDebounce  time.Duration
}

// DefaultConfig returns the configuration for a project rooted at root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:           root,
		Layout:         DefaultLayout(),
		Addr:           DefaultAddr,
		BrowserTargets: DefaultBrowserTargets(),
		WatchDebounce:  DefaultWatchDebounce,
	}
}

// Path resolves a layout path against the project root.
func (c *Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// GeneratorArgs returns the base generator argument list for the configuration.
func (c *Config) GeneratorArgs() GeneratorArgs {
	return NewGeneratorArgs(c.Layout, c.Debug)
}

// GeneratorBinary returns the generator executable, resolved against the root when bundled.
func (c *Config) GeneratorBinary() string {
	bin := GeneratorBinary(c.Layout, c.Platform, c.HugoVersion)
	if bin == "hugo" {
		return bin
	}
	return c.Path(bin)
}
