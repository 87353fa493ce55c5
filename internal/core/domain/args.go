package domain

import (
	"path/filepath"
	"slices"
)

// DebugFlag is prepended to the generator arguments when DEBUG is set.
const DebugFlag = "--debug"

// GeneratorArgs is the immutable base argument list for the site generator.
// It is built once from the environment and reused for every invocation.
type GeneratorArgs struct {
	base []string
}

// NewGeneratorArgs builds the base argument list for the layout.
func NewGeneratorArgs(layout Layout, debug bool) GeneratorArgs {
	base := make([]string, 0, 7)
	if debug {
		base = append(base, DebugFlag)
	}
	base = append(base,
		"-d", layout.SiteDest,
		"-s", layout.SiteDir,
		"--config", layout.SiteConfig,
	)
	return GeneratorArgs{base: base}
}

// Base returns a copy of the base argument list.
func (a GeneratorArgs) Base() []string {
	return slices.Clone(a.base)
}

// With returns a fresh argument list for the given mode. The base list is never modified.
func (a GeneratorArgs) With(mode Mode) []string {
	return slices.Concat(a.base, mode.Flags())
}

// GeneratorBinary returns the generator executable to run.
// A non-empty hugoVersion selects the system "hugo" from PATH, otherwise the
// bundled binary for the platform is used. Windows binaries use the "exe" suffix.
func GeneratorBinary(layout Layout, platform, hugoVersion string) string {
	if hugoVersion != "" {
		return "hugo"
	}
	suffix := platform
	if platform == "windows" {
		suffix = "exe"
	}
	return filepath.Join(layout.GeneratorBinDir, "hugo."+suffix)
}
