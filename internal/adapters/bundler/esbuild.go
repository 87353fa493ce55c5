// Package bundler builds the stylesheet and script assets with esbuild.
package bundler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/zerr"
)

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

// assetExternals keep url() references to images and fonts untouched.
var assetExternals = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.avif", "*.svg", "*.ico",
	"*.woff", "*.woff2", "*.ttf", "*.otf", "*.eot",
}

// engines converts browser targets into esbuild engine constraints.
func engines(targets []string) ([]api.Engine, error) {
	parsed, err := domain.ParseBrowserTargets(targets)
	if err != nil {
		return nil, err
	}

	out := make([]api.Engine, 0, len(parsed))
	for _, t := range parsed {
		out = append(out, api.Engine{Name: engineNames[t.Engine], Version: t.Version})
	}
	return out, nil
}

// buildError folds esbuild diagnostics into one error under the given sentinel message.
func buildError(sentinel error, msgs []api.Message) error {
	formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: api.ErrorMessage})
	cause := errors.New(strings.TrimRight(strings.Join(formatted, ""), "\n"))
	return zerr.With(zerr.Wrap(cause, sentinel.Error()), "errors", len(msgs))
}

// formatWarnings renders esbuild warnings, one string per warning.
func formatWarnings(msgs []api.Message) []string {
	formatted := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: api.WarningMessage})
	for i, m := range formatted {
		formatted[i] = strings.TrimRight(m, "\n")
	}
	return formatted
}

// servedPath maps a written file to the URL path it is served under from outputDir.
func servedPath(outputDir, file string) string {
	rel, err := filepath.Rel(outputDir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(file)
	}
	return "/" + filepath.ToSlash(rel)
}
