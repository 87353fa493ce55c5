package bundler

import (
	"context"
	"path"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Styles compiles every top-level stylesheet into the output directory.
type Styles struct {
	cfg      *domain.Config
	reloader ports.Reloader
	logger   ports.Logger
}

// NewStyles creates the stylesheet task for cfg.
func NewStyles(cfg *domain.Config, reloader ports.Reloader, logger ports.Logger) *Styles {
	return &Styles{cfg: cfg, reloader: reloader, logger: logger}
}

// Name implements ports.Task.
func (s *Styles) Name() domain.TaskName { return domain.TaskCSS }

// Run resolves imports, lowers modern syntax for the configured browsers, minifies
// and writes one file per source stylesheet. Connected browsers swap the written
// stylesheets in place.
func (s *Styles) Run(_ context.Context) error {
	entries, err := doublestar.FilepathGlob(s.cfg.Path(s.cfg.Layout.StyleGlob))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourceGlobFailed.Error()), "glob", s.cfg.Layout.StyleGlob)
	}
	if len(entries) == 0 {
		s.logger.Warn("no stylesheets match " + s.cfg.Layout.StyleGlob)
		return nil
	}
	slices.Sort(entries)

	targets, err := engines(s.cfg.BrowserTargets)
	if err != nil {
		return err
	}

	result := api.Build(api.BuildOptions{
		AbsWorkingDir:     s.cfg.Root,
		EntryPoints:       entries,
		Outbase:           s.cfg.Path(s.entryDir()),
		Outdir:            s.cfg.Path(s.cfg.Layout.StyleOutputDir),
		Bundle:            true,
		Write:             true,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
		Engines:           targets,
		External:          assetExternals,
		LogLevel:          api.LogLevelSilent,
	})

	for _, w := range formatWarnings(result.Warnings) {
		s.logger.Warn(w)
	}
	if len(result.Errors) > 0 {
		return buildError(domain.ErrStyleBuildFailed, result.Errors)
	}

	outputDir := s.cfg.Path(s.cfg.Layout.OutputDir)
	paths := make([]string, 0, len(result.OutputFiles))
	for _, f := range result.OutputFiles {
		paths = append(paths, servedPath(outputDir, f.Path))
	}
	slices.Sort(paths)

	s.reloader.Inject(paths)
	return nil
}

// entryDir is the directory @import paths resolve against.
func (s *Styles) entryDir() string {
	return path.Dir(s.cfg.Layout.StyleEntry)
}
