package bundler

import (
	"context"
	"fmt"
	"io"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/sitepipe/internal/ui/output"
)

// Scripts bundles the script entry point into a single minified file with a source map.
type Scripts struct {
	cfg      *domain.Config
	reloader ports.Reloader
	summary  io.Writer
}

// NewScripts creates the script task for cfg. The bundle summary is written to summary.
func NewScripts(cfg *domain.Config, reloader ports.Reloader, summary io.Writer) *Scripts {
	return &Scripts{cfg: cfg, reloader: reloader, summary: summary}
}

// Name implements ports.Task.
func (s *Scripts) Name() domain.TaskName { return domain.TaskJS }

// Run bundles the scripts. Bundler errors fail the task before anything is
// reported; on success the summary is printed and browsers reload.
func (s *Scripts) Run(_ context.Context) error {
	result := api.Build(s.options())

	if len(result.Errors) > 0 {
		return buildError(domain.ErrScriptBuildFailed, result.Errors)
	}

	color := output.IsTerminal(s.summary)
	_, _ = fmt.Fprint(s.summary, api.AnalyzeMetafile(result.Metafile, api.AnalyzeMetafileOptions{Color: color}))
	for _, w := range formatWarnings(result.Warnings) {
		_, _ = fmt.Fprintln(s.summary, w)
	}

	s.reloader.Reload()
	return nil
}

func (s *Scripts) options() api.BuildOptions {
	return api.BuildOptions{
		AbsWorkingDir:     s.cfg.Root,
		EntryPoints:       []string{s.cfg.Path(s.cfg.Layout.ScriptEntry)},
		Outfile:           s.cfg.Path(s.cfg.Layout.ScriptOutput),
		Bundle:            true,
		Write:             true,
		Metafile:          true,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
		Sourcemap:         api.SourceMapLinked,
		Target:            api.ES2017,
		Format:            api.FormatIIFE,
		External:          assetExternals,
		LogLevel:          api.LogLevelSilent,
	}
}
