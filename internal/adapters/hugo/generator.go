// Package hugo runs the Hugo site generator as a build task.
package hugo

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generator invokes the site generator binary with the project's fixed argument list.
type Generator struct {
	root     string
	binary   string
	args     domain.GeneratorArgs
	spawner  ports.ProcessSpawner
	reloader ports.Reloader
	logger   ports.Logger
}

// NewGenerator creates a Generator for cfg. The argument list is fixed here,
// before the first build, and shared by every later invocation.
func NewGenerator(
	cfg *domain.Config,
	spawner ports.ProcessSpawner,
	reloader ports.Reloader,
	logger ports.Logger,
) *Generator {
	return &Generator{
		root:     cfg.Root,
		binary:   cfg.GeneratorBinary(),
		args:     cfg.GeneratorArgs(),
		spawner:  spawner,
		reloader: reloader,
		logger:   logger,
	}
}

// Build runs the generator once in the given mode.
//
// A clean exit reloads connected browsers. Any other outcome notifies them
// with domain.GeneratorFailureNotice and fails the build.
func (g *Generator) Build(ctx context.Context, mode domain.Mode) error {
	args := g.args.With(mode)
	g.logger.Debug("running " + g.binary + " " + strings.Join(args, " "))

	code, err := g.spawner.Spawn(ctx, g.root, g.binary, args)
	if err != nil {
		g.reloader.Notify(domain.GeneratorFailureNotice)
		return zerr.With(zerr.Wrap(err, domain.ErrGeneratorStartFailed.Error()), "binary", g.binary)
	}

	if code != 0 {
		g.logger.Debug("site generator exited with status " + strconv.Itoa(code))
		g.reloader.Notify(domain.GeneratorFailureNotice)
		return domain.ErrGeneratorFailed
	}

	g.reloader.Reload()
	return nil
}

// Task returns the build task for mode, named hugo or hugoPreview.
func (g *Generator) Task(mode domain.Mode) ports.Task {
	return &task{generator: g, mode: mode}
}

type task struct {
	generator *Generator
	mode      domain.Mode
}

func (t *task) Name() domain.TaskName { return t.mode.TaskName() }

func (t *task) Run(ctx context.Context) error { return t.generator.Build(ctx, t.mode) }
