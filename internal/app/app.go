// Package app implements the application layer for sitepipe.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/sitepipe/internal/adapters/bundler"
	"go.trai.ch/sitepipe/internal/adapters/devserver"
	"go.trai.ch/sitepipe/internal/adapters/hugo"
	"go.trai.ch/sitepipe/internal/adapters/livereload"
	"go.trai.ch/sitepipe/internal/adapters/sprite"
	"go.trai.ch/sitepipe/internal/adapters/telemetry"
	"go.trai.ch/sitepipe/internal/adapters/watcher"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/sitepipe/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	spawner      ports.ProcessSpawner
	logger       ports.Logger
	telemetry    *telemetry.Provider
	summary      io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	spawner ports.ProcessSpawner,
	log ports.Logger,
	provider *telemetry.Provider,
) *App {
	return &App{
		configLoader: loader,
		spawner:      spawner,
		logger:       log,
		telemetry:    provider,
		summary:      os.Stdout,
	}
}

// WithSummaryOutput redirects the script bundle summary.
// This is primarily used for testing to keep output quiet.
func (a *App) WithSummaryOutput(w io.Writer) *App {
	a.summary = w
	return a
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	// Addr overrides the configured listen address when non-empty.
	Addr string
}

// Run executes the named task or pipeline once in the current directory.
func (a *App) Run(ctx context.Context, name domain.TaskName) error {
	if name == "" {
		return domain.ErrNoTargetsSpecified
	}
	if name == domain.TaskServer {
		return a.Serve(ctx, ServeOptions{})
	}

	cfg, err := a.load()
	if err != nil {
		return err
	}

	p, err := a.newPipeline(cfg)
	if err != nil {
		return err
	}

	if !p.runner.Has(name) {
		return zerr.With(domain.ErrTaskNotFound, "task", name.String())
	}
	if err := p.runner.Run(ctx, name); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

// Serve runs the build pipeline, then serves the output directory with live
// reload and re-runs the bound task whenever a watched source changes.
// It returns when ctx is cancelled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}

	p, err := a.newPipeline(cfg)
	if err != nil {
		return err
	}

	if err := p.runner.Run(ctx, domain.TaskBuild); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	addr := cfg.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	srv := devserver.NewServer(addr, cfg.Path(cfg.Layout.OutputDir), p.hub, a.telemetry.Registry(), a.logger)

	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	w, err := watcher.NewWatcher(a.logger, cfg.Layout.OutputDir, cfg.Layout.GeneratorBinDir)
	if err != nil {
		_ = ln.Close()
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() {
		_ = w.Stop()
	}()

	if err := w.Start(ctx, cfg.Root); err != nil {
		_ = ln.Close()
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	dispatcher := runner.NewDispatcher(ctx, p.runner, a.logger, cfg.Root,
		domain.DefaultWatchBindings(cfg.Layout), domain.IgnoredWatchGlobs(cfg.Layout)...)
	debouncer := watcher.NewDebouncer(cfg.WatchDebounce, dispatcher.Dispatch)

	go func() {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
	}()

	err = srv.Serve(ctx, ln)

	debouncer.Stop()
	dispatcher.Wait()
	return err
}

// pipeline is the set of tasks built for one configuration.
type pipeline struct {
	runner *runner.Runner
	hub    *livereload.Hub
}

func (a *App) newPipeline(cfg *domain.Config) (*pipeline, error) {
	hub := livereload.NewHub(a.logger, a.telemetry.Registry())
	generator := hugo.NewGenerator(cfg, a.spawner, hub, a.logger)

	r := runner.New(a.telemetry.Tracer())
	err := r.Register(
		bundler.NewStyles(cfg, hub, a.logger),
		bundler.NewScripts(cfg, hub, a.summary),
		sprite.NewTask(cfg, a.logger),
		generator.Task(domain.ModeNone),
		generator.Task(domain.ModePreview),
	)
	if err != nil {
		return nil, err
	}
	if err := r.DefineBuildPipelines(); err != nil {
		return nil, err
	}

	return &pipeline{runner: r, hub: hub}, nil
}

// debugSetter is implemented by loggers whose level follows the DEBUG setting.
type debugSetter interface {
	SetDebug(enable bool)
}

func (a *App) load() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if d, ok := a.logger.(debugSetter); ok {
		d.SetDebug(cfg.Debug)
	}
	return cfg, nil
}
