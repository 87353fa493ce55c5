// Package runner composes tasks into pipelines and runs them with tracing.
package runner

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner holds the registered tasks and pipelines.
type Runner struct {
	tracer ports.Tracer

	mu        sync.RWMutex
	tasks     map[domain.TaskName]ports.Task
	pipelines map[domain.TaskName]Step
}

// New creates an empty Runner that traces every invocation with tracer.
func New(tracer ports.Tracer) *Runner {
	return &Runner{
		tracer:    tracer,
		tasks:     make(map[domain.TaskName]ports.Task),
		pipelines: make(map[domain.TaskName]Step),
	}
}

// Register adds tasks under their own names.
func (r *Runner) Register(tasks ...ports.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tasks {
		if r.exists(t.Name()) {
			return zerr.With(domain.ErrTaskAlreadyExists, "task", t.Name().String())
		}
		r.tasks[t.Name()] = t
	}
	return nil
}

// Define registers a named pipeline.
func (r *Runner) Define(name domain.TaskName, step Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.exists(name) {
		return zerr.With(domain.ErrTaskAlreadyExists, "task", name.String())
	}
	r.pipelines[name] = step
	return nil
}

// DefineBuildPipelines registers build and buildPreview: the asset tasks in
// parallel, then the site generator in the matching mode.
func (r *Runner) DefineBuildPipelines() error {
	assets := make([]Step, 0, len(domain.AssetTasks()))
	for _, name := range domain.AssetTasks() {
		assets = append(assets, r.Step(name))
	}

	if err := r.Define(domain.TaskBuild, Series(Parallel(assets...), r.Step(domain.TaskHugo))); err != nil {
		return err
	}
	return r.Define(domain.TaskBuildPreview, Series(Parallel(assets...), r.Step(domain.TaskHugoPreview)))
}

// Step returns a step that runs the named task or pipeline when invoked.
// The name is resolved at run time.
func (r *Runner) Step(name domain.TaskName) Step {
	return func(ctx context.Context) error {
		return r.Run(ctx, name)
	}
}

// Run invokes the named task or pipeline inside a span.
func (r *Runner) Run(ctx context.Context, name domain.TaskName) error {
	run, err := r.lookup(name)
	if err != nil {
		return err
	}

	ctx, span := r.tracer.Start(ctx, name.String())
	defer span.End()
	span.SetAttribute("sitepipe.task", name.String())

	if err := run(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Has reports whether name is a registered task or pipeline.
func (r *Runner) Has(name domain.TaskName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exists(name)
}

// Names returns every registered task and pipeline name, sorted.
func (r *Runner) Names() []domain.TaskName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]domain.TaskName, 0, len(r.tasks)+len(r.pipelines))
	for name := range r.tasks {
		names = append(names, name)
	}
	for name := range r.pipelines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Runner) lookup(name domain.TaskName) (Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.tasks[name]; ok {
		return t.Run, nil
	}
	if step, ok := r.pipelines[name]; ok {
		return step, nil
	}
	return nil, zerr.With(domain.ErrTaskNotFound, "task", name.String())
}

func (r *Runner) exists(name domain.TaskName) bool {
	_, task := r.tasks[name]
	_, pipeline := r.pipelines[name]
	return task || pipeline
}
