package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
)

// Dispatcher maps changed paths to the tasks bound to them and runs those tasks.
// A task never runs twice at once: changes that arrive while it runs queue
// exactly one rerun, which starts after the current run finishes.
type Dispatcher struct {
	ctx      context.Context
	runner   *Runner
	logger   ports.Logger
	root     string
	bindings []domain.WatchBinding
	ignore   []string

	mu     sync.Mutex
	states map[domain.TaskName]*taskState
	wg     sync.WaitGroup
}

type taskState struct {
	running bool
	pending bool
}

// NewDispatcher creates a dispatcher for paths under root. Tasks run with ctx
// and stop being scheduled once it is done.
func NewDispatcher(
	ctx context.Context,
	r *Runner,
	logger ports.Logger,
	root string,
	bindings []domain.WatchBinding,
	ignore ...string,
) *Dispatcher {
	return &Dispatcher{
		ctx:      ctx,
		runner:   r,
		logger:   logger,
		root:     root,
		bindings: bindings,
		ignore:   ignore,
		states:   make(map[domain.TaskName]*taskState),
	}
}

// Match returns the distinct tasks bound to any of paths, in binding order.
func (d *Dispatcher) Match(paths []string) []domain.TaskName {
	matched := make(map[domain.TaskName]bool)

	for _, p := range paths {
		rel, ok := d.relative(p)
		if !ok || d.ignored(rel) {
			continue
		}
		for _, b := range d.bindings {
			if ok, _ := doublestar.Match(b.Pattern, rel); ok {
				matched[b.Task] = true
			}
		}
	}

	var tasks []domain.TaskName
	for _, b := range d.bindings {
		if matched[b.Task] {
			tasks = append(tasks, b.Task)
			delete(matched, b.Task)
		}
	}
	return tasks
}

// Dispatch schedules every task bound to paths.
func (d *Dispatcher) Dispatch(paths []string) {
	for _, name := range d.Match(paths) {
		d.Schedule(name)
	}
}

// Schedule runs the named task, or queues one rerun when it is already running.
func (d *Dispatcher) Schedule(name domain.TaskName) {
	if d.ctx.Err() != nil {
		return
	}

	d.mu.Lock()
	st, ok := d.states[name]
	if !ok {
		st = &taskState{}
		d.states[name] = st
	}
	if st.running {
		st.pending = true
		d.mu.Unlock()
		d.logger.Debug(fmt.Sprintf("'%s' is running, queued a rerun", name))
		return
	}
	st.running = true
	d.wg.Add(1)
	d.mu.Unlock()

	go d.loop(name, st)
}

// Wait blocks until no task is running.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) loop(name domain.TaskName, st *taskState) {
	defer d.wg.Done()

	for {
		if err := d.runner.Run(d.ctx, name); err != nil && d.ctx.Err() == nil {
			d.logger.Warn(fmt.Sprintf("'%s' failed, waiting for changes", name))
		}

		d.mu.Lock()
		if st.pending && d.ctx.Err() == nil {
			st.pending = false
			d.mu.Unlock()
			continue
		}
		st.running = false
		st.pending = false
		d.mu.Unlock()
		return
	}
}

func (d *Dispatcher) relative(path string) (string, bool) {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path), true
	}
	rel, err := filepath.Rel(d.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (d *Dispatcher) ignored(rel string) bool {
	for _, pattern := range d.ignore {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
