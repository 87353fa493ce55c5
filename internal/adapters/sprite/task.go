package sprite

import (
	"context"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Task is the svg task: it rebuilds the sprite and rewrites the partial in place.
type Task struct {
	cfg     *domain.Config
	builder *Builder
	logger  ports.Logger
}

// NewTask creates the svg task for cfg.
func NewTask(cfg *domain.Config, logger ports.Logger) *Task {
	return &Task{cfg: cfg, builder: NewBuilder(), logger: logger}
}

// Name implements ports.Task.
func (t *Task) Name() domain.TaskName { return domain.TaskSVG }

// Run reads the icons in lexical order, builds the sprite and injects it.
// The partial is left untouched when its content would not change.
func (t *Task) Run(_ context.Context) error {
	icons, err := t.readIcons()
	if err != nil {
		return err
	}

	sprite, err := t.builder.Build(icons)
	if err != nil {
		return err
	}

	partialPath := t.cfg.Path(t.cfg.Layout.IconPartial)
	// #nosec G304 -- the partial path is fixed by the layout
	partial, err := os.ReadFile(partialPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPartialReadFailed.Error()), "path", partialPath)
	}

	injected, err := Inject(partial, sprite)
	if err != nil {
		return zerr.With(err, "path", partialPath)
	}

	if xxhash.Sum64(injected) == xxhash.Sum64(partial) {
		t.logger.Debug("sprite unchanged, skipping " + t.cfg.Layout.IconPartial)
		return nil
	}

	if err := os.WriteFile(partialPath, injected, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPartialWriteFailed.Error()), "path", partialPath)
	}
	return nil
}

func (t *Task) readIcons() ([]Icon, error) {
	paths, err := doublestar.FilepathGlob(t.cfg.Path(t.cfg.Layout.IconGlob))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceGlobFailed.Error()), "glob", t.cfg.Layout.IconGlob)
	}
	slices.Sort(paths)

	icons := make([]Icon, 0, len(paths))
	for _, p := range paths {
		// #nosec G304 -- paths come from the icon glob
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrIconReadFailed.Error()), "icon", p)
		}
		icons = append(icons, Icon{Path: p, Content: content})
	}
	return icons, nil
}
