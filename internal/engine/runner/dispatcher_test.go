package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports/mocks"
	"go.trai.ch/sitepipe/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

var root = filepath.FromSlash("/project")

func abs(rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func newDispatcher(t *testing.T, ctx context.Context, r *runner.Runner) (*runner.Dispatcher, *mocks.MockLogger) {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	layout := domain.DefaultLayout()
	d := runner.NewDispatcher(ctx, r, log, root,
		domain.DefaultWatchBindings(layout), domain.IgnoredWatchGlobs(layout)...)
	return d, log
}

func TestDispatcher_Match(t *testing.T) {
	d, _ := newDispatcher(t, t.Context(), runner.New(newTracer(t)))

	tests := []struct {
		name  string
		paths []string
		want  []domain.TaskName
	}{
		{name: "script", paths: []string{abs("src/js/app/menu.js")}, want: []domain.TaskName{domain.TaskJS}},
		{name: "entry script is not watched", paths: []string{abs("src/index.js")}, want: nil},
		{name: "nested stylesheet", paths: []string{abs("src/css/base/type.css")}, want: []domain.TaskName{domain.TaskCSS}},
		{
			name:  "icon also rebuilds the site",
			paths: []string{abs("site/static/img/icons-social.svg")},
			want:  []domain.TaskName{domain.TaskSVG, domain.TaskHugo},
		},
		{name: "content", paths: []string{abs("site/content/post/hello.md")}, want: []domain.TaskName{domain.TaskHugo}},
		{
			name:  "distinct in binding order",
			paths: []string{abs("site/content/a.md"), abs("src/css/main.css"), abs("src/js/a.js"), abs("src/js/b.js")},
			want:  []domain.TaskName{domain.TaskJS, domain.TaskCSS, domain.TaskHugo},
		},
		{name: "generator lock file", paths: []string{abs("site/.hugo_build.lock")}, want: nil},
		{name: "generated resources", paths: []string{abs("site/resources/_gen/images/a.png")}, want: nil},
		{name: "outside root", paths: []string{filepath.FromSlash("/elsewhere/site/a.md")}, want: nil},
		{name: "relative path", paths: []string{"src/js/a.js"}, want: []domain.TaskName{domain.TaskJS}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Match(tt.paths))
		})
	}
}

func TestDispatcher_QueuesSingleRerun(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		j := &journal{}
		r := newPipeline(t, j, &fakeTask{name: domain.TaskCSS, delay: 100 * time.Millisecond})
		d, log := newDispatcher(t, t.Context(), r)
		log.EXPECT().Debug(gomock.Any()).AnyTimes()

		d.Dispatch([]string{abs("src/css/main.css")})
		synctest.Wait()
		assert.Equal(t, []string{"start css"}, j.snapshot())

		// Three changes during the run collapse into one rerun; the run in flight is not cancelled.
		for range 3 {
			d.Dispatch([]string{abs("src/css/main.css")})
		}

		d.Wait()
		assert.Equal(t, []string{"start css", "end css", "start css", "end css"}, j.snapshot())
	})
}

func TestDispatcher_DistinctTasksRunConcurrently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		j := &journal{}
		r := newPipeline(t, j,
			&fakeTask{name: domain.TaskCSS, delay: 100 * time.Millisecond},
			&fakeTask{name: domain.TaskJS, delay: 100 * time.Millisecond},
		)
		d, _ := newDispatcher(t, t.Context(), r)

		start := time.Now()
		d.Dispatch([]string{abs("src/css/main.css"), abs("src/js/a.js")})
		d.Wait()

		assert.Equal(t, 100*time.Millisecond, time.Since(start))
		assert.Equal(t, 1, j.count("end css"))
		assert.Equal(t, 1, j.count("end js"))
	})
}

func TestDispatcher_FailureIsLoggedAndRecovers(t *testing.T) {
	j := &journal{}
	r := newPipeline(t, j, &fakeTask{name: domain.TaskHugo, err: errors.New("exit status 255")})
	d, log := newDispatcher(t, t.Context(), r)
	log.EXPECT().Warn("'hugo' failed, waiting for changes").Times(2)

	d.Dispatch([]string{abs("site/content/a.md")})
	d.Wait()
	d.Dispatch([]string{abs("site/content/a.md")})
	d.Wait()

	assert.Equal(t, 2, j.count("end hugo"))
}

func TestDispatcher_StopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	j := &journal{}
	d, _ := newDispatcher(t, ctx, newPipeline(t, j))

	cancel()
	d.Dispatch([]string{abs("src/js/a.js")})
	d.Wait()

	assert.Empty(t, j.snapshot())
}
