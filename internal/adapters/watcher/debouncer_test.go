package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sitepipe/internal/adapters/watcher"
)

// recorder collects debouncer callbacks.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func TestDebouncer_CoalescesSortedAndDistinct(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/src/js/b.js")
		d.Add("/project/src/css/main.css")
		d.Add("/project/src/js/b.js")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		calls := rec.snapshot()
		require.Len(t, calls, 1)
		assert.Equal(t, []string{"/project/src/css/main.css", "/project/src/js/b.js"}, calls[0])
	})
}

func TestDebouncer_AddRestartsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/site/content/a.md")
		time.Sleep(50 * time.Millisecond)
		d.Add("/project/site/content/b.md")
		time.Sleep(50 * time.Millisecond)

		synctest.Wait()
		assert.Empty(t, rec.snapshot(), "the window restarts on every change")

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Len(t, rec.snapshot(), 1)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Flush()
		assert.Empty(t, rec.snapshot(), "nothing pending, nothing delivered")

		d.Add("/project/src/index.js")
		d.Flush()
		require.Len(t, rec.snapshot(), 1)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1, "the stopped timer does not deliver again")
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/project/src/index.js")
		d.Stop()
		d.Add("/project/src/other.js")

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/project/src/index.js")

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
