package mdpages

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alnah/go-mdpages/internal/fileutil"
)

// DefaultDebounce is how long a source must stay unchanged before its
// pipelines are regenerated. Editors often write a file several times per save.
const DefaultDebounce = 300 * time.Millisecond

// Watcher regenerates pipelines whenever one of their source documents
// changes. Regenerations run one at a time on the watcher's goroutine.
type Watcher struct {
	gen       *Generator
	pipelines []Pipeline
	debounce  time.Duration
	stdout    io.Writer
	logger    *zap.Logger

	sources map[string][]int     // cleaned source path -> pipeline indexes
	pending map[string]time.Time // source path -> last event time
	now     func() time.Time
}

// NewWatcher creates a Watcher for the given pipelines. A zero debounce
// uses DefaultDebounce. Progress goes to the generator's stdout.
func NewWatcher(gen *Generator, pipelines []Pipeline, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		gen:       gen,
		pipelines: pipelines,
		debounce:  debounce,
		stdout:    gen.stdout,
		logger:    gen.logger,
		sources:   make(map[string][]int),
		pending:   make(map[string]time.Time),
		now:       time.Now,
	}

	for i, p := range pipelines {
		for _, page := range p.Pages {
			path := filepath.Join(p.DocsDir, page.Source)
			w.sources[path] = append(w.sources[path], i)
		}
	}
	return w
}

// dirs returns the distinct document directories to watch.
func (w *Watcher) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range w.pipelines {
		dir := filepath.Clean(p.DocsDir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Watch blocks until ctx is cancelled. Generation errors are printed and
// watching continues.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatchSetup, err)
	}
	defer fw.Close()

	for _, dir := range w.dirs() {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("%w: watching %s: %v", ErrWatchSetup, dir, err)
		}
		fmt.Fprintf(w.stdout, "👀 Watching %s for changes (Ctrl+C to stop)\n", dir)
	}

	tick := w.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.record(event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-ticker.C:
			changed := w.settled()
			if len(changed) == 0 {
				continue
			}
			if err := w.regenerate(ctx, changed); err != nil {
				return nil // context cancelled mid-run
			}
		}
	}
}

// record notes a relevant filesystem event. Only writes and creations of
// markdown files that some pipeline reads are kept.
func (w *Watcher) record(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	if !fileutil.IsMarkdown(event.Name) {
		return false
	}
	path := filepath.Clean(event.Name)
	if _, ok := w.sources[path]; !ok {
		return false
	}

	w.logger.Debug("source changed", zap.String("path", path), zap.String("op", event.Op.String()))
	w.pending[path] = w.now()
	return true
}

// settled removes and returns the sources quiet for at least the debounce
// window, sorted for a stable regeneration order.
func (w *Watcher) settled() []string {
	now := w.now()
	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

// affected returns the indexes of pipelines reading any of paths, in
// table order.
func (w *Watcher) affected(paths []string) []int {
	hit := make(map[int]bool)
	for _, path := range paths {
		for _, i := range w.sources[path] {
			hit[i] = true
		}
	}
	var idx []int
	for i := range w.pipelines {
		if hit[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

// regenerate reruns every pipeline affected by the changed paths.
// Returns an error only when ctx is cancelled.
func (w *Watcher) regenerate(ctx context.Context, changed []string) error {
	for _, path := range changed {
		fmt.Fprintf(w.stdout, "\n🔄 %s changed\n", filepath.Base(path))
	}

	for _, i := range w.affected(changed) {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := w.pipelines[i]
		if _, err := w.gen.Run(ctx, p); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintf(w.stdout, "❌ Pipeline %s failed: %v\n", p.Name, err)
		}
	}
	return nil
}
