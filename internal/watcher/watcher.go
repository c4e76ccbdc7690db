package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/logger"
	"github.com/toyz/testgen/internal/utils"
	"github.com/toyz/testgen/internal/utils/fileops"
)

// DefaultDebounce is used when Options.Debounce is zero
const DefaultDebounce = 300 * time.Millisecond

// Generator is the generation surface the watcher drives
type Generator interface {
	GenerateTestFile(path string) (string, error)
}

// Options configures which files are watched and how events are batched
type Options struct {
	Extensions  []string
	ExcludeDirs []string

	// Debounce collapses repeated events for a path into one generation
	Debounce time.Duration

	Diagnostics *utils.DiagnosticSystem
}

// Watcher generates tests for modules as they are created or changed under a root directory
type Watcher struct {
	root    string
	gen     Generator
	opts    Options
	fsw     *fsnotify.Watcher
	walker  *utils.FileProcessor
	files   *fileops.FileOps
	pending map[string]string

	timer   *time.Timer
	flushCh <-chan time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New registers every directory under root and returns a watcher ready to Run
func New(root string, gen Generator, opts Options) (*Watcher, error) {
	if opts.Extensions == nil {
		opts.Extensions = utils.DefaultExtensions
	}
	if opts.ExcludeDirs == nil {
		opts.ExcludeDirs = utils.DefaultExcludeDirs
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}

	walker := utils.NewFileProcessor()
	dirs, err := walker.ScanDirectories(root, opts.ExcludeDirs)
	if err != nil {
		return nil, errors.WrapWatchError("scan", root, err).
			WithSuggestions("check the watch path exists")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapWatchError("create watcher for", root, err)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.WrapWatchError("watch", dir, err)
		}
	}

	logger.Debugw("Watcher registered directories",
		"root", root,
		"count", len(dirs))

	return &Watcher{
		root:    root,
		gen:     gen,
		opts:    opts,
		fsw:     fsw,
		walker:  walker,
		files:   fileops.NewFileOps(),
		pending: make(map[string]string),
		done:    make(chan struct{}),
	}, nil
}

// Root returns the watched directory
func (w *Watcher) Root() string {
	return w.root
}

// Run processes events until ctx is cancelled or Stop is called
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Stop()

	w.opts.Diagnostics.Info("Watching %s for changes...", w.root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.done:
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error",
				"root", w.root,
				"error", err)
			w.opts.Diagnostics.Warn("Watcher error: %v", err)

		case <-w.flushCh:
			w.flushCh = nil
			w.flush()
		}
	}
}

// Stop closes the underlying watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if w.timer != nil {
			w.timer.Stop()
		}
		if err := w.fsw.Close(); err != nil {
			logger.Warnw("Watcher close failed", "error", err)
		}
	})
}

// handleEvent applies the event policy and reports whether generation was scheduled
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	path := event.Name

	switch {
	case event.Has(fsnotify.Create):
		if w.files.IsDir(path) {
			w.addDirectory(path)
			return false
		}
		return w.schedule(path, "added")

	case event.Has(fsnotify.Write):
		return w.schedule(path, "changed")

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.accepts(path) {
			w.opts.Diagnostics.Info("File deleted: %s", path)
			logger.Debugw("Watcher module removed", "path", path)
		}
		return false
	}

	// Chmod
	return false
}

// accepts reports whether path is a module the watcher generates tests for
func (w *Watcher) accepts(path string) bool {
	return utils.IsModuleFile(path, w.opts.Extensions) &&
		!utils.IsExcludedPath(w.root, path, w.opts.ExcludeDirs)
}

func (w *Watcher) schedule(path, kind string) bool {
	if !w.accepts(path) {
		return false
	}

	if _, exists := w.pending[path]; !exists {
		w.opts.Diagnostics.Info("File %s: %s", kind, path)
	}
	w.pending[path] = kind

	if w.timer == nil {
		w.timer = time.NewTimer(w.opts.Debounce)
	} else {
		w.timer.Stop()
		w.timer.Reset(w.opts.Debounce)
	}
	w.flushCh = w.timer.C
	return true
}

// addDirectory starts watching a directory created after startup and
// schedules any modules already written into it
func (w *Watcher) addDirectory(dir string) {
	// IsExcludedPath inspects the directories above a file, so check a child path
	if utils.IsExcludedPath(w.root, filepath.Join(dir, "_"), w.opts.ExcludeDirs) {
		return
	}

	dirs, err := w.walker.ScanDirectories(dir, w.opts.ExcludeDirs)
	if err != nil {
		logger.Warnw("Watcher failed to scan new directory",
			"path", dir,
			"error", err)
		return
	}
	for _, sub := range dirs {
		if err := w.fsw.Add(sub); err != nil {
			logger.Warnw("Watcher failed to add directory",
				"path", sub,
				"error", err)
			continue
		}
		logger.Debugw("Watcher added directory", "path", sub)
	}

	modules, err := w.walker.WalkModules(dir, w.opts.Extensions, w.opts.ExcludeDirs)
	if err != nil {
		return
	}
	for _, module := range modules {
		w.schedule(module, "added")
	}
}

// flush generates tests for every pending path, one at a time in path order
func (w *Watcher) flush() {
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	w.pending = make(map[string]string)

	for _, path := range paths {
		testPath, err := w.gen.GenerateTestFile(path)
		if err != nil {
			logger.Errorw("Watcher generation failed",
				"path", path,
				"error", err)
			w.opts.Diagnostics.Error("Error generating test for %s: %v", path, err)
			continue
		}
		if testPath == "" {
			w.opts.Diagnostics.Verbose("Skipped %s", path)
			continue
		}
		logger.Infow("Watcher generated test",
			"path", path,
			"test_path", testPath)
		w.opts.Diagnostics.PhaseItem(fmt.Sprintf("Generated test: %s", testPath))
	}
}
