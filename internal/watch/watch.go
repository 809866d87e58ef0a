// Package watch rebuilds the template catalog whenever documents under the
// project directory change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/nmcr/internal/catalog"
	"git.home.luguber.info/inful/nmcr/internal/docmodel"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// LoadFunc builds a fresh catalog.
type LoadFunc func(ctx context.Context) (*catalog.Catalog, error)

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
	// OnReload is called after every load attempt, from the rebuild goroutine.
	OnReload func(*catalog.Catalog, error)
}

// Watcher reloads a catalog on file changes below root.
type Watcher struct {
	root     string
	load     LoadFunc
	debounce time.Duration
	logger   *slog.Logger
	onReload func(*catalog.Catalog, error)
	status   *Status

	mu           sync.Mutex
	fingerprints map[string]string
}

func New(root string, load LoadFunc, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Watcher{
		root:         root,
		load:         load,
		debounce:     opts.Debounce,
		logger:       opts.Logger,
		onReload:     opts.OnReload,
		status:       &Status{},
		fingerprints: map[string]string{},
	}
}

// Status exposes the outcome of the latest load.
func (w *Watcher) Status() *Status { return w.status }

// Run loads the catalog once, then watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot resolve watch root").
			WithContext("path", w.root).
			Build()
	}

	w.reload(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create file watcher").Build()
	}
	defer func() { _ = fsw.Close() }()
	w.addDirsRecursive(fsw, absRoot)
	w.logger.Info("Watching template documents", logfields.Path(absRoot))

	rebuildReq, trigger := newDebouncer(w.debounce)
	go w.rebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(fsw, ev.Name)
		}
	}
	if ev.Op == fsnotify.Write && w.Unchanged(ev.Name) {
		w.logger.Debug("Content unchanged; skipping rebuild", logfields.Path(ev.Name))
		return
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// Unchanged reports whether path still has the fingerprint recorded by the
// last successful load.
func (w *Watcher) Unchanged(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	known, ok := w.fingerprints[abs]
	w.mu.Unlock()
	if !ok {
		return false
	}
	doc, err := docmodel.ParseFile(abs, docmodel.Options{})
	if err != nil {
		return false
	}
	return doc.Fingerprint() == known
}

func (w *Watcher) reload(ctx context.Context) {
	start := time.Now()
	cat, err := w.load(ctx)
	w.status.record(cat, err, time.Now())
	if err != nil {
		w.logger.Warn("Catalog reload failed", logfields.Error(err))
	} else {
		fps := make(map[string]string, len(cat.Sources()))
		for _, src := range cat.Sources() {
			if abs, aerr := filepath.Abs(src.Path); aerr == nil {
				fps[abs] = src.Fingerprint
			}
		}
		w.mu.Lock()
		w.fingerprints = fps
		w.mu.Unlock()
		w.logger.Info("Catalog reloaded",
			logfields.LoadID(cat.LoadID()),
			logfields.Files(len(cat.StandaloneFiles())),
			logfields.Trees(len(cat.TreeTemplates())),
			logfields.Duration(time.Since(start)))
	}
	if w.onReload != nil {
		w.onReload(cat, err)
	}
}

// rebuildWorker serializes reloads. A request arriving mid-reload queues
// exactly one more.
func (w *Watcher) rebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			w.reload(ctx)
		}
	}
}

func newDebouncer(d time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
