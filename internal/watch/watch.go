// Package watch runs a watermark job on every image dropped into a
// directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/watermark"
)

// DefaultDebounce is the quiet period a file must see before it is
// processed.
const DefaultDebounce = 500 * time.Millisecond

// Handler processes one file and returns the path it wrote.
type Handler func(ctx context.Context, path string) (string, error)

// Options configure a Watcher.
type Options struct {
	// Extensions lists the accepted file extensions, with the leading dot.
	// Matching ignores case. Empty accepts every file.
	Extensions []string
	// Debounce is the quiet period before a file is handled. Zero selects
	// DefaultDebounce.
	Debounce time.Duration
}

// Watcher monitors one directory.
type Watcher struct {
	dir      string
	exts     map[string]bool
	debounce time.Duration
	handle   Handler
	fs       *fsnotify.Watcher

	ready chan string
	done  chan struct{}

	mu       sync.Mutex
	timers   map[string]*time.Timer
	produced map[string]bool
}

// New creates a Watcher on dir. Call Run to start handling files.
func New(dir string, h Handler, opts Options) (*Watcher, error) {
	if h == nil {
		return nil, errors.New("watch: nil handler")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch: watch %s: %w", abs, err)
	}

	w := &Watcher{
		dir:      abs,
		debounce: opts.Debounce,
		handle:   h,
		fs:       fsw,
		ready:    make(chan string, 64),
		done:     make(chan struct{}),
		timers:   make(map[string]*time.Timer),
		produced: make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if len(opts.Extensions) > 0 {
		w.exts = make(map[string]bool, len(opts.Extensions))
		for _, ext := range opts.Extensions {
			w.exts[strings.ToLower(ext)] = true
		}
	}
	return w, nil
}

// Dir returns the absolute path of the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run handles files until ctx is done, one at a time. It closes the
// underlying watcher before returning and returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	log := watermark.Logger().With(slog.String("dir", w.dir))
	log.Info("watching directory", slog.Duration("debounce", w.debounce))

	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.accept(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case path := <-w.ready:
			w.process(ctx, log, path)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// accept reports whether a file name passes the dotfile and extension
// filters. Temporary files written by the watermarker start with a dot.
func (w *Watcher) accept(path string) bool {
	base := filepath.Base(path)
	if base == "" || base[0] == '.' {
		return false
	}
	if w.exts == nil {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(base))]
}

// schedule (re)starts the debounce timer of path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) process(ctx context.Context, log *slog.Logger, path string) {
	// Events caused by our own output are consumed once and dropped.
	if w.produced[path] {
		delete(w.produced, path)
		log.Debug("skipping own output", slog.String("file", path))
		return
	}

	out, err := w.handle(ctx, path)
	if err != nil {
		log.Error("watermark failed",
			slog.String("file", path),
			slog.String("code", watermark.CodeOf(err).String()),
			slog.Any("error", err))
		return
	}
	log.Info("watermarked", slog.String("file", path), slog.String("output", out))

	if w.accept(out) && filepath.Dir(out) == w.dir {
		w.produced[out] = true
	}
}

func (w *Watcher) stop() {
	close(w.done)

	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	_ = w.fs.Close()
}
