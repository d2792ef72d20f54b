package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// RebuildFunc builds the catalog once.
type RebuildFunc func(ctx context.Context) error

// FingerprintFunc digests the current state of the scan root.
type FingerprintFunc func(root string) (string, error)

// Watcher rebuilds on change. It is not safe for concurrent Run calls.
type Watcher struct {
	root        string
	debounce    time.Duration
	logger      lawcat.Logger
	fingerprint FingerprintFunc
	rebuild     RebuildFunc
	ignored     map[string]struct{}

	last string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithIgnoredPaths excludes paths (typically the catalog and report) from
// triggering rebuilds.
func WithIgnoredPaths(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if abs, err := filepath.Abs(p); err == nil {
				w.ignored[abs] = struct{}{}
			}
		}
	}
}

// New creates a watcher. Panics on nil arguments.
func New(root string, debounce time.Duration, logger lawcat.Logger, fingerprint FingerprintFunc, rebuild RebuildFunc, opts ...Option) *Watcher {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fingerprint == nil {
		panic("fingerprint cannot be nil")
	}
	if rebuild == nil {
		panic("rebuild cannot be nil")
	}
	w := &Watcher{
		root:        root,
		debounce:    debounce,
		logger:      logger,
		fingerprint: fingerprint,
		rebuild:     rebuild,
		ignored:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run builds once, then rebuilds after changes until ctx is done.
// Configuration errors from the first build are returned; every other
// build failure is logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return lawcat.NewDiscoveryError(w.root, err)
	}

	if err := w.cycle(ctx, true); err != nil && errors.Is(err, lawcat.ErrInvalidConfig) {
		return err
	}
	w.logger.Info("watching %s (debounce %s)", w.root, w.debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !isHidden(event.Name) {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.Warn("cannot watch %s: %v", event.Name, err)
					}
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Verbose("change detected: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error: %v", err)

		case <-fire:
			fire = nil
			_ = w.cycle(ctx, false)
		}
	}
}

// cycle rebuilds when the fingerprint changed since the last successful build.
func (w *Watcher) cycle(ctx context.Context, first bool) error {
	fp, err := w.fingerprint(w.root)
	if err != nil {
		w.logger.Error("cannot scan %s: %v", w.root, err)
		return err
	}
	if !first && fp == w.last {
		w.logger.Verbose("law files unchanged; skipping rebuild")
		return nil
	}
	if err := w.rebuild(ctx); err != nil {
		w.logger.Error("build failed: %v", err)
		return err
	}
	w.last = fp
	return nil
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	if isHidden(event.Name) {
		return false
	}
	if abs, err := filepath.Abs(event.Name); err == nil {
		if _, skip := w.ignored[abs]; skip {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	// Directories have no extension; a removed directory can no longer be stat'ed.
	return ext == lawcat.LawFileExtension || ext == ""
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
