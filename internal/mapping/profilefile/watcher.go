// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package profilefile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	xlog "github.com/ManuGH/sheetmap/internal/log"
	"github.com/ManuGH/sheetmap/internal/mapping/store"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period after the last file event before the
// watcher re-syncs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-syncs a profile file into a store whenever it changes.
type Watcher struct {
	path     string
	store    store.Store
	debounce time.Duration
	logger   zerolog.Logger

	// OnSync, if set, is called after every sync attempt.
	OnSync func(SyncResult, error)
}

// NewWatcher creates a watcher for path. Call Run to start it.
func NewWatcher(path string, s store.Store) *Watcher {
	return &Watcher{
		path:     path,
		store:    s,
		debounce: DefaultDebounce,
		logger:   xlog.WithComponent("profilefile"),
	}
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run watches until ctx is done. The parent directory is watched rather
// than the file itself so that atomic replacements are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	target := filepath.Clean(w.path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch profile file directory: %w", err)
	}

	w.logger.Info().
		Str(xlog.FieldEvent, "profilefile.watcher_started").
		Str(xlog.FieldPath, target).
		Msg("watching profile file for changes")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str(xlog.FieldEvent, "profilefile.watcher_stopped").Msg("profile file watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Debug().
					Str(xlog.FieldEvent, "profilefile.changed").
					Str("op", event.Op.String()).
					Msg("profile file changed")
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			w.sync(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().
				Err(err).
				Str(xlog.FieldEvent, "profilefile.watcher_error").
				Msg("profile file watcher error")
		}
	}
}

func (w *Watcher) sync(ctx context.Context) {
	res, err := Sync(ctx, w.store, w.path)
	if err != nil {
		w.logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "profilefile.sync_failed").
			Str(xlog.FieldPath, w.path).
			Msg("profile file sync failed, keeping stored profiles")
	} else {
		w.logger.Info().
			Str(xlog.FieldEvent, "profilefile.synced").
			Int("created", res.Created).
			Int("updated", res.Updated).
			Msg("profile file synced")
	}
	if w.OnSync != nil {
		w.OnSync(res, err)
	}
}
