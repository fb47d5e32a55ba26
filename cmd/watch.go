package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"noteplayer/logging"
)

const watchSettle = 250 * time.Millisecond

// watchFile calls replay each time path is written, once writes have
// settled, until ctx is done or replay fails.
func watchFile(ctx context.Context, path string, replay func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	// Editors often save by replacing the file, so watch its directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logging.Debugf("watching %s", abs)

	changed := make(chan struct{}, 1)
	settle := debounce.New(watchSettle)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			settle(func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Errorf("watch %s: %v", path, err)
		case <-changed:
			if err := replay(); err != nil {
				return err
			}
		}
	}
}
