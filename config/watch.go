package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the freshly loaded configuration every time the
// file at path is written or recreated. A file that fails to load is logged
// and skipped. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file, so editors that
// replace the file on save are still seen.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config.Watch(%s): %w", path, err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("config.Watch(%s): %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			c, err := Load(target)
			if err != nil {
				if logger != nil {
					logger.Printf("config reload: %v", err)
				}
				continue
			}
			onChange(c)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Printf("config watch: %v", err)
			}
		}
	}
}
