package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML file over the defaults. Fields absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c.Normalize(), nil
}

// Save writes c as TOML.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Watch delivers a fresh snapshot on out every time the file at path is
// written. Decode failures are logged and skipped so the last good snapshot
// stays in effect. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, out chan<- Config, log *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch the directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

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
			c, err := Load(path)
			if err != nil {
				log.Warn("config reload failed", "path", path, "err", err)
				continue
			}
			log.Debug("config reloaded", "path", path)
			select {
			case out <- c:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher", "err", err)
		}
	}
}
