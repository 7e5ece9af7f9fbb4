package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/obrok/lens/logging"
)

// Watch reloads path with LoadFile whenever it is written or recreated, until
// ctx is done. The watcher is running when Watch returns. onReload, if not
// nil, is called after every reload attempt with its error.
func (c *Config) Watch(ctx context.Context, path string, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				c.log().Info("config change detected", "file", event.Name)
				err := c.LoadFile(path)
				if err != nil {
					c.log().Error("failed to reload config", "file", path, logging.Err(err))
				}
				if onReload != nil {
					onReload(err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.log().Error("config watcher error", logging.Err(err))
			}
		}
	}()
	return nil
}
