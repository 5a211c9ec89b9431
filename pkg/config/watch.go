package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config file and invokes onChange with a freshly loaded
// configuration whenever the file is written or replaced. It blocks until
// ctx is cancelled. Only settings that are safe to change at runtime (token
// TTLs, prune interval) should be picked up by callers; connection settings
// require a restart.
func Watch(ctx context.Context, onChange func(*Config)) error {
	configPath := os.Getenv("AEGIS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	configFile := filepath.Join(configPath, ConfigFileName)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file so atomic renames
	// (editor saves, configmap updates) are observed.
	if err := watcher.Add(configPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", configPath, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != configFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load()
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher error: %v", err)
		}
	}
}
