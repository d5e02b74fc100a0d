package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yildizm/LifeStrat/internal/emoji"
	"github.com/yildizm/LifeStrat/internal/formatter"
)

// watchAndRender re-renders filename on every write until the command's
// context is cancelled
func watchAndRender(cmd *cobra.Command, f formatter.Formatter, filename string) error {
	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, emoji.Label("watch", "Watching "+filename+", press Ctrl+C to stop..."))

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintln(errOut, "\nStopping...")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := handleWatchEvent(cmd, watcher, f, event); err != nil {
				logger.Warn("render failed", zap.String("file", event.Name), zap.Error(err))
				fmt.Fprintln(errOut, emoji.Label("warning", err.Error()))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// handleWatchEvent re-renders on write. Editors that save by rename drop the
// watch, so it is re-added once the new file exists.
func handleWatchEvent(cmd *cobra.Command, watcher *fsnotify.Watcher, f formatter.Formatter, event fsnotify.Event) error {
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
	case event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
		if !fileExists(event.Name) {
			return nil
		}
		if err := watcher.Add(event.Name); err != nil {
			return fmt.Errorf("failed to re-watch file: %w", err)
		}
	default:
		return nil
	}

	logger.Debug("file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("─", 40))
	return renderFile(cmd.OutOrStdout(), f, event.Name)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil {
		logger.Warn("failed to close watcher", zap.Error(err))
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
