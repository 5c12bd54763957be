package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/eslex/internal/types"
)

// settleDelay lets a burst of writes to one file land before it is rescanned.
const settleDelay = 100 * time.Millisecond

// ReportFunc receives the result of rescanning a changed file.
type ReportFunc func(filename string, matches []tt.Match, err error)

// Watch rescans accepted files under dirs whenever they are written, until
// ctx is done.
func (e *Engine) Watch(ctx context.Context, dirs []string, report ReportFunc) error {
	e.watchMu.Lock()
	if e.isWatching {
		e.watchMu.Unlock()
		return errors.New("already watching")
	}
	e.isWatching = true
	e.watchMu.Unlock()

	defer func() {
		e.watchMu.Lock()
		e.isWatching = false
		e.watchMu.Unlock()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !e.IsIgnoredPath(path) {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	e.logger.Info("watching", zap.Strings("dirs", dirs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			e.handleFileEvent(ctx, watcher, event, report)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, report ReportFunc) {
	if event.Has(fsnotify.Create) {
		// follow directories created after the watch started
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				e.logger.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !e.Accepts(event.Name) || e.IsIgnoredPath(event.Name) {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(settleDelay):
	}

	matches, err := e.Run(event.Name)
	e.logger.Debug("rescanned", zap.String("file", event.Name), zap.Int("matches", len(matches)))
	report(event.Name, matches, err)
}
