package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Launcher applies rules to files, one action at a time.
type Launcher struct {
	rules  []Rule
	run    RunFunc
	logger *slog.Logger

	// lastRun remembers the modification time each (rule, path) was last run
	// for, so repeated write events for one save trigger a single action.
	lastRun map[string]time.Time
}

func New(rules *Rules, run RunFunc, logger *slog.Logger) (*Launcher, error) {
	if rules == nil || len(rules.Rules) == 0 {
		return nil, errors.New("launcher: rules required")
	}
	if run == nil {
		return nil, errors.New("launcher: run func required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		rules:   rules.Rules,
		run:     run,
		logger:  logger,
		lastRun: make(map[string]time.Time),
	}, nil
}

// Scan walks every rule path once and runs the action for each match.
// Action failures are logged; only context cancellation stops the walk.
func (l *Launcher) Scan(ctx context.Context) (int, error) {
	ran := 0
	for _, rule := range l.rules {
		for _, root := range rule.Paths {
			root = filepath.Clean(root)
			err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if err != nil {
					l.logger.Warn("walk error", "root", root, "err", err)
					return nil
				}
				if entry.IsDir() || !rule.Matches(path) {
					return nil
				}
				if l.runRule(ctx, rule, filepath.Clean(path), EventScan) {
					ran++
				}
				return nil
			})
			if err != nil {
				if ctx.Err() != nil {
					return ran, ctx.Err()
				}
				l.logger.Warn("walk failed", "root", root, "err", err)
			}
		}
	}
	return ran, nil
}

// Watch runs matching rules whenever a file under a rule path is created or
// written, until ctx is cancelled. Events are handled sequentially.
func (l *Launcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, rule := range l.rules {
		for _, root := range rule.Paths {
			if err := addRecursive(watcher, filepath.Clean(root)); err != nil {
				return err
			}
		}
	}
	l.logger.Info("watching", "dirs", len(watcher.WatchList()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("watch error", "err", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			l.handle(ctx, watcher, event)
		}
	}
}

func (l *Launcher) handle(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		l.forget(path)
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := addRecursive(watcher, path); err != nil {
				l.logger.Warn("watch new directory", "path", path, "err", err)
			}
		}
		return
	}
	for _, rule := range l.rules {
		if !rule.Matches(path) {
			continue
		}
		key := runKey(rule.Name, path)
		if last, ok := l.lastRun[key]; ok && !info.ModTime().After(last) {
			continue
		}
		l.lastRun[key] = info.ModTime()
		l.runRule(ctx, rule, path, EventChange)
	}
}

func runKey(rule, path string) string {
	return rule + "\x00" + path
}

// forget drops the remembered modification times of a file that is gone.
func (l *Launcher) forget(path string) {
	for _, rule := range l.rules {
		delete(l.lastRun, runKey(rule.Name, path))
	}
}

func (l *Launcher) runRule(ctx context.Context, rule Rule, path, event string) bool {
	l.logger.Info("rule matched", "rule", rule.Name, "path", path, "event", event)
	start := time.Now()
	if err := l.run(ctx, rule, path, event); err != nil {
		l.logger.Error("action failed", "rule", rule.Name, "path", path, "err", err, "duration", time.Since(start))
		return false
	}
	l.logger.Debug("action done", "rule", rule.Name, "path", path, "duration", time.Since(start))
	return true
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
