package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdenrich/internal/hints"
)

// watchDebounce coalesces editor save bursts into one render.
const watchDebounce = 150 * time.Millisecond

// watch re-renders changed inputs until ctx is done.
func watch(ctx context.Context, job *renderJob, flags *renderFlags, env *Environment) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	root := watchRoot(job.input)
	if err := addWatchDirs(w, root); err != nil {
		return err
	}
	job.logger.Info("watching for changes", "root", root)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", root)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(w, evt.Name); err != nil {
						job.logger.Warn("watching new directory", "path", evt.Name, "error", err)
					}
					continue
				}
			}
			if !isMarkdown(evt.Name) || !(evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create)) {
				continue
			}
			pending[filepath.Clean(evt.Name)] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			job.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			files := job.changedFiles(pending)
			clear(pending)
			if len(files) == 0 {
				continue
			}
			if err := job.renderOnce(ctx, files, flags, env); err != nil {
				job.logger.Warn("re-render failed", "error", err)
			}
		}
	}
}

// changedFiles keeps the changed paths that discovery would select, so
// outputs written inside the watched tree never trigger a render.
func (j *renderJob) changedFiles(changed map[string]struct{}) []FileToRender {
	files, err := discoverFiles(j.input, j.cfg.Input.Pattern, j.outputDir, j.ext)
	if err != nil {
		j.logger.Warn("rediscovering files", "error", err)
		return nil
	}

	var out []FileToRender
	for _, f := range files {
		if _, ok := changed[filepath.Clean(f.InputPath)]; ok {
			out = append(out, f)
		}
	}
	return out
}

// watchRoot returns the directory to watch for input.
func watchRoot(input string) string {
	if isGlob(input) {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(input))
		return filepath.FromSlash(base)
	}
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		return filepath.Dir(input)
	}
	return input
}

// addWatchDirs watches root and every directory below it. fsnotify is
// not recursive.
func addWatchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EMFILE) {
				return fmt.Errorf("watching %s: %w%s", path, err, hints.ForWatchLimit())
			}
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
