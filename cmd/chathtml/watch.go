package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watcher re-renders transcripts when they are written.
type watcher struct {
	input    string
	output   string
	renderer ConversationRenderer
	params   renderParams
	quiet    bool
	verbose  bool
	env      *Environment
	log      logrus.FieldLogger
}

// run blocks until ctx is cancelled, rendering each changed transcript.
// fsnotify is not recursive, so every directory under a directory input
// is registered up front. Directories created later are picked up too.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	info, err := os.Stat(w.input)
	if err != nil {
		return err
	}

	baseDir := ""
	if info.IsDir() {
		baseDir = w.input
		if err := addTree(fw, w.input); err != nil {
			return fmt.Errorf("watching %s: %w", w.input, err)
		}
	} else if err := fw.Add(filepath.Dir(w.input)); err != nil {
		return fmt.Errorf("watching %s: %w", w.input, err)
	}

	w.log.WithField("path", w.input).Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher stopped")
			return nil

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fw, ev, baseDir)
		}
	}
}

// handle renders the transcript named by ev when it is relevant.
func (w *watcher) handle(ctx context.Context, fw *fsnotify.Watcher, ev fsnotify.Event, baseDir string) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}

	if baseDir != "" && ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addTree(fw, ev.Name); err != nil {
				w.log.WithError(err).WithField("path", ev.Name).Warn("cannot watch new directory")
			}
			return
		}
	}

	if baseDir == "" && filepath.Clean(ev.Name) != filepath.Clean(w.input) {
		return
	}
	if !isTranscript(ev.Name) {
		return
	}

	f := FileToRender{InputPath: ev.Name, OutputPath: resolveOutputPath(ev.Name, w.output, baseDir)}
	w.log.WithField("path", ev.Name).Debug("transcript changed")

	result := renderFile(ctx, w.renderer, f, w.params)
	printResults([]RenderResult{result}, w.quiet, w.verbose, w.env)
}

// addTree registers root and every directory below it.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
