package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/reoring/archival/backend/interactive"
	"github.com/reoring/archival/examples/scene"
)

// render draws s for frames frames on a recording toolkit and writes each
// frame's widget outline to w.
func render(w io.Writer, window string, frames int, s *scene.Scene, log *zap.Logger) error {
	rec := interactive.NewRecorder()
	for i := 0; i < frames; i++ {
		if i > 0 {
			rec.NextFrame()
		}
		ar, root := interactive.NewArchive(rec, window, interactive.WithLogger(log))
		ok := ar.Serialize("scene", s).Succeeded()
		root.Close()
		if _, err := fmt.Fprintf(w, "# frame %d (%d widgets)\n", rec.Frame(), len(rec.Widgets())); err != nil {
			return errors.Wrap(err, "write")
		}
		if err := rec.Dump(w); err != nil {
			return errors.Wrap(err, "write")
		}
		if !ok {
			log.Debug("frame left some fields untouched", zap.Int("frame", rec.Frame()))
		}
	}
	return nil
}

func inspectFile(e env, path string, w io.Writer) error {
	s, err := loadScene(e, path)
	if err != nil {
		return err
	}
	return render(w, e.cfg.Inspect.Window, e.cfg.Inspect.Frames, s, e.log)
}

// watch calls fn after path changes, once per burst of events no closer than
// debounce apart, until ctx is done. The parent directory is watched so that
// editors replacing the file are seen.
func watch(ctx context.Context, log *zap.Logger, path string, debounce time.Duration, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "resolve path")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	log.Info("watching for changes", zap.String("path", abs))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("change", zap.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			fn()
		}
	}
}
