// Package watcher runs the pipeline automatically when a new screenshot
// lands in the watched directory.
package watcher

import (
	"context"
	"path/filepath"
	"strings"

	"riftcoach/internal/app"
	"riftcoach/internal/logger"
	"riftcoach/internal/schema"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes one directory for new image files.
type Watcher struct {
	dir string
	app *app.App
}

func New(dir string, application *app.App) *Watcher {
	return &Watcher{dir: dir, app: application}
}

// Run blocks until ctx is cancelled. Every created or written .png/.jpg
// triggers one pipeline invocation with the file as image path.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return err
	}
	logger.Infof("watching %s for screenshots", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !evt.Op.Has(fsnotify.Create) && !evt.Op.Has(fsnotify.Write) {
				continue
			}
			if !isImage(evt.Name) {
				continue
			}
			w.handle(ctx, evt.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watcher: %v", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, path string) {
	logger.Infof("screenshot detected: %s", path)
	result, err := w.app.Coach(ctx, schema.CoachRequest{ImagePath: path})
	if err != nil {
		logger.Errorf("coach run for %s: %v", path, err)
		return
	}
	if !result.Success {
		logger.Warnf("coach run for %s failed at %s: %v", path, result.FailedAt, result.Errors)
		return
	}
	logger.Infof("coach package ready for %s (%s as %s)",
		path, result.Package.Champion, result.Package.Role)
	logger.InfoBlock(schema.RenderSummary(result.Package))
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
