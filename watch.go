package folio

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 300 * time.Millisecond

// watchContent reloads the site whenever a file under the content directory
// changes. Bursts of events collapse into one reload.
func (a *App) watchContent(ctx context.Context) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addTree(w, a.Config.ContentDir); err != nil {
		w.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					// New directories need their own watch.
					_ = addTree(w, ev.Name)
				}
				a.Logger.Debug("content changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				timer = time.After(reloadDebounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				a.Logger.Warn("watch error", zap.Error(err))
			case <-timer:
				timer = nil
				if err := a.Reload(ctx); err != nil {
					a.Logger.Error("reload content", zap.Error(err))
					continue
				}
				a.Logger.Info("content reloaded")
			}
		}
	}()

	a.Logger.Info("watching content", zap.String("dir", a.Config.ContentDir))
	return func() {
		cancel()
		w.Close()
		<-done
	}, nil
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
