package panel

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the preset at path whenever it is written or replaced, until ctx is done. The
// containing directory is watched so editors that save by rename are picked up. Each reload is
// passed to dispatch so the controls are written on the frame goroutine; a nil dispatch applies
// the preset on the watcher goroutine.
//
// Parameters:
//   - ctx: stops the watcher
//   - path: the preset file
//   - dispatch: queues the reload, may be nil
//   - onReload: receives the result of each reload, may be nil
//
// Returns:
//   - error: error if the watcher cannot be created
func (p *Panel) Watch(ctx context.Context, path string, dispatch func(func()), onReload func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("panel: watch %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("panel: watch %s: %w", path, err)
	}
	if dispatch == nil {
		dispatch = func(f func()) { f() }
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
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				dispatch(func() {
					err := p.LoadFile(abs)
					if err != nil {
						common.Logger().Warn("panel preset reload failed", "path", abs, "error", err)
					} else {
						common.Logger().Info("panel preset reloaded", "path", abs)
					}
					if onReload != nil {
						onReload(err)
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				common.Logger().Warn("panel watcher error", "error", err)
			}
		}
	}()
	return nil
}
