package glrage

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// configWatcher calls onChange once a burst of changes to a configuration
// file has settled.
type configWatcher struct {
	watcher  *fsnotify.Watcher
	absPath  string
	debounce time.Duration
	onChange func()
	onError  func(error)

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// startConfigWatcher watches path and runs the event loop until stop.
func startConfigWatcher(path string, debounce time.Duration, onChange func(), onError func(error)) (*configWatcher, error) {
	if onChange == nil {
		return nil, errors.New("glrage: watcher needs a change callback")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors that save by renaming replace the file, so the directory is
	// watched instead of the file itself.
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		w.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	cw := &configWatcher{
		watcher:  w,
		absPath:  absPath,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

// stop ends the event loop and waits for it to exit.
func (cw *configWatcher) stop() {
	cw.stopOnce.Do(func() { close(cw.stopCh) })
	<-cw.done
}

func (cw *configWatcher) loop() {
	defer close(cw.done)
	defer cw.watcher.Close()

	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-cw.stopCh:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.relevant(event) {
				continue
			}
			timer.Reset(cw.debounce)

		case <-timer.C:
			cw.onChange()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			if cw.onError != nil {
				cw.onError(err)
			}
		}
	}
}

// relevant reports whether event changes the watched file's content.
func (cw *configWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	p, err := filepath.Abs(event.Name)
	return err == nil && p == cw.absPath
}
