package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("uriopen.config")

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a settings file whenever it changes on disk.
type Watcher struct {
	path     string
	fw       *fsnotify.Watcher
	onChange func(*Config)
	done     chan struct{}
	once     sync.Once
}

// Watch observes path and calls onChange with the reloaded configuration.
// The directory is watched rather than the file so editors that replace
// the file on save are still seen. onChange runs on the watcher goroutine.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		fw:       fw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	pending := false

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(reloadDebounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			cfg, err := LoadFrom(w.path)
			if err != nil {
				log.Warningf("reload %s: %s", w.path, err)
				continue
			}
			log.Infof("reloaded %s", w.path)
			if w.onChange != nil {
				w.onChange(cfg)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warningf("watch %s: %s", w.path, err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}
