package gallery

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is the outcome of re-reading a watched manifest.
type Reload struct {
	Manifest *Manifest
	Err      error
}

// Watch re-reads the manifest at filename whenever it changes and delivers
// the result on the returned channel until ctx is done. The directory is
// watched rather than the file so that editors which replace the file on
// save keep being followed.
//
// The channel is buffered by one and a pending result is replaced by a
// newer one; the UI loop polls it once per frame.
func Watch(ctx context.Context, filename string, debounce time.Duration) (<-chan Reload, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan Reload, 1)
	deb := NewDebouncer(debounce)

	send := func(r Reload) {
		select {
		case <-out:
		default:
		}
		select {
		case out <- r:
		default:
		}
	}

	go func() {
		defer w.Close()
		defer deb.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				deb.Trigger(func() {
					m, err := LoadManifest(abs)
					send(Reload{Manifest: m, Err: err})
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Println("manifest watcher:", err)
			}
		}
	}()
	return out, nil
}
