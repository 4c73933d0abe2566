package vault

import (
	"github.com/fsnotify/fsnotify"
)

// Watcher reports periods whose backing document changed outside the
// application, e.g. an editor saving the file directly. Consumers feed
// the emitted period keys into the store's cache invalidation.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan string
}

// Watch starts watching the vault directory. The directory must exist.
func (v *Vault) Watch() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(v.dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan string, 16),
	}
	go w.loop()
	return w, nil
}

// Changes returns the channel of period keys whose documents changed.
// The channel is closed when the watcher is closed.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher and closes the changes channel.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// loop translates filesystem events into period keys. Backup and temp
// files written during normal saves are ignored; a slow consumer drops
// notifications rather than blocking the loop.
func (w *Watcher) loop() {
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			period, ok := PeriodFromPath(ev.Name)
			if !ok {
				continue
			}
			select {
			case w.changes <- period:
			default:
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
