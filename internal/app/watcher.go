// watcher.go feeds external filesystem changes under the notes root back
// into the UI: the store entry is updated, the tree rebuilt, and cached
// previews invalidated. The open editor buffer is never touched.
package app

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/disnet/flint-note-sub007/internal/logging"
)

// watcherEventMsg is one coalesced filesystem event delivered to Update.
type watcherEventMsg struct {
	path   string
	op     fsnotify.Op
	closed bool
}

type watcher struct {
	fs     *fsnotify.Watcher
	events chan watcherEventMsg
}

// newWatcher watches root and every subdirectory recursively. fsnotify has
// no recursive mode, so directories are added as they appear.
func newWatcher(root string) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{fs: fs, events: make(chan watcherEventMsg, 16)}
	if err := w.addRecursive(root); err != nil {
		fs.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

func (w *watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return w.fs.Add(path)
		}
		return nil
	})
}

func (w *watcher) loop() {
	log := logging.New("watcher")
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						log.Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			select {
			case w.events <- watcherEventMsg{path: event.Name, op: event.Op}:
			default:
				// Queue full; the UI will catch up on the next refresh.
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

// wait returns a command that blocks for the next filesystem event.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.events
		if !ok {
			return watcherEventMsg{closed: true}
		}
		return msg
	}
}

func (w *watcher) close() {
	w.fs.Close()
}

// handleWatcherEvent folds an external change into the store and UI, then
// re-arms the wait command.
func (m *Model) handleWatcherEvent(msg watcherEventMsg) (tea.Model, tea.Cmd) {
	if msg.closed || m.watcher == nil {
		return m, nil
	}

	if hasSuffixCaseInsensitive(msg.path, ".md") {
		switch {
		case msg.op.Has(fsnotify.Remove) || msg.op.Has(fsnotify.Rename):
			m.store.Remove(msg.path)
		case msg.op.Has(fsnotify.Create) || msg.op.Has(fsnotify.Write):
			m.store.Upsert(msg.path)
		}
		delete(m.renderCache, msg.path)
	}

	m.refreshTree()

	var cmd tea.Cmd
	if msg.path == m.currentFile && m.mode == modeBrowse {
		cmd = m.refreshPreview()
	}
	return m, tea.Batch(cmd, m.watcher.wait())
}
