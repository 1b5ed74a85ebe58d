package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/disnet/flint-note-sub007/internal/config"
	"github.com/disnet/flint-note-sub007/internal/note"
)

// newTestModel builds a model over a temp notes dir with the given files,
// sized to a fixed 100x30 terminal. The watcher stays off so tests are
// deterministic.
func newTestModel(t *testing.T, notes map[string]string) *Model {
	t.Helper()
	root := t.TempDir()
	for name, content := range notes {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	store := note.NewStore(root)
	if err := store.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	cfg := config.Config{
		NotesDir:     root,
		HoverDelayMs: 0,
		PopoverGap:   1,
		GlamourStyle: "notty",
		Watch:        false,
	}
	m, err := New(cfg, store)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.width = 100
	m.height = 30
	m.applyLayout(m.calculateLayout())
	return m
}

// enterEdit opens the named note in the editor with the caret at offset.
func enterEdit(t *testing.T, m *Model, name string, caret int) {
	t.Helper()
	m.mode = modeEdit
	m.applyLayout(m.calculateLayout())
	if err := m.openNote(filepath.Join(m.cfg.NotesDir, name)); err != nil {
		t.Fatalf("open note: %v", err)
	}
	m.setEditorValueAndCursorOffset(m.editor.Value(), caret)
}
