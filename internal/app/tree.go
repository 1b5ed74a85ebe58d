// tree.go builds and navigates the left-hand notes tree.
package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// treeItem is a single row in the tree pane.
type treeItem struct {
	path  string
	name  string
	depth int
	isDir bool
}

// buildTree walks the notes root and flattens expanded directories into a
// display list. Hidden entries are skipped; directories sort before files.
func buildTree(root string, expanded map[string]bool) []treeItem {
	items := []treeItem{{path: root, name: filepath.Base(root), depth: 0, isDir: true}}
	if expanded[root] {
		items = append(items, buildSubtree(root, 1, expanded)...)
	}
	return items
}

func buildSubtree(dir string, depth int, expanded map[string]bool) []treeItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var items []treeItem
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.IsDir() && !hasSuffixCaseInsensitive(name, ".md") {
			continue
		}
		path := filepath.Join(dir, name)
		items = append(items, treeItem{path: path, name: name, depth: depth, isDir: entry.IsDir()})
		if entry.IsDir() && expanded[path] {
			items = append(items, buildSubtree(path, depth+1, expanded)...)
		}
	}
	return items
}

// refreshTree rebuilds the display list, keeping the cursor on the same
// path when it survives.
func (m *Model) refreshTree() {
	var keep string
	if item := m.selectedItem(); item != nil {
		keep = item.path
	}
	m.items = buildTree(m.cfg.NotesDir, m.expanded)
	if keep != "" {
		for i, item := range m.items {
			if item.path == keep {
				m.cursor = i
				break
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, max(0, len(m.items)-1))
	m.adjustTreeOffset()
}

func (m *Model) selectedItem() *treeItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.items)-1))
	m.adjustTreeOffset()
}

// toggleExpand expands/collapses the selected directory; on a file with
// expand=true it opens the preview instead.
func (m *Model) toggleExpand(expand bool) {
	item := m.selectedItem()
	if item == nil {
		return
	}
	if !item.isDir {
		return
	}
	if expand && !m.expanded[item.path] {
		m.expanded[item.path] = true
	} else if !expand && m.expanded[item.path] {
		delete(m.expanded, item.path)
	} else {
		return
	}
	m.refreshTree()
}

// adjustTreeOffset scrolls the tree so the cursor stays visible.
func (m *Model) adjustTreeOffset() {
	visible := max(1, m.treeVisibleRows())
	if m.cursor < m.treeOffset {
		m.treeOffset = m.cursor
	}
	if m.cursor >= m.treeOffset+visible {
		m.treeOffset = m.cursor - visible + 1
	}
	m.treeOffset = clamp(m.treeOffset, 0, max(0, len(m.items)-1))
}

func (m *Model) treeVisibleRows() int {
	layout := m.calculateLayout()
	return max(0, layout.ContentHeight-paneStyle.GetVerticalFrameSize()-1)
}

// renderTree draws the tree pane rows for the current offset.
func (m *Model) renderTree(width, height int) string {
	if height <= 0 {
		return ""
	}
	var b strings.Builder
	endRow := min(len(m.items), m.treeOffset+height)
	for i := m.treeOffset; i < endRow; i++ {
		item := m.items[i]
		prefix := strings.Repeat("  ", item.depth)
		marker := "  "
		if item.isDir {
			marker = "▸ "
			if m.expanded[item.path] {
				marker = "▾ "
			}
		}
		line := truncate(prefix+marker+item.name, width)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		if i < endRow-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
