// render.go implements debounced, cached markdown rendering for the preview
// pane.
//
// Rendering through Glamour is comparatively expensive, so tree navigation
// debounces render requests behind a short timer with a sequence number;
// only the latest request survives. Completed renders are cached per path
// with the file's mtime and the width bucket as the staleness key, and
// Glamour renderers themselves are reused per width bucket since building
// one parses style JSON.
package app

import (
	"os"
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const renderDebounce = 250 * time.Millisecond

// renderCacheEntry stores a completed render with its staleness keys.
type renderCacheEntry struct {
	mtime   time.Time
	width   int
	content string
}

// renderRequestMsg is emitted by the debounce timer; seq discards requests
// superseded by newer navigation.
type renderRequestMsg struct {
	path  string
	width int
	seq   int
}

// renderResultMsg carries the completed render (or error) back to Update.
type renderResultMsg struct {
	path    string
	width   int
	seq     int
	content string
	mtime   time.Time
	err     error
}

var (
	rendererCacheMu sync.Mutex
	rendererCache   = map[string]*glamour.TermRenderer{}
)

// rendererFor returns a shared Glamour renderer for the width bucket and
// style, creating it on first use. Renders run on background goroutines, so
// the cache is locked.
func rendererFor(width int, style string) (*glamour.TermRenderer, error) {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()

	key := style + ":" + strconv.Itoa(width)
	if r, ok := rendererCache[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[key] = r
	return r, nil
}

// renderWidthBucket buckets widths to multiples of 20 so small resizes
// reuse cached renders.
func renderWidthBucket(width int) int {
	if width <= 0 {
		return 80
	}
	if width < 20 {
		return width
	}
	return (width / 20) * 20
}

// refreshPreview shows the selected note in the preview pane, serving from
// cache when the file and width have not changed and scheduling a debounced
// render otherwise.
func (m *Model) refreshPreview() tea.Cmd {
	if m.mode != modeBrowse || m.currentFile == "" {
		return nil
	}
	width := renderWidthBucket(m.viewport.Width)

	if entry, ok := m.renderCache[m.currentFile]; ok && entry.width == width {
		if info, err := os.Stat(m.currentFile); err == nil && !info.ModTime().After(entry.mtime) {
			m.viewport.SetContent(entry.content)
			m.rendering = false
			return nil
		}
	}

	m.renderSeq++
	m.pendingPath = m.currentFile
	m.pendingWid = width
	m.rendering = true
	seq := m.renderSeq
	path := m.currentFile
	return tea.Tick(renderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{path: path, width: width, seq: seq}
	})
}

// renderMarkdownCmd reads and renders the file off the UI goroutine.
func renderMarkdownCmd(path string, width, seq int, style string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return renderResultMsg{path: path, width: width, seq: seq, err: err}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return renderResultMsg{path: path, width: width, seq: seq, err: err}
		}
		renderer, err := rendererFor(width, style)
		if err != nil {
			return renderResultMsg{path: path, width: width, seq: seq, err: err}
		}
		content, err := renderer.Render(string(data))
		if err != nil {
			return renderResultMsg{path: path, width: width, seq: seq, err: err}
		}
		return renderResultMsg{
			path:    path,
			width:   width,
			seq:     seq,
			content: content,
			mtime:   info.ModTime(),
		}
	}
}

// handleRenderResult applies a finished render, discarding stale sequences
// and renders for files the user has navigated away from.
func (m *Model) handleRenderResult(msg renderResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.seq == m.renderSeq && msg.path == m.currentFile {
			m.viewport.SetContent("Error reading note")
			m.status = "Error reading note"
			m.rendering = false
		}
		return m, nil
	}

	if entry, ok := m.renderCache[msg.path]; !ok || !entry.mtime.After(msg.mtime) {
		m.renderCache[msg.path] = renderCacheEntry{
			mtime:   msg.mtime,
			width:   msg.width,
			content: msg.content,
		}
	}
	if msg.seq != m.renderSeq || msg.path != m.currentFile {
		return m, nil
	}
	if msg.width == renderWidthBucket(m.viewport.Width) {
		m.viewport.SetContent(msg.content)
		m.rendering = false
	}
	return m, nil
}
