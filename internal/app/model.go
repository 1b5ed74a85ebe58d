package app

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/disnet/flint-note-sub007/internal/config"
	"github.com/disnet/flint-note-sub007/internal/logging"
	"github.com/disnet/flint-note-sub007/internal/note"
	"github.com/disnet/flint-note-sub007/internal/popover"
)

// mode controls the UI state and which input widget is active.
type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeNewNote
)

// overlayKind identifies the transient list popup that currently owns the
// keyboard. Wikilink popovers are tracked separately by the popover
// controller; opening either side dismisses the other.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayAutocomplete
)

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	cfg   config.Config
	store *note.Store
	log   *slog.Logger

	// Tree pane
	items      []treeItem
	expanded   map[string]bool
	cursor     int
	treeOffset int

	// Current note
	currentFile    string
	currentContent string

	// Widgets
	viewport viewport.Model
	editor   textarea.Model
	input    textinput.Model
	mode     mode
	status   string
	showHelp bool

	width  int
	height int

	// Preview rendering
	spinner     spinner.Model
	rendering   bool
	renderSeq   int
	pendingPath string
	pendingWid  int
	renderCache map[string]renderCacheEntry

	// Wikilink popovers
	pop       *popover.Controller
	dispatch  *popover.Dispatcher
	modifiers popover.ModifierKeys

	activeSpan    note.Span
	hasSpan       bool
	spanFromHover bool
	popSize       popover.Size
	menuCursor    int

	hoverSeq    int
	hoverOffset int
	pointerX    int
	pointerY    int

	// Cached wikilink spans for the editor content
	spans      []note.Span
	spansValue string

	// Autocomplete popup
	overlay   overlayKind
	acMatches []note.Target
	acCursor  int
	acStart   int

	keys keyMap

	watcher *watcher
}

// New prepares the initial UI model against an already-scanned note store.
func New(cfg config.Config, store *note.Store) (*Model, error) {
	expanded := map[string]bool{cfg.NotesDir: true}
	items := buildTree(cfg.NotesDir, expanded)

	vp := viewport.New(0, 0)
	vp.SetContent("Select a note to view")

	editor := textarea.New()
	editor.Placeholder = "Your note content here..."
	editor.CharLimit = 0
	applyEditorTheme(&editor)

	spin := spinner.New()
	spin.Spinner = spinner.Line

	input := textinput.New()
	input.CharLimit = 120

	m := &Model{
		cfg:         cfg,
		store:       store,
		log:         logging.New("app"),
		items:       items,
		expanded:    expanded,
		viewport:    vp,
		editor:      editor,
		input:       input,
		mode:        modeBrowse,
		status:      "Ready",
		spinner:     spin,
		renderCache: map[string]renderCacheEntry{},
		modifiers:   popover.ResolveModifierKeys(popover.RuntimePlatform()),
		keys:        newKeyMap(),
		hoverOffset: -1,
	}

	m.pop = popover.NewController(popover.Positioner{Gap: cfg.PopoverGap})
	m.dispatch = popover.NewDispatcher(popover.Actions{
		OnOpen: m.openActiveLink,
		OnEdit: m.editActiveLinkDisplay,
	})

	if cfg.Watch {
		w, err := newWatcher(cfg.NotesDir)
		if err != nil {
			m.log.Warn("filesystem watcher unavailable", "error", err)
		} else {
			m.watcher = w
		}
	}

	return m, nil
}

// Init starts the spinner and, when enabled, the watcher listen loop.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.rendering {
			m.viewport.SetContent(m.spinner.View() + " Rendering...")
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout(m.calculateLayout())
		m.adjustTreeOffset()
		// The popover anchor moves with the reflowed editor content.
		m.refreshPopoverGeometry()
		m.syncPopoverMeasurement()
		return m, m.refreshPreview()

	case renderRequestMsg:
		if msg.seq != m.renderSeq || msg.path != m.pendingPath || msg.width != m.pendingWid {
			return m, nil
		}
		return m, renderMarkdownCmd(msg.path, msg.width, msg.seq, m.cfg.GlamourStyle)

	case renderResultMsg:
		return m.handleRenderResult(msg)

	case hoverTickMsg:
		return m.handleHoverTick(msg)

	case watcherEventMsg:
		return m.handleWatcherEvent(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}
