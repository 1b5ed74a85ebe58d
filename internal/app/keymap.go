package app

import "github.com/charmbracelet/bubbles/key"

// keyMap declares every binding the UI responds to, with help text for the
// footer.
type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Edit     key.Binding
	NewNote  key.Binding
	Refresh  key.Binding
	Save     key.Binding
	Back     key.Binding
	LinkMenu key.Binding
	Confirm  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Expand:   key.NewBinding(key.WithKeys("enter", "right"), key.WithHelp("enter", "open")),
		Collapse: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "collapse")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		NewNote:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		LinkMenu: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "link actions")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	}
}
