package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the application key bindings
type KeyMap struct {
	Confirm   key.Binding
	Delete    key.Binding
	Down      key.Binding
	Download  key.Binding
	Edit      key.Binding
	Export    key.Binding
	Help      key.Binding
	New       key.Binding
	NextDay   key.Binding
	NextTab   key.Binding
	PrevDay   key.Binding
	Quit      key.Binding
	Refresh   key.Binding
	Reject    key.Binding
	Search    key.Binding
	SubTab    key.Binding
	SyncOther key.Binding
	Sync      key.Binding
	Up        key.Binding
}

// NewKeyMap creates the default key bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		Confirm:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Download:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "download")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "new export")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Reject:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SubTab:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "members/tickets")),
		Sync:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync members")),
		SyncOther: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sync tickets")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	}
}

// keyMatches reports whether the key message matches the binding
func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
