package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the board key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextCol key.Binding
	PrevCol key.Binding

	MoveLeft  key.Binding // Task to the previous status.
	MoveRight key.Binding // Task to the next status.
	Comments  key.Binding
	Delete    key.Binding
	New       key.Binding // Task in the focused column.
	Edit      key.Binding
	Refresh   key.Binding

	Add     key.Binding // Comments pane: write a comment.
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextCol: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next column"),
	),
	PrevCol: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev column"),
	),
	MoveLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "move back"),
	),
	MoveRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "move on"),
	),
	Comments: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comments"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new task"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add comment"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp lists the bindings shown under the board.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextCol, k.MoveLeft, k.MoveRight, k.New, k.Edit, k.Comments, k.Delete, k.Quit}
}

// FullHelp groups every binding.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextCol, k.PrevCol},
		{k.MoveLeft, k.MoveRight, k.New, k.Edit, k.Comments, k.Delete, k.Refresh},
		{k.Add, k.Confirm, k.Back, k.Quit},
	}
}
