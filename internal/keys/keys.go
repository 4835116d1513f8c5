package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Calendar
	PrevDay        key.Binding
	NextDay        key.Binding
	ToggleCalendar key.Binding
	Today          key.Binding

	// Actions
	Toggle     key.Binding
	NewTodo    key.Binding
	NewBox     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	SoftDelete key.Binding

	// Filters
	NextBoxFilter key.Binding
	Search        key.Binding
	CycleSort     key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		ToggleCalendar: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "week/month calendar"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		NewTodo: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new todo"),
		),
		NewBox: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new box"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit todo"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		SoftDelete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "move to deleted"),
		),
		NextBoxFilter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle box filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by priority"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
