package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Tab  key.Binding

	// View switching
	Board      key.Binding
	Dashboard  key.Binding
	Deliveries key.Binding
	Vehicles   key.Binding
	Preparers  key.Binding
	Users      key.Binding
	Branches   key.Binding
	Profile    key.Binding

	// Actions
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Advance key.Binding
	Cancel  key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Enter   key.Binding
	Escape  key.Binding
	Logout  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Board: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "appointments"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		Deliveries: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "deliveries"),
		),
		Vehicles: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "vehicles"),
		),
		Preparers: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "preparers"),
		),
		Users: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "users"),
		),
		Branches: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "branches"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Advance: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "advance status"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit/select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns a short help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Refresh, k.Filter, k.Help, k.Quit}
}

// FullHelp returns the full help string
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Enter, k.Escape},
		{k.Board, k.Dashboard, k.Deliveries, k.Vehicles, k.Preparers, k.Users, k.Branches},
		{k.New, k.Edit, k.Delete, k.Advance, k.Cancel},
		{k.Filter, k.Refresh, k.Profile, k.Logout, k.Quit},
	}
}
