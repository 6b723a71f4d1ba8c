package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Map
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Reload key.Binding

	// Detail panel
	Horizon     key.Binding
	StepHorizon key.Binding
	Retry       key.Binding
	Close       key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "details"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "reload"),
		),

		Horizon: key.NewBinding(
			key.WithKeys("1", "3", "5"),
			key.WithHelp("1/3/5", "horizon"),
		),
		StepHorizon: key.NewBinding(
			key.WithKeys("left", "h", "right", "l"),
			key.WithHelp("←/→", "step horizon"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("Esc/x", "close"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// MapHelp returns the bindings shown while browsing the map.
func (k KeyMap) MapHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Reload, k.Quit}
}

// PanelHelp returns the bindings shown while the detail panel is open.
func (k KeyMap) PanelHelp() []key.Binding {
	return []key.Binding{k.Horizon, k.StepHorizon, k.Retry, k.Close, k.Quit}
}
