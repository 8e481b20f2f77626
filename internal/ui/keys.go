package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings for the results screen and list navigation.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Back         key.Binding
	Quit         key.Binding
	Help         key.Binding
	RadiusUp     key.Binding
	RadiusDown   key.Binding
	NudgeNorth   key.Binding
	NudgeSouth   key.Binding
	NudgeWest    key.Binding
	NudgeEast    key.Binding
	Recenter     key.Binding
	ToggleMode   key.Binding
	ToggleBooze  key.Binding
	Retry        key.Binding
	StartSearch  key.Binding
	AddForm      key.Binding
	DeleteRow    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		RadiusUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "widen radius"),
		),
		RadiusDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "narrow radius"),
		),
		NudgeNorth: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("shift+↑", "nudge center north"),
		),
		NudgeSouth: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("shift+↓", "nudge center south"),
		),
		NudgeWest: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("shift+←", "nudge center west"),
		),
		NudgeEast: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("shift+→", "nudge center east"),
		),
		Recenter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "recenter on group"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "ranking mode"),
		),
		ToggleBooze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "alcohol filter"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "search again"),
		),
		StartSearch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "find spots"),
		),
		AddForm: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add person"),
		),
		DeleteRow: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove person"),
		),
	}
}
