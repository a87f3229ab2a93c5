package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	ToggleView key.Binding
	Export     key.Binding
	NorthStar  key.Binding
	Add        key.Binding
	Delete     key.Binding
	Up         key.Binding
	Down       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	NextValue  key.Binding
	PrevValue  key.Binding
	Edit       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Done       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "list/timeline")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export svg")),
		NorthStar:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "north star")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab")),
		NextValue:  key.NewBinding(key.WithKeys("right", "l")),
		PrevValue:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "cycle")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		MoveUp:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K/J", "reorder")),
		MoveDown:   key.NewBinding(key.WithKeys("J")),
		Done:       key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
	}
}

// helpKeys adapts the key map to help.KeyMap for the current mode.
type helpKeys struct {
	keys    keyMap
	mode    Mode
	editing bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	k := h.keys
	switch {
	case h.editing:
		return []key.Binding{k.Done}
	case h.mode == ModeTimeline:
		return []key.Binding{k.ToggleView, k.NorthStar, k.Export, k.Quit}
	}
	return []key.Binding{k.Up, k.NextField, k.Edit, k.PrevValue, k.Add, k.Delete, k.MoveUp, k.NorthStar, k.ToggleView, k.Export, k.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
