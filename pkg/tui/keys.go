package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Select      key.Binding
	Toggle      key.Binding
	RangeUp     key.Binding
	RangeDown   key.Binding
	ClearSel    key.Binding
	Grep        key.Binding
	Tags        key.Binding
	Levels      key.Binding
	Connections key.Binding
	Activity    key.Binding
	Highlight   key.Binding
	Freeze      key.Binding
	PopFilter   key.Binding
	Inspect     key.Binding
	TimeFormat  key.Binding
	Command     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdown", "page down")),
	Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first row")),
	End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last row")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select row")),
	Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "add to selection")),
	RangeUp:     key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "extend up")),
	RangeDown:   key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "extend down")),
	ClearSel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
	Grep:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "grep")),
	Tags:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
	Levels:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "levels")),
	Connections: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connections")),
	Activity:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activity")),
	Highlight:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "highlight")),
	Freeze:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter to selection")),
	PopFilter:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "drop last filter")),
	Inspect:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
	TimeFormat:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "relative/absolute time")),
	Command:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Toggle, k.Grep, k.Tags, k.Levels, k.Connections, k.Inspect, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Select, k.Toggle, k.RangeUp, k.RangeDown, k.ClearSel, k.Highlight, k.Freeze},
		{k.Grep, k.Tags, k.Levels, k.Connections, k.PopFilter},
		{k.Inspect, k.Activity, k.TimeFormat, k.Command, k.Help, k.Quit},
	}
}
