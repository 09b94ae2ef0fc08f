package tui

import (
	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/tui/widgets"
	tea "github.com/charmbracelet/bubbletea"
)

type pickerKind string

const (
	pickTags        pickerKind = "Tags"
	pickLevels      pickerKind = "Levels"
	pickConnections pickerKind = "Connections"
)

func (a *App) openPicker(kind pickerKind) {
	a.pickerKind = kind
	a.picker = widgets.NewFilteredList(string(kind), a.pickerItems(), a.bodyHeight()-2)
	a.mode = modePicker
}

func (a *App) pickerItems() []widgets.ListItem {
	s := a.state.Session
	switch a.pickerKind {
	case pickTags:
		selected := make(map[string]bool)
		for _, t := range s.SelectedTags() {
			selected[t] = true
		}
		counts := s.TagCounts()
		items := make([]widgets.ListItem, 0, len(s.Tags()))
		for _, t := range s.Tags() {
			items = append(items, widgets.ListItem{Key: t, Label: t, Count: counts[t], Checked: selected[t]})
		}
		return items

	case pickLevels:
		selected := make(map[model.LogLevel]bool)
		for _, l := range s.SelectedLevels() {
			selected[l] = true
		}
		counts := s.LevelCounts()
		items := make([]widgets.ListItem, 0, len(model.SelectableLevels))
		for _, l := range model.SelectableLevels {
			items = append(items, widgets.ListItem{Key: l.String(), Label: l.String(), Count: counts[l], Checked: selected[l]})
		}
		return items

	case pickConnections:
		groups := s.ConnectionGroups()
		a.connectionKeys = make(map[string]filter.ConnectionKey, len(groups))
		items := make([]widgets.ListItem, 0, len(groups))
		for _, g := range groups {
			label := g.Key.String()
			a.connectionKeys[label] = g.Key
			items = append(items, widgets.ListItem{Key: label, Label: label, Count: g.Count, Checked: s.ConnectionEnabled(g.Key)})
		}
		return items
	}
	return nil
}

// togglePickerItem flips one entry of the open picker.
func (a *App) togglePickerItem(item widgets.ListItem) {
	s := a.state.Session
	switch a.pickerKind {
	case pickTags:
		s.ToggleTag(item.Key)
	case pickLevels:
		if l, ok := model.ParseLevelWord(item.Key); ok {
			s.ToggleLevel(l)
		}
	case pickConnections:
		if k, ok := a.connectionKeys[item.Key]; ok {
			s.ToggleConnection(k)
		}
	}
}

// setAllPicker checks or unchecks every entry shown by the picker filter.
func (a *App) setAllPicker(on bool) {
	s := a.state.Session
	shown := a.picker.Shown()
	switch a.pickerKind {
	case pickTags:
		set := filter.NewTagSet(s.SelectedTags()...)
		for _, item := range shown {
			set = set.With(item.Key, on)
		}
		s.SetTags(set.Tags())
	case pickLevels:
		set := filter.NewLevelSet(s.SelectedLevels()...)
		for _, item := range shown {
			if l, ok := model.ParseLevelWord(item.Key); ok {
				set = set.With(l, on)
			}
		}
		s.SetLevels(set.Levels())
	case pickConnections:
		for _, item := range shown {
			if item.Checked != on {
				a.togglePickerItem(item)
			}
		}
	}
}

func (a *App) updatePicker(msg tea.KeyMsg) tea.Cmd {
	if !a.picker.Filtering() {
		switch msg.String() {
		case "esc", "q":
			a.mode = modeTable
			return nil
		case " ", "x", "enter":
			if item, ok := a.picker.Current(); ok {
				a.togglePickerItem(item)
				a.picker.SetItems(a.pickerItems())
			}
			return nil
		case "a":
			a.setAllPicker(true)
			a.picker.SetItems(a.pickerItems())
			return nil
		case "n":
			a.setAllPicker(false)
			a.picker.SetItems(a.pickerItems())
			return nil
		}
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return cmd
}
