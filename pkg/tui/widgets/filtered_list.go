package widgets

import (
	"fmt"
	"strings"

	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListItem is one checkable entry of a FilteredList.
type ListItem struct {
	Key     string
	Label   string
	Count   int
	Checked bool
}

// FilteredList is a checklist with type-to-filter. Checking items is left to
// the owner, which reads Current and calls SetItems with the new state.
type FilteredList struct {
	Title     string
	items     []ListItem
	shown     []int
	cursor    int
	offset    int
	height    int
	filter    textinput.Model
	filtering bool
}

func NewFilteredList(title string, items []ListItem, height int) FilteredList {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 64

	fl := FilteredList{Title: title, filter: ti, height: height}
	fl.SetItems(items)
	return fl
}

// SetItems replaces the items, keeping the filter and the cursor position.
func (fl *FilteredList) SetItems(items []ListItem) {
	fl.items = items
	fl.applyFilter()
}

func (fl *FilteredList) SetHeight(height int) {
	fl.height = height
	fl.scroll()
}

func (fl FilteredList) Items() []ListItem { return fl.items }
func (fl FilteredList) Filtering() bool   { return fl.filtering }
func (fl FilteredList) FilterText() string {
	return fl.filter.Value()
}

// Current returns the item under the cursor.
func (fl FilteredList) Current() (ListItem, bool) {
	if fl.cursor < 0 || fl.cursor >= len(fl.shown) {
		return ListItem{}, false
	}
	return fl.items[fl.shown[fl.cursor]], true
}

// Shown returns the items that pass the filter.
func (fl FilteredList) Shown() []ListItem {
	out := make([]ListItem, len(fl.shown))
	for i, idx := range fl.shown {
		out[i] = fl.items[idx]
	}
	return out
}

func (fl *FilteredList) applyFilter() {
	needle := strings.ToLower(fl.filter.Value())
	fl.shown = fl.shown[:0]
	for i, item := range fl.items {
		if needle == "" || strings.Contains(strings.ToLower(item.Label), needle) {
			fl.shown = append(fl.shown, i)
		}
	}
	if fl.cursor >= len(fl.shown) {
		fl.cursor = len(fl.shown) - 1
	}
	if fl.cursor < 0 {
		fl.cursor = 0
	}
	fl.scroll()
}

func (fl *FilteredList) visibleRows() int {
	// title and filter line
	if rows := fl.height - 2; rows > 0 {
		return rows
	}
	return 1
}

func (fl *FilteredList) scroll() {
	rows := fl.visibleRows()
	if fl.cursor < fl.offset {
		fl.offset = fl.cursor
	}
	if fl.cursor >= fl.offset+rows {
		fl.offset = fl.cursor - rows + 1
	}
}

func (fl FilteredList) Init() tea.Cmd { return nil }

func (fl FilteredList) Update(msg tea.Msg) (FilteredList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return fl, nil
	}

	if fl.filtering {
		switch keyMsg.String() {
		case "esc":
			fl.filtering = false
			fl.filter.Blur()
			fl.filter.SetValue("")
			fl.applyFilter()
			return fl, nil
		case "enter":
			fl.filtering = false
			fl.filter.Blur()
			return fl, nil
		case "up", "down":
		default:
			var cmd tea.Cmd
			fl.filter, cmd = fl.filter.Update(msg)
			fl.applyFilter()
			return fl, cmd
		}
	}

	switch keyMsg.String() {
	case "/":
		fl.filtering = true
		cmd := fl.filter.Focus()
		return fl, cmd
	case "up", "k":
		if fl.cursor > 0 {
			fl.cursor--
		}
	case "down", "j":
		if fl.cursor < len(fl.shown)-1 {
			fl.cursor++
		}
	case "home", "g":
		fl.cursor = 0
	case "end", "G":
		fl.cursor = len(fl.shown) - 1
		if fl.cursor < 0 {
			fl.cursor = 0
		}
	}
	fl.scroll()
	return fl, nil
}

func (fl FilteredList) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	title := fl.Title
	if v := fl.filter.Value(); v != "" && !fl.filtering {
		title += " /" + v
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	rows := fl.visibleRows()
	end := fl.offset + rows
	if end > len(fl.shown) {
		end = len(fl.shown)
	}
	if len(fl.shown) == 0 {
		sb.WriteString(countStyle.Render("  nothing matches"))
		sb.WriteString("\n")
	}
	for i := fl.offset; i < end; i++ {
		item := fl.items[fl.shown[i]]
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, item.Label)
		if i == fl.cursor {
			line = cursorStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		if item.Count > 0 {
			sb.WriteString(" ")
			sb.WriteString(countStyle.Render(utils.FormatShortCount(item.Count)))
		}
		sb.WriteString("\n")
	}

	if fl.filtering {
		sb.WriteString(fl.filter.View())
	} else {
		sb.WriteString(countStyle.Render("space: toggle | a: all | n: none | /: filter | esc: close"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Render(sb.String())
}
