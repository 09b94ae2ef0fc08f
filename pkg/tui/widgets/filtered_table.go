package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

// TableHeaderLines is the number of lines bubble-table draws above the first
// data row: top border, titles and the separator.
const TableHeaderLines = 3

// tableChromeLines adds the bottom border to the header lines.
const tableChromeLines = TableHeaderLines + 1

// RowRenderer builds the table row for a position of the filtered view.
type RowRenderer func(position int) table.Row

// FilteredTable shows a window of a filtered row source. Only the rows on
// screen are materialized, so the source can hold any number of rows.
type FilteredTable struct {
	base   table.Model
	render RowRenderer
	total  int
	cursor int
	offset int
	rows   int
	width  int
	empty  string
}

func NewFilteredTable(columns []table.Column, width, height int) FilteredTable {
	ft := FilteredTable{
		base: table.New(columns).
			Focused(true).
			WithFooterVisibility(false).
			HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))).
			HighlightStyle(lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true)),
		empty: "No rows match the active filters",
	}
	ft.SetSize(width, height)
	return ft
}

// SetSize sets the outer size of the table including borders.
func (ft *FilteredTable) SetSize(width, height int) {
	ft.width = width
	ft.rows = height - tableChromeLines
	if ft.rows < 1 {
		ft.rows = 1
	}
	ft.base = ft.base.WithTargetWidth(width)
	ft.SetCursor(ft.cursor)
}

// SetSource replaces the row source and clamps the cursor into it.
func (ft *FilteredTable) SetSource(total int, render RowRenderer) {
	ft.total = total
	ft.render = render
	ft.SetCursor(ft.cursor)
}

// SetEmptyMessage sets the text shown when the source has no rows.
func (ft *FilteredTable) SetEmptyMessage(msg string) { ft.empty = msg }

func (ft FilteredTable) Total() int    { return ft.total }
func (ft FilteredTable) Cursor() int   { return ft.cursor }
func (ft FilteredTable) Offset() int   { return ft.offset }
func (ft FilteredTable) PageSize() int { return ft.rows }

// SetCursor moves the cursor to pos, clamped to the source, and scrolls the
// window just enough to keep it visible.
func (ft *FilteredTable) SetCursor(pos int) {
	if pos >= ft.total {
		pos = ft.total - 1
	}
	if pos < 0 {
		pos = 0
	}
	ft.cursor = pos

	if ft.cursor < ft.offset {
		ft.offset = ft.cursor
	}
	if ft.cursor >= ft.offset+ft.rows {
		ft.offset = ft.cursor - ft.rows + 1
	}
	if maxOffset := ft.total - ft.rows; ft.offset > maxOffset {
		ft.offset = maxOffset
	}
	if ft.offset < 0 {
		ft.offset = 0
	}
}

func (ft *FilteredTable) MoveCursor(delta int) { ft.SetCursor(ft.cursor + delta) }
func (ft *FilteredTable) Home()                { ft.SetCursor(0) }
func (ft *FilteredTable) End()                 { ft.SetCursor(ft.total - 1) }

// RowAt maps a line inside the table, counted from its top border, to a
// position of the source.
func (ft FilteredTable) RowAt(y int) (int, bool) {
	line := y - TableHeaderLines
	if line < 0 || line >= ft.rows {
		return 0, false
	}
	pos := ft.offset + line
	if pos >= ft.total {
		return 0, false
	}
	return pos, true
}

// Window returns the half-open range of positions currently on screen.
func (ft FilteredTable) Window() (from, to int) {
	to = ft.offset + ft.rows
	if to > ft.total {
		to = ft.total
	}
	return ft.offset, to
}

func (ft FilteredTable) View() string {
	from, to := ft.Window()
	rows := make([]table.Row, 0, to-from)
	if ft.render != nil {
		for pos := from; pos < to; pos++ {
			rows = append(rows, ft.render(pos))
		}
	}
	view := ft.base.WithRows(rows).WithHighlightedRow(ft.cursor - ft.offset).View()
	if ft.total == 0 {
		view = lipgloss.JoinVertical(lipgloss.Left, view,
			lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true).Render(ft.empty))
	}
	return view
}
