package tui

import (
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeyMark  = "mark"
	columnKeyLevel = "level"
	columnKeyTime  = "time"
	columnKeyTag   = "tag"
	columnKeyEntry = "entry"
)

var levelColors = map[model.LogLevel]lipgloss.Color{
	model.LevelVerbose: lipgloss.Color("8"),
	model.LevelInfo:    lipgloss.Color("12"),
	model.LevelWarn:    lipgloss.Color("11"),
	model.LevelError:   lipgloss.Color("9"),
	model.LevelFatal:   lipgloss.Color("13"),
}

var (
	selectedRowStyle    = lipgloss.NewStyle().Background(lipgloss.Color("24"))
	highlightedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	bothRowStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true)
)

func levelColor(l model.LogLevel) lipgloss.Color {
	if c, ok := levelColors[l]; ok {
		return c
	}
	return lipgloss.Color("7")
}

func tableColumns() []table.Column {
	return []table.Column{
		table.NewColumn(columnKeyMark, " ", 1),
		table.NewColumn(columnKeyLevel, "Level", 6),
		table.NewColumn(columnKeyTime, "Time", 24),
		table.NewColumn(columnKeyTag, "Tag", 18),
		table.NewFlexColumn(columnKeyEntry, "Log Entry", 1),
	}
}

// formatTime renders the time cell, either as the offset from epoch or as an
// ISO timestamp.
func formatTime(ts, epoch int64, absolute bool) string {
	if absolute {
		return utils.FormatTimestamp(ts)
	}
	return utils.FormatInterval(ts - epoch)
}

// renderRow builds the table row for a visible position.
func (a *App) renderRow(pos int) table.Row {
	s := a.state.Session
	rows := s.Visible()
	if pos < 0 || pos >= len(rows) {
		return table.NewRow(table.RowData{})
	}
	rec := rows[pos]
	selected := s.Selection().Includes(pos)
	highlighted := s.IsHighlighted(rec)

	mark := " "
	if selected {
		mark = "▌"
	}
	row := table.NewRow(table.RowData{
		columnKeyMark:  mark,
		columnKeyLevel: table.NewStyledCell(rec.Level.String(), lipgloss.NewStyle().Foreground(levelColor(rec.Level))),
		columnKeyTime:  formatTime(rec.Timestamp, s.Epoch(), a.absoluteTime),
		columnKeyTag:   rec.Tag,
		columnKeyEntry: rec.Summary(a.state.Config.SummaryLength),
	})
	switch {
	case selected && highlighted:
		row = row.WithStyle(bothRowStyle)
	case highlighted:
		row = row.WithStyle(highlightedRowStyle)
	case selected:
		row = row.WithStyle(selectedRowStyle)
	}
	return row
}
