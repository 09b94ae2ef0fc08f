package widgets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/evertras/bubble-table/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []table.Column {
	return []table.Column{
		table.NewColumn("level", "Level", 6),
		table.NewFlexColumn("entry", "Log Entry", 1),
	}
}

func testRenderer(calls *int) RowRenderer {
	return func(pos int) table.Row {
		if calls != nil {
			*calls++
		}
		return table.NewRow(table.RowData{
			"level": []string{"VERB", "INFO", "WARN", "ERROR"}[pos%4],
			"entry": fmt.Sprintf("entry %d", pos),
		})
	}
}

func TestFilteredTableWindow(t *testing.T) {
	// 10 data rows fit into 14 lines
	ft := NewFilteredTable(testColumns(), 60, 14)
	require.Equal(t, 10, ft.PageSize())

	calls := 0
	ft.SetSource(1000, testRenderer(&calls))
	view := ft.View()
	assert.Equal(t, 10, calls, "only the visible rows are rendered")
	assert.Contains(t, view, "entry 0")
	assert.Contains(t, view, "entry 9")
	assert.NotContains(t, view, "entry 10")

	ft.SetCursor(25)
	from, to := ft.Window()
	assert.Equal(t, 16, from)
	assert.Equal(t, 26, to)

	ft.MoveCursor(-12)
	assert.Equal(t, 13, ft.Cursor())
	assert.Equal(t, 13, ft.Offset())

	ft.End()
	assert.Equal(t, 999, ft.Cursor())
	assert.Equal(t, 990, ft.Offset())
	assert.Contains(t, ft.View(), "entry 999")

	ft.Home()
	assert.Equal(t, 0, ft.Offset())
}

func TestFilteredTableSourceShrinks(t *testing.T) {
	ft := NewFilteredTable(testColumns(), 60, 14)
	ft.SetSource(100, testRenderer(nil))
	ft.SetCursor(95)

	ft.SetSource(5, testRenderer(nil))
	assert.Equal(t, 4, ft.Cursor())
	assert.Equal(t, 0, ft.Offset())

	ft.SetSource(0, testRenderer(nil))
	assert.Equal(t, 0, ft.Cursor())
	assert.Contains(t, ft.View(), "No rows match")
}

func TestFilteredTableRowAt(t *testing.T) {
	ft := NewFilteredTable(testColumns(), 60, 14)
	ft.SetSource(30, testRenderer(nil))
	ft.SetCursor(29)

	tests := []struct {
		y    int
		pos  int
		want bool
	}{
		{y: 0, want: false},
		{y: TableHeaderLines - 1, want: false},
		{y: TableHeaderLines, pos: 20, want: true},
		{y: TableHeaderLines + 9, pos: 29, want: true},
		{y: TableHeaderLines + 10, want: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("y=%d", tt.y), func(t *testing.T) {
			pos, ok := ft.RowAt(tt.y)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.pos, pos)
			}
		})
	}

	short := NewFilteredTable(testColumns(), 60, 14)
	short.SetSource(2, testRenderer(nil))
	_, ok := short.RowAt(TableHeaderLines + 2)
	assert.False(t, ok, "lines below the last row are empty")
}

func TestFilteredTableTinyHeight(t *testing.T) {
	ft := NewFilteredTable(testColumns(), 60, 2)
	assert.Equal(t, 1, ft.PageSize())
	ft.SetSource(3, testRenderer(nil))
	ft.MoveCursor(1)
	assert.Equal(t, 1, ft.Offset())
	assert.True(t, strings.Contains(ft.View(), "entry 1"))
}

// BenchmarkFilteredTable_View renders one screen of sources of growing size.
func BenchmarkFilteredTable_View(b *testing.B) {
	for _, size := range []int{100, 1000, 10000, 100000} {
		b.Run(fmt.Sprintf("rows_%d", size), func(b *testing.B) {
			ft := NewFilteredTable(testColumns(), 120, 50)
			ft.SetSource(size, testRenderer(nil))
			ft.SetCursor(size / 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = ft.View()
			}
		})
	}
}

// BenchmarkFilteredTable_Navigation walks the cursor through the source.
func BenchmarkFilteredTable_Navigation(b *testing.B) {
	for _, size := range []int{1000, 10000, 100000} {
		b.Run(fmt.Sprintf("navigation_rows_%d", size), func(b *testing.B) {
			ft := NewFilteredTable(testColumns(), 120, 50)
			ft.SetSource(size, testRenderer(nil))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ft.SetCursor(i % size)
			}
		})
	}
}
