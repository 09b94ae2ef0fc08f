// Package selection holds the immutable row selection and highlight values
// that the table view replaces on every click.
package selection

import "sort"

// RowSelection is an immutable sorted set of rows plus the row last touched,
// which anchors shift-click ranges. The zero value is the empty selection.
// Every operation returns a new value.
type RowSelection struct {
	rows      []int
	anchor    int
	hasAnchor bool
}

// Empty is the selection with no rows and no anchor.
var Empty = RowSelection{}

// New builds a selection from arbitrary rows; duplicates are dropped.
func New(rows ...int) RowSelection {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	out := sorted[:0]
	for i, r := range sorted {
		if i > 0 && r == sorted[i-1] {
			continue
		}
		out = append(out, r)
	}
	return RowSelection{rows: out}
}

// IsEmpty reports whether no row is selected.
func (s RowSelection) IsEmpty() bool { return len(s.rows) == 0 }

// Len is the number of selected rows.
func (s RowSelection) Len() int { return len(s.rows) }

// Anchor returns the last touched row.
func (s RowSelection) Anchor() (int, bool) { return s.anchor, s.hasAnchor }

func (s RowSelection) search(row int) int {
	return sort.SearchInts(s.rows, row)
}

// Includes reports whether row is selected.
func (s RowSelection) Includes(row int) bool {
	i := s.search(row)
	return i < len(s.rows) && s.rows[i] == row
}

// Entries returns a copy of the selected rows in ascending order.
func (s RowSelection) Entries() []int {
	return append([]int(nil), s.rows...)
}

// Toggle removes row if selected, otherwise inserts it. The anchor moves to row.
func (s RowSelection) Toggle(row int) RowSelection {
	i := s.search(row)
	if i < len(s.rows) && s.rows[i] == row {
		next := make([]int, 0, len(s.rows)-1)
		next = append(next, s.rows[:i]...)
		next = append(next, s.rows[i+1:]...)
		return RowSelection{rows: next, anchor: row, hasAnchor: true}
	}
	next := make([]int, 0, len(s.rows)+1)
	next = append(next, s.rows[:i]...)
	next = append(next, row)
	next = append(next, s.rows[i:]...)
	return RowSelection{rows: next, anchor: row, hasAnchor: true}
}

// Single selects only row. Clicking the only selected row again clears the
// selection.
func (s RowSelection) Single(row int) RowSelection {
	if len(s.rows) == 1 && s.rows[0] == row {
		return Empty
	}
	return RowSelection{rows: []int{row}, anchor: row, hasAnchor: true}
}

// Range selects every row between the anchor and toRow inclusive, keeping the
// rows already selected outside that span. Without an anchor, or when the
// anchor is toRow, the selection is returned unchanged. The new anchor is
// toRow so chained shift-clicks keep their direction.
func (s RowSelection) Range(toRow int) RowSelection {
	if !s.hasAnchor || s.anchor == toRow {
		return s
	}
	from, to := s.anchor, toRow
	if from > to {
		from, to = to, from
	}

	lo, hi := from, to
	if len(s.rows) > 0 {
		lo = min(lo, s.rows[0])
		hi = max(hi, s.rows[len(s.rows)-1])
	}

	next := make([]int, 0, len(s.rows)+to-from+1)
	ri := 0
	for row := lo; row <= hi; {
		switch {
		case ri < len(s.rows) && s.rows[ri] == row:
			next = append(next, row)
			ri++
			row++
		case row >= from && row <= to:
			next = append(next, row)
			row++
		default:
			// jump to the next selected row or the start of the span,
			// whichever comes first, so sparse selections stay cheap
			jump := hi + 1
			if ri < len(s.rows) {
				jump = s.rows[ri]
			}
			if row < from && from < jump {
				jump = from
			}
			row = jump
		}
	}
	return RowSelection{rows: next, anchor: toRow, hasAnchor: true}
}

// Modifiers are the keys held during a click.
type Modifiers struct {
	Ctrl  bool // ctrl on Linux and Windows, cmd on macOS
	Shift bool
}

// Apply maps a click to a selection change: plain click selects a single row,
// ctrl toggles, shift extends a range from the anchor.
func Apply(s RowSelection, row int, mods Modifiers) RowSelection {
	switch {
	case mods.Ctrl:
		return s.Toggle(row)
	case mods.Shift:
		return s.Range(row)
	default:
		return s.Single(row)
	}
}
