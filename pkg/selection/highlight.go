package selection

import "sort"

// HighlightSet marks rows for emphasis independently of filtering and
// selection. Rows are record indices so a highlight survives the row being
// filtered out of view. The zero value is empty; values are never mutated.
type HighlightSet struct {
	rows map[int]struct{}
}

// NewHighlightSet returns a set containing rows.
func NewHighlightSet(rows ...int) HighlightSet {
	h := HighlightSet{rows: make(map[int]struct{}, len(rows))}
	for _, r := range rows {
		h.rows[r] = struct{}{}
	}
	return h
}

// Includes reports whether row is highlighted.
func (h HighlightSet) Includes(row int) bool {
	_, ok := h.rows[row]
	return ok
}

// Len is the number of highlighted rows.
func (h HighlightSet) Len() int { return len(h.rows) }

// Entries returns the highlighted rows in ascending order.
func (h HighlightSet) Entries() []int {
	out := make([]int, 0, len(h.rows))
	for r := range h.rows {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Toggle treats targets as one switch: when every target is already
// highlighted they are all removed, otherwise the missing ones are added.
// An empty target set leaves the highlights unchanged.
func (h HighlightSet) Toggle(targets []int) HighlightSet {
	if len(targets) == 0 {
		return h
	}
	allOn := true
	for _, r := range targets {
		if !h.Includes(r) {
			allOn = false
			break
		}
	}

	next := make(map[int]struct{}, len(h.rows)+len(targets))
	for r := range h.rows {
		next[r] = struct{}{}
	}
	for _, r := range targets {
		if allOn {
			delete(next, r)
		} else {
			next[r] = struct{}{}
		}
	}
	return HighlightSet{rows: next}
}
