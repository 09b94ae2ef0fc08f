package filter

import (
	"fmt"
	"sort"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/selection"
)

// FrozenSelection passes only the records that were selected when it was
// created, for "filter to selected rows".
type FrozenSelection struct {
	base
	indices map[int]struct{}
}

// NewFrozenSelection keeps the records with the given indices.
func NewFrozenSelection(indices ...int) *FrozenSelection {
	f := &FrozenSelection{base: newBase(), indices: make(map[int]struct{}, len(indices))}
	for _, i := range indices {
		f.indices[i] = struct{}{}
	}
	return f
}

// FreezeSelection resolves the selected view positions against the rows
// currently visible, so the filter keeps matching the same records after the
// view changes. Positions outside visible are ignored.
func FreezeSelection(sel selection.RowSelection, visible []*model.LogRecord) *FrozenSelection {
	var indices []int
	for _, pos := range sel.Entries() {
		if pos < 0 || pos >= len(visible) {
			continue
		}
		indices = append(indices, visible[pos].Index)
	}
	return NewFrozenSelection(indices...)
}

func (f *FrozenSelection) Kind() Kind { return KindSelection }

func (f *FrozenSelection) Test(rec *model.LogRecord, _ int) bool {
	_, ok := f.indices[rec.Index]
	return ok
}

// Indices returns the kept record indices in ascending order.
func (f *FrozenSelection) Indices() []int {
	out := make([]int, 0, len(f.indices))
	for i := range f.indices {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (f *FrozenSelection) Name() string {
	return fmt.Sprintf("Selected rows (%d)", len(f.indices))
}

func (f *FrozenSelection) Spec() Spec {
	return Spec{Kind: KindSelection, Rows: f.Indices()}
}
