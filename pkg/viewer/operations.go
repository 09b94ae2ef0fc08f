package viewer

import (
	"sort"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/pairing"
	"github.com/Slach/debug-log-viewer/pkg/selection"
	"github.com/pkg/errors"
)

// ErrNotFound is returned for a view position with no visible row.
var ErrNotFound = errors.New("row not found")

// Tags returns every tag present in the log, sorted.
func (s *Session) Tags() []string { return s.tags }

// SelectedTags returns the tags the tag filter currently passes.
func (s *Session) SelectedTags() []string { return s.pipeline.Tags.Tags() }

// SetTags replaces the tag filter.
func (s *Session) SetTags(tags []string) {
	s.pipeline.Tags = filter.NewTagSet(tags...)
	s.recompute()
}

// ToggleTag flips a single tag in the tag filter.
func (s *Session) ToggleTag(tag string) {
	s.pipeline.Tags = s.pipeline.Tags.With(tag, !s.pipeline.Tags.Has(tag))
	s.recompute()
}

// SelectedLevels returns the levels the level filter currently passes.
func (s *Session) SelectedLevels() []model.LogLevel { return s.pipeline.Levels.Levels() }

// SetLevels replaces the level filter.
func (s *Session) SetLevels(levels []model.LogLevel) {
	s.pipeline.Levels = filter.NewLevelSet(levels...)
	s.recompute()
}

// ToggleLevel flips a single level in the level filter.
func (s *Session) ToggleLevel(level model.LogLevel) {
	s.pipeline.Levels = s.pipeline.Levels.With(level, !s.pipeline.Levels.Has(level))
	s.recompute()
}

// AddGrep compiles input and appends it as a grep filter. Nothing changes
// when the pattern is invalid.
func (s *Session) AddGrep(input string, invert bool) (filter.Filter, error) {
	g, err := filter.NewGrep(input, invert)
	if err != nil {
		return nil, err
	}
	s.AddFilter(g)
	return g, nil
}

// AddFilter installs f. Tag and level sets replace the current ones,
// connection filters join the connection list, everything else is appended.
func (s *Session) AddFilter(f filter.Filter) {
	switch v := f.(type) {
	case *filter.TagSet:
		s.pipeline.Tags = v
	case *filter.LevelSet:
		s.pipeline.Levels = v
	case *filter.Connection:
		s.pipeline.Connections = append(cloneConnections(s.pipeline.Connections), v)
	default:
		s.pipeline.Filters = append(cloneFilters(s.pipeline.Filters), f)
	}
	s.recompute()
}

// AddSpec builds the filter described by spec and installs it.
func (s *Session) AddSpec(spec filter.Spec) (filter.Filter, error) {
	f, err := filter.FromSpec(spec)
	if err != nil {
		return nil, err
	}
	s.AddFilter(f)
	return f, nil
}

// RemoveFilter drops the custom or connection filter with the given id. The
// tag and level sets can't be removed, only changed.
func (s *Session) RemoveFilter(id string) bool {
	for i, f := range s.pipeline.Filters {
		if f.ID() == id {
			next := cloneFilters(s.pipeline.Filters)
			s.pipeline.Filters = append(next[:i], next[i+1:]...)
			s.recompute()
			return true
		}
	}
	for i, c := range s.pipeline.Connections {
		if c.ID() == id {
			next := cloneConnections(s.pipeline.Connections)
			s.pipeline.Connections = append(next[:i], next[i+1:]...)
			s.recompute()
			return true
		}
	}
	return false
}

// ReplaceFilter swaps the custom filter with the given id for f in a single
// recompute. f is appended when id isn't active.
func (s *Session) ReplaceFilter(id string, f filter.Filter) {
	next := cloneFilters(s.pipeline.Filters)
	for i, old := range next {
		if old.ID() == id {
			next[i] = f
			s.pipeline.Filters = next
			s.recompute()
			return
		}
	}
	s.pipeline.Filters = append(next, f)
	s.recompute()
}

// ClearFilters drops every custom and connection filter.
func (s *Session) ClearFilters() {
	if len(s.pipeline.Filters) == 0 && len(s.pipeline.Connections) == 0 {
		return
	}
	s.pipeline.Filters = nil
	s.pipeline.Connections = nil
	s.recompute()
}

// TimeRange returns the bounds of the active time filter.
func (s *Session) TimeRange() (from, to time.Time, ok bool) {
	for _, f := range s.pipeline.Filters {
		if r, isRange := f.(*filter.TimeRange); isRange {
			return r.From, r.To, true
		}
	}
	return time.Time{}, time.Time{}, false
}

// SetTimeRange replaces the time filter. Two zero bounds remove it.
func (s *Session) SetTimeRange(from, to time.Time) {
	next := make([]filter.Filter, 0, len(s.pipeline.Filters)+1)
	for _, f := range s.pipeline.Filters {
		if f.Kind() != filter.KindTime {
			next = append(next, f)
		}
	}
	if !from.IsZero() || !to.IsZero() {
		next = append(next, filter.NewTimeRange(from, to))
	}
	s.pipeline.Filters = next
	s.recompute()
}

// RemoveLastFilter drops the most recently added custom filter.
func (s *Session) RemoveLastFilter() bool {
	if n := len(s.pipeline.Filters); n > 0 {
		return s.RemoveFilter(s.pipeline.Filters[n-1].ID())
	}
	return false
}

// Filters lists the active filters in display order.
func (s *Session) Filters() []filter.Filter { return s.pipeline.Active() }

// ConnectionGroups lists the connections found in the log.
func (s *Session) ConnectionGroups() []filter.ConnectionGroup { return s.connections }

// ConnectionEnabled reports whether a filter for key is active.
func (s *Session) ConnectionEnabled(key filter.ConnectionKey) bool {
	for _, c := range s.pipeline.Connections {
		if c.Key() == key {
			return true
		}
	}
	return false
}

// ToggleConnection adds a connection filter for key, or removes it when it
// is already active.
func (s *Session) ToggleConnection(key filter.ConnectionKey) {
	for _, c := range s.pipeline.Connections {
		if c.Key() == key {
			s.RemoveFilter(c.ID())
			return
		}
	}
	s.AddFilter(filter.NewConnection(key))
}

// Click updates the selection for a click on the visible row at position.
func (s *Session) Click(position int, mods selection.Modifiers) {
	if position < 0 || position >= len(s.result.Rows) {
		return
	}
	s.selection = selection.Apply(s.selection, position, mods)
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() { s.selection = selection.Empty }

// Selection returns the selected view positions.
func (s *Session) Selection() selection.RowSelection { return s.selection }

// SelectedRecords returns the selected visible records in view order.
func (s *Session) SelectedRecords() []*model.LogRecord {
	out := make([]*model.LogRecord, 0, s.selection.Len())
	for _, pos := range s.selection.Entries() {
		if pos < len(s.result.Rows) {
			out = append(out, s.result.Rows[pos])
		}
	}
	return out
}

// HighlightSelected toggles the highlight of the selected records.
func (s *Session) HighlightSelected() {
	selected := s.SelectedRecords()
	indices := make([]int, len(selected))
	for i, rec := range selected {
		indices[i] = rec.Index
	}
	s.highlights = s.highlights.Toggle(indices)
}

// Highlights returns the highlighted record indices.
func (s *Session) Highlights() selection.HighlightSet { return s.highlights }

// IsHighlighted reports whether rec is highlighted.
func (s *Session) IsHighlighted(rec *model.LogRecord) bool {
	return s.highlights.Includes(rec.Index)
}

// FreezeSelection replaces the view with just the selected rows. It returns
// false when nothing is selected.
func (s *Session) FreezeSelection() (filter.Filter, bool) {
	if s.selection.IsEmpty() {
		return nil, false
	}
	f := filter.FreezeSelection(s.selection, s.result.Rows)
	s.AddFilter(f)
	return f, true
}

// Inspect returns the visible record at position with its reciprocal
// request or response.
func (s *Session) Inspect(position int) (Inspection, error) {
	if position < 0 || position >= len(s.result.Rows) {
		return Inspection{}, errors.Wrapf(ErrNotFound, "position %d of %d", position, len(s.result.Rows))
	}
	rec := s.result.Rows[position]
	in := Inspection{Record: rec}
	if counterpart, ok := pairing.FindCounterpart(rec, s.records); ok {
		in.Counterpart = counterpart
	}
	return in, nil
}

// Position returns the view position of the record with the given index.
func (s *Session) Position(index int) (int, bool) {
	pos := s.searchIndex(index)
	if pos < len(s.result.Rows) && s.result.Rows[pos].Index == index {
		return pos, true
	}
	return 0, false
}

// NearestPosition returns the position of the record with the given index,
// or of the first visible record after it, clamped to the last row.
func (s *Session) NearestPosition(index int) int {
	pos := s.searchIndex(index)
	if pos >= len(s.result.Rows) {
		pos = len(s.result.Rows) - 1
	}
	if pos < 0 {
		return 0
	}
	return pos
}

func (s *Session) searchIndex(index int) int {
	rows := s.result.Rows
	return sort.Search(len(rows), func(i int) bool { return rows[i].Index >= index })
}

// TagCounts returns the number of records per tag in the whole log.
func (s *Session) TagCounts() map[string]int {
	counts := make(map[string]int, len(s.tags))
	for i := range s.records {
		counts[s.records[i].Tag]++
	}
	return counts
}

// LevelCounts returns the number of records per level in the whole log.
func (s *Session) LevelCounts() map[model.LogLevel]int {
	counts := make(map[model.LogLevel]int)
	for i := range s.records {
		counts[s.records[i].Level]++
	}
	return counts
}

func cloneFilters(in []filter.Filter) []filter.Filter {
	return append([]filter.Filter(nil), in...)
}

func cloneConnections(in []*filter.Connection) []*filter.Connection {
	return append([]*filter.Connection(nil), in...)
}
