// Package viewer keeps the state of one open log: the parsed records, the
// active filters, the selection and the highlights. Every change recomputes
// the visible rows synchronously and notifies subscribers.
package viewer

import (
	"sort"

	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/selection"
	"github.com/rs/zerolog/log"
)

// Options sets the initial filter state of a session.
type Options struct {
	ConnectionMode filter.ConnectionMode
	// HiddenTags start deselected in the tag filter.
	HiddenTags []string
	// Levels start selected; nil selects every selectable level.
	Levels []model.LogLevel
}

// Listener is called with every newly applied result.
type Listener func(filter.Result)

// Inspection is a record together with its reciprocal record, if any.
type Inspection struct {
	Record      *model.LogRecord
	Counterpart *model.LogRecord
}

// HasCounterpart reports whether a reciprocal record was found.
func (i Inspection) HasCounterpart() bool { return i.Counterpart != nil }

// Session is not safe for concurrent use; it is driven from a single event
// loop.
type Session struct {
	records     []model.LogRecord
	tags        []string
	connections []filter.ConnectionGroup
	welcome     model.Welcome
	hasWelcome  bool

	pipeline   filter.Pipeline
	result     filter.Result
	generation uint64

	selection  selection.RowSelection
	highlights selection.HighlightSet
	listeners  []Listener
}

// NewSession builds a session over records and computes the first view.
func NewSession(records []model.LogRecord, opts Options) *Session {
	s := &Session{records: records}
	s.tags = model.Tags(records)
	sort.Strings(s.tags)
	s.connections = filter.ConnectionGroups(records)
	s.welcome, s.hasWelcome = model.FindWelcome(records)

	hidden := make(map[string]bool, len(opts.HiddenTags))
	for _, t := range opts.HiddenTags {
		hidden[t] = true
	}
	var shown []string
	for _, t := range s.tags {
		if !hidden[t] {
			shown = append(shown, t)
		}
	}
	levels := opts.Levels
	if levels == nil {
		levels = model.SelectableLevels
	}
	mode := opts.ConnectionMode
	if mode == "" {
		mode = filter.ConnectionIntersect
	}

	s.pipeline = filter.Pipeline{
		Tags:   filter.NewTagSet(shown...),
		Levels: filter.NewLevelSet(levels...),
		Mode:   mode,
	}
	s.recompute()
	return s
}

// Subscribe registers l to be called after every recompute.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Records returns the full unfiltered list.
func (s *Session) Records() []model.LogRecord { return s.records }

// Result returns the last applied filter pass.
func (s *Session) Result() filter.Result { return s.result }

// Visible returns the rows that passed the filters, in file order.
func (s *Session) Visible() []*model.LogRecord { return s.result.Rows }

// Pipeline returns the current filter state.
func (s *Session) Pipeline() filter.Pipeline { return s.pipeline }

// Welcome returns the runtime.welcome information, if the log has it.
func (s *Session) Welcome() (model.Welcome, bool) { return s.welcome, s.hasWelcome }

// Epoch is the time relative timestamps are measured from: the welcome
// record if present, otherwise the first record.
func (s *Session) Epoch() int64 {
	if s.hasWelcome {
		return s.welcome.Timestamp
	}
	if len(s.records) > 0 {
		return s.records[0].Timestamp
	}
	return 0
}

// recompute runs the pipeline and applies the result.
func (s *Session) recompute() {
	s.generation++
	result := s.pipeline.Run(s.records)
	result.Generation = s.generation
	s.apply(result)
}

// apply installs result unless a newer one was already applied. The
// selection refers to view positions, so it is dropped when the visible rows
// change.
func (s *Session) apply(result filter.Result) bool {
	if result.Generation < s.result.Generation {
		log.Debug().Uint64("stale", result.Generation).Uint64("current", s.result.Generation).Msg("dropping stale filter result")
		return false
	}
	if !sameRows(s.result.Rows, result.Rows) {
		s.selection = selection.Empty
	}
	s.result = result
	log.Debug().
		Int("visible", result.Count()).
		Int("total", result.Total).
		Dur("elapsed", result.Elapsed).
		Uint64("generation", result.Generation).
		Msg("filters applied")
	for _, l := range s.listeners {
		l(result)
	}
	return true
}

func sameRows(a, b []*model.LogRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
