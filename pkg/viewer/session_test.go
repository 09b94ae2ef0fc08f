package viewer

import (
	"testing"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionLog = `{"timestamp":1000,"tag":"runtime.welcome","level":1,"message":"Welcome","metadata":{"os":"linux x64","nodeVersion":"v20.11.0","adapterVersion":"1.85.0"}}
{"timestamp":1010,"tag":"dap.receive","level":0,"metadata":{"connectionId":0,"message":{"seq":1,"type":"request","command":"initialize"}}}
{"timestamp":1020,"tag":"dap.send","level":0,"metadata":{"connectionId":0,"message":{"seq":2,"type":"response","request_seq":1,"success":true}}}
{"timestamp":1030,"tag":"cdp.send","level":0,"metadata":{"connectionId":1,"message":{"id":7,"method":"Debugger.enable"}}}
{"timestamp":1040,"tag":"cdp.receive","level":0,"metadata":{"connectionId":1,"message":{"id":7,"result":{"debuggerId":"x"}}}}
{"timestamp":1050,"tag":"cdp.send","level":0,"metadata":{"connectionId":2,"message":{"id":8,"method":"Runtime.enable"}}}
{"timestamp":1060,"tag":"runtime","level":3,"message":"Something failed","metadata":{"error":"boom"}}`

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	records := model.Parse(sessionLog)
	require.Len(t, records, 7)
	return NewSession(records, opts)
}

func indices(rows []*model.LogRecord) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

func TestNewSession(t *testing.T) {
	s := newSession(t, Options{})
	assert.Equal(t, 7, s.Result().Count())
	assert.Equal(t, 7, s.Result().Total)
	assert.Equal(t, []string{"cdp.receive", "cdp.send", "dap.receive", "dap.send", "runtime", "runtime.welcome"}, s.Tags())
	assert.Equal(t, s.Tags(), s.SelectedTags())
	assert.Equal(t, model.SelectableLevels, s.SelectedLevels())
	assert.True(t, s.Selection().IsEmpty())

	w, ok := s.Welcome()
	require.True(t, ok)
	assert.Equal(t, "v20.11.0", w.NodeVersion)
	assert.Equal(t, int64(1000), s.Epoch())
}

func TestNewSessionOptions(t *testing.T) {
	s := newSession(t, Options{
		HiddenTags: []string{"runtime.welcome"},
		Levels:     []model.LogLevel{model.LevelError},
	})
	assert.Equal(t, []int{6}, indices(s.Visible()))
	assert.NotContains(t, s.SelectedTags(), "runtime.welcome")
}

func TestToggleTagAndLevel(t *testing.T) {
	s := newSession(t, Options{})
	var notified []filter.Result
	s.Subscribe(func(r filter.Result) { notified = append(notified, r) })

	s.ToggleTag("cdp.send")
	assert.Equal(t, []int{0, 1, 2, 4, 6}, indices(s.Visible()))
	s.ToggleTag("cdp.send")
	assert.Equal(t, 7, s.Result().Count())

	s.ToggleLevel(model.LevelVerbose)
	assert.Equal(t, []int{0, 6}, indices(s.Visible()))

	require.Len(t, notified, 3)
	assert.Less(t, notified[0].Generation, notified[2].Generation)
}

func TestAddGrepAndRemove(t *testing.T) {
	s := newSession(t, Options{})
	g, err := s.AddGrep("/debugger\\./i", false)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, indices(s.Visible()))

	_, err = s.AddGrep("/(/", false)
	assert.Error(t, err)
	assert.Equal(t, []int{3}, indices(s.Visible()), "invalid pattern leaves the view unchanged")

	assert.True(t, s.RemoveFilter(g.ID()))
	assert.Equal(t, 7, s.Result().Count())
	assert.False(t, s.RemoveFilter(g.ID()))
	assert.False(t, s.RemoveLastFilter())
}

func TestToggleConnection(t *testing.T) {
	s := newSession(t, Options{})
	groups := s.ConnectionGroups()
	require.Len(t, groups, 3)

	cdp1 := filter.ConnectionKey{Family: model.FamilyCDP, ID: "1"}
	s.ToggleConnection(cdp1)
	assert.True(t, s.ConnectionEnabled(cdp1))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 6}, indices(s.Visible()))

	s.ToggleConnection(cdp1)
	assert.False(t, s.ConnectionEnabled(cdp1))
	assert.Equal(t, 7, s.Result().Count())
}

func TestConnectionUnion(t *testing.T) {
	cdp1 := filter.ConnectionKey{Family: model.FamilyCDP, ID: "1"}
	cdp2 := filter.ConnectionKey{Family: model.FamilyCDP, ID: "2"}

	intersect := newSession(t, Options{})
	intersect.ToggleConnection(cdp1)
	intersect.ToggleConnection(cdp2)
	assert.Equal(t, []int{0, 1, 2, 6}, indices(intersect.Visible()))

	union := newSession(t, Options{ConnectionMode: filter.ConnectionUnion})
	union.ToggleConnection(cdp1)
	union.ToggleConnection(cdp2)
	assert.Equal(t, 7, union.Result().Count())
}

func TestSelectionClearedWhenViewChanges(t *testing.T) {
	s := newSession(t, Options{})
	s.Click(1, selection.Modifiers{})
	s.Click(3, selection.Modifiers{Shift: true})
	assert.Equal(t, []int{1, 2, 3}, s.Selection().Entries())

	s.SetLevels(model.SelectableLevels)
	assert.Equal(t, []int{1, 2, 3}, s.Selection().Entries(), "same rows keep the selection")

	s.ToggleTag("runtime")
	assert.True(t, s.Selection().IsEmpty())
}

func TestClickOutOfRange(t *testing.T) {
	s := newSession(t, Options{})
	s.Click(99, selection.Modifiers{})
	s.Click(-1, selection.Modifiers{Ctrl: true})
	assert.True(t, s.Selection().IsEmpty())
}

func TestHighlightSurvivesFiltering(t *testing.T) {
	s := newSession(t, Options{})
	s.Click(3, selection.Modifiers{})
	s.Click(4, selection.Modifiers{Ctrl: true})
	s.HighlightSelected()
	assert.Equal(t, []int{3, 4}, s.Highlights().Entries())

	s.ToggleTag("runtime.welcome")
	assert.True(t, s.IsHighlighted(s.Visible()[2]), "record 3 is now at position 2")

	s.Click(2, selection.Modifiers{})
	s.HighlightSelected()
	assert.Equal(t, []int{4}, s.Highlights().Entries())
}

func TestFreezeSelection(t *testing.T) {
	s := newSession(t, Options{})
	_, ok := s.FreezeSelection()
	assert.False(t, ok)

	s.Click(1, selection.Modifiers{})
	s.Click(5, selection.Modifiers{Ctrl: true})
	f, ok := s.FreezeSelection()
	require.True(t, ok)
	assert.Equal(t, "Selected rows (2)", f.Name())
	assert.Equal(t, []int{1, 5}, indices(s.Visible()))
	assert.True(t, s.Selection().IsEmpty())
	assert.True(t, s.RemoveLastFilter())
	assert.Equal(t, 7, s.Result().Count())
}

func TestInspect(t *testing.T) {
	s := newSession(t, Options{})

	in, err := s.Inspect(2)
	require.NoError(t, err)
	require.True(t, in.HasCounterpart())
	assert.Equal(t, 1, in.Counterpart.Index)

	in, err = s.Inspect(3)
	require.NoError(t, err)
	require.True(t, in.HasCounterpart())
	assert.Equal(t, 4, in.Counterpart.Index)

	s.ToggleTag("cdp.receive")
	in, err = s.Inspect(3)
	require.NoError(t, err)
	require.True(t, in.HasCounterpart(), "counterpart is searched in the unfiltered log")
	assert.Equal(t, 4, in.Counterpart.Index)

	in, err = s.Inspect(4)
	require.NoError(t, err)
	assert.False(t, in.HasCounterpart())

	_, err = s.Inspect(100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPosition(t *testing.T) {
	s := newSession(t, Options{})
	s.ToggleTag("cdp.send")
	pos, ok := s.Position(4)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
	_, ok = s.Position(3)
	assert.False(t, ok)
}

func TestAddSpec(t *testing.T) {
	s := newSession(t, Options{})
	_, err := s.AddSpec(filter.Spec{Kind: filter.KindTags, Tags: []string{"runtime"}})
	require.NoError(t, err)
	assert.Equal(t, []int{6}, indices(s.Visible()))

	_, err = s.AddSpec(filter.Spec{Kind: "bogus"})
	assert.Error(t, err)
}

func TestStaleResultDropped(t *testing.T) {
	s := newSession(t, Options{})
	current := s.Result()
	stale := filter.Result{Generation: current.Generation - 1}
	assert.False(t, s.apply(stale))
	assert.Equal(t, current.Generation, s.Result().Generation)
}

func TestReplaceFilter(t *testing.T) {
	s := newSession(t, Options{})
	g, err := s.AddGrep("Debugger", false)
	require.NoError(t, err)
	gen := s.Result().Generation

	next, err := filter.NewGrep("Runtime", false)
	require.NoError(t, err)
	s.ReplaceFilter(g.ID(), next)
	assert.Equal(t, gen+1, s.Result().Generation, "a single recompute")
	assert.Equal(t, []int{5}, indices(s.Visible()))
	require.Len(t, s.Pipeline().Filters, 1)

	other, err := filter.NewGrep("cdp", false)
	require.NoError(t, err)
	s.ReplaceFilter("missing", other)
	assert.Len(t, s.Pipeline().Filters, 2)
}

func TestSetTimeRange(t *testing.T) {
	s := newSession(t, Options{})
	s.SetTimeRange(time.UnixMilli(1020), time.UnixMilli(1040))
	assert.Equal(t, []int{2, 3, 4}, indices(s.Visible()))

	from, to, ok := s.TimeRange()
	require.True(t, ok)
	assert.Equal(t, int64(1020), from.UnixMilli())
	assert.Equal(t, int64(1040), to.UnixMilli())

	s.SetTimeRange(time.UnixMilli(1050), time.Time{})
	assert.Equal(t, []int{5, 6}, indices(s.Visible()))
	assert.Len(t, s.Pipeline().Filters, 1, "the previous range is replaced")

	s.SetTimeRange(time.Time{}, time.Time{})
	_, _, ok = s.TimeRange()
	assert.False(t, ok)
	assert.Equal(t, 7, s.Result().Count())
}

func TestClearFilters(t *testing.T) {
	s := newSession(t, Options{})
	_, err := s.AddGrep("cdp", true)
	require.NoError(t, err)
	s.ToggleConnection(filter.ConnectionKey{Family: model.FamilyDAP, ID: "0"})
	s.ClearFilters()
	assert.Empty(t, s.Pipeline().Filters)
	assert.Empty(t, s.Pipeline().Connections)
	assert.Equal(t, 7, s.Result().Count())
}

func TestNearestPosition(t *testing.T) {
	s := newSession(t, Options{})
	s.ToggleTag("cdp.send")
	assert.Equal(t, 3, s.NearestPosition(3), "record 3 is hidden, record 4 follows it")
	assert.Equal(t, 4, s.NearestPosition(100))
	assert.Equal(t, 0, s.NearestPosition(-1))

	s.SetTags(nil)
	assert.Equal(t, 0, s.NearestPosition(2))
}

func TestCounts(t *testing.T) {
	s := newSession(t, Options{})
	assert.Equal(t, 2, s.TagCounts()["cdp.send"])
	assert.Equal(t, 5, s.LevelCounts()[model.LevelVerbose])
	assert.Equal(t, 1, s.LevelCounts()[model.LevelError])
}
