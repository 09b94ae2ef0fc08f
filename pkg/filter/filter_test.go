package filter

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/selection"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(raw string) *model.LogRecord {
	return &model.LogRecord{Raw: raw}
}

func TestGrep(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		invert bool
		raw    string
		want   bool
		regex  bool
	}{
		{name: "regex ignore case", input: "/error/i", raw: "Error: timeout", want: true, regex: true},
		{name: "regex ignore case inverted", input: "/error/i", invert: true, raw: "Error: timeout", want: false, regex: true},
		{name: "regex case sensitive", input: "/error/", raw: "Error: timeout", want: false, regex: true},
		{name: "substring", input: "timeout", raw: "Error: timeout", want: true},
		{name: "substring is case sensitive", input: "TIMEOUT", raw: "Error: timeout", want: false},
		{name: "substring inverted", input: "timeout", invert: true, raw: "all good", want: true},
		{name: "path literal", input: "/path/to/", raw: "open /path/to/file", want: true, regex: true},
		{name: "no regex without leading slash", input: "path/to/", raw: "open /path/to/file", want: true},
		{name: "global flag ignored", input: "/a+b/g", raw: "xaaab", want: true, regex: true},
		{name: "dotall flag", input: "/a.b/s", raw: "a\nb", want: true, regex: true},
		{name: "anchors", input: `/^\{"tag":"cdp/`, raw: `{"tag":"cdp.send"}`, want: true, regex: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrep(tt.input, tt.invert)
			require.NoError(t, err)
			assert.Equal(t, tt.regex, g.IsRegex())
			assert.Equal(t, tt.want, g.Test(rawRecord(tt.raw), 0))
		})
	}
}

func TestGrepErrors(t *testing.T) {
	_, err := NewGrep("", false)
	assert.True(t, errors.Is(err, ErrEmptyPattern))

	_, err = NewGrep("/(unclosed/", false)
	assert.Error(t, err)

	_, err = NewGrep("/path/to", false)
	assert.Error(t, err, "a trailing word after the last slash is read as flags")

	_, err = NewGrep("/abc/x", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported flag")
}

func TestGrepName(t *testing.T) {
	g, err := NewGrep("/error/i", true)
	require.NoError(t, err)
	assert.Equal(t, "Grep (inverted) regex: /error/i", g.Name())

	g, err = NewGrep("timeout", false)
	require.NoError(t, err)
	assert.Equal(t, `Grep: "timeout"`, g.Name())
}

func TestConnection(t *testing.T) {
	records := model.Parse(`{"tag":"cdp.send","metadata":{"connectionId":1}}
{"tag":"cdp.send","metadata":{"connectionId":2}}
{"tag":"dap.send","metadata":{"connectionId":1}}
{"tag":"runtime"}
{"tag":"cdp.receive"}`)
	require.Len(t, records, 5)

	cdp1 := NewConnection(ConnectionKey{Family: model.FamilyCDP, ID: "1"})
	want := []bool{true, false, true, true, false}
	for i := range records {
		assert.Equal(t, want[i], cdp1.Test(&records[i], i), "record %d", i)
	}
	assert.Equal(t, "CDP connection 1", cdp1.Name())
}

func TestConnectionGroups(t *testing.T) {
	records := model.Parse(`{"tag":"cdp.send","metadata":{"connectionId":10}}
{"tag":"cdp.receive","metadata":{"connectionId":2}}
{"tag":"cdp.send","metadata":{"connectionId":2}}
{"tag":"dap.send","metadata":{"connectionId":1}}
{"tag":"runtime","metadata":{"connectionId":1}}`)

	groups := ConnectionGroups(records)
	require.Len(t, groups, 3)
	assert.Equal(t, ConnectionGroup{Key: ConnectionKey{Family: model.FamilyCDP, ID: "2"}, Count: 2}, groups[0])
	assert.Equal(t, ConnectionKey{Family: model.FamilyCDP, ID: "10"}, groups[1].Key)
	assert.Equal(t, ConnectionKey{Family: model.FamilyDAP, ID: "1"}, groups[2].Key)
}

func TestFreezeSelection(t *testing.T) {
	records := model.Parse(strings.Repeat(`{"tag":"runtime"}`+"\n", 6))
	visible := []*model.LogRecord{&records[1], &records[3], &records[5]}

	sel := selection.New(0, 2, 7)
	frozen := FreezeSelection(sel, visible)
	assert.Equal(t, []int{1, 5}, frozen.Indices(), "positions map to record indices, out of range ignored")
	assert.Equal(t, "Selected rows (2)", frozen.Name())

	assert.True(t, frozen.Test(&records[5], 0))
	assert.False(t, frozen.Test(&records[3], 1))
}

func TestTimeRange(t *testing.T) {
	from := time.UnixMilli(1000)
	to := time.UnixMilli(2000)
	r := NewTimeRange(from, to)
	assert.False(t, r.Test(&model.LogRecord{Timestamp: 999}, 0))
	assert.True(t, r.Test(&model.LogRecord{Timestamp: 1000}, 0))
	assert.True(t, r.Test(&model.LogRecord{Timestamp: 2000}, 0))
	assert.False(t, r.Test(&model.LogRecord{Timestamp: 2001}, 0))

	open := NewTimeRange(time.Time{}, to)
	assert.True(t, open.Test(&model.LogRecord{Timestamp: -5}, 0))
}

func TestSpecRoundTrip(t *testing.T) {
	specs := []Spec{
		{Kind: KindTags, Tags: []string{"cdp.send", "dap.send"}},
		{Kind: KindLevels, Levels: []string{"WARN", "ERROR"}},
		{Kind: KindGrep, Pattern: "/err/i", Invert: true},
		{Kind: KindConnection, Family: "dap", Connection: "3"},
		{Kind: KindSelection, Rows: []int{1, 4}},
		{Kind: KindTime, From: "2024-01-02T03:04:05.000Z", To: "2024-01-02T04:04:05.000Z"},
	}
	for _, s := range specs {
		t.Run(string(s.Kind), func(t *testing.T) {
			f, err := FromSpec(s)
			require.NoError(t, err)
			assert.Equal(t, s.Kind, f.Kind())
			assert.Equal(t, s, f.Spec())
		})
	}
}

func TestLevelSetSpecKeepsNever(t *testing.T) {
	levels := NewLevelSet(model.LevelWarn, model.LevelNever)
	f, err := FromSpec(levels.Spec())
	require.NoError(t, err)

	rebuilt, ok := f.(*LevelSet)
	require.True(t, ok)
	assert.True(t, rebuilt.Has(model.LevelNever))
	assert.True(t, rebuilt.Has(model.LevelWarn))
	assert.False(t, rebuilt.Has(model.LevelError))
	assert.Equal(t, levels.Spec(), rebuilt.Spec())
}

func TestFromSpecErrors(t *testing.T) {
	bad := []Spec{
		{Kind: "nope"},
		{Kind: KindLevels, Levels: []string{"LOUD"}},
		{Kind: KindConnection, Family: "http", Connection: "1"},
		{Kind: KindConnection, Family: "cdp"},
		{Kind: KindGrep, Pattern: "/[/"},
		{Kind: KindTime, From: "not a date at all"},
		{Kind: KindTime, From: "2024-01-02", To: "2024-01-01"},
	}
	for _, s := range bad {
		t.Run(fmt.Sprintf("%s %v", s.Kind, s), func(t *testing.T) {
			_, err := FromSpec(s)
			assert.Error(t, err)
		})
	}
}

func TestFilterIDsAreUnique(t *testing.T) {
	a, _ := NewGrep("x", false)
	b, _ := NewGrep("x", false)
	assert.NotEqual(t, a.ID(), b.ID())
}
