package filter

import (
	"time"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/pkg/errors"
)

// ConnectionMode decides how several connection filters combine.
type ConnectionMode string

const (
	// ConnectionIntersect ANDs connection filters like every other filter,
	// so checking two connections of one family shows neither.
	ConnectionIntersect ConnectionMode = "intersect"
	// ConnectionUnion ORs the connection filters of the same family.
	ConnectionUnion ConnectionMode = "union"
)

// ParseConnectionMode accepts "intersect", "union" or "" (intersect).
func ParseConnectionMode(s string) (ConnectionMode, error) {
	switch ConnectionMode(s) {
	case "", ConnectionIntersect:
		return ConnectionIntersect, nil
	case ConnectionUnion:
		return ConnectionUnion, nil
	}
	return "", errors.Errorf("unknown connection mode %q", s)
}

// Pipeline is the complete filter state of the view. A record is visible
// when its tag and level are selected and every filter and connection
// filter passes it.
type Pipeline struct {
	Tags        *TagSet
	Levels      *LevelSet
	Filters     []Filter
	Connections []*Connection
	Mode        ConnectionMode
}

// Result is the outcome of one full pass over the records.
type Result struct {
	Rows    []*model.LogRecord
	Total   int
	Elapsed time.Duration
	// Generation orders results; the viewer drops any result older than the
	// one it last applied.
	Generation uint64
}

// Count is the number of surviving rows.
func (r Result) Count() int { return len(r.Rows) }

// Test evaluates the pipeline for a single record.
func (p Pipeline) Test(rec *model.LogRecord, position int) bool {
	if !p.Tags.Has(rec.Tag) || !p.Levels.Has(rec.Level) {
		return false
	}
	for _, f := range p.Filters {
		if !f.Test(rec, position) {
			return false
		}
	}
	return p.testConnections(rec, position)
}

func (p Pipeline) testConnections(rec *model.LogRecord, position int) bool {
	if p.Mode != ConnectionUnion {
		for _, c := range p.Connections {
			if !c.Test(rec, position) {
				return false
			}
		}
		return true
	}

	applicable := false
	for _, c := range p.Connections {
		if !c.Applies(rec) {
			continue
		}
		applicable = true
		if c.Test(rec, position) {
			return true
		}
	}
	return !applicable
}

// Run filters records in a single pass, preserving their order.
func (p Pipeline) Run(records []model.LogRecord) Result {
	start := time.Now()
	rows := make([]*model.LogRecord, 0, len(records))
	for i := range records {
		if p.Test(&records[i], i) {
			rows = append(rows, &records[i])
		}
	}
	return Result{Rows: rows, Total: len(records), Elapsed: time.Since(start)}
}

// Active returns every filter of the pipeline in display order: tags,
// levels, custom filters, then connections.
func (p Pipeline) Active() []Filter {
	out := make([]Filter, 0, 2+len(p.Filters)+len(p.Connections))
	if p.Tags != nil {
		out = append(out, p.Tags)
	}
	if p.Levels != nil {
		out = append(out, p.Levels)
	}
	out = append(out, p.Filters...)
	for _, c := range p.Connections {
		out = append(out, c)
	}
	return out
}

// Names returns the display names of Active.
func (p Pipeline) Names() []string {
	active := p.Active()
	names := make([]string, len(active))
	for i, f := range active {
		names[i] = f.Name()
	}
	return names
}
