package filter

import (
	"time"

	"github.com/Slach/debug-log-viewer/pkg/model"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// TimeRange passes records whose timestamp lies in [From, To]. A zero bound
// is open.
type TimeRange struct {
	base
	From time.Time
	To   time.Time
}

func NewTimeRange(from, to time.Time) *TimeRange {
	return &TimeRange{base: newBase(), From: from, To: to}
}

func (r *TimeRange) Kind() Kind { return KindTime }

func (r *TimeRange) Test(rec *model.LogRecord, _ int) bool {
	if !r.From.IsZero() && rec.Timestamp < r.From.UnixMilli() {
		return false
	}
	if !r.To.IsZero() && rec.Timestamp > r.To.UnixMilli() {
		return false
	}
	return true
}

func bound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.UTC().Format(timeLayout)
}

func (r *TimeRange) Name() string {
	return "Time: " + bound(r.From) + " .. " + bound(r.To)
}

func (r *TimeRange) Spec() Spec {
	s := Spec{Kind: KindTime}
	if !r.From.IsZero() {
		s.From = r.From.UTC().Format(timeLayout)
	}
	if !r.To.IsZero() {
		s.To = r.To.UTC().Format(timeLayout)
	}
	return s
}
