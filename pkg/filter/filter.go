// Package filter implements the row predicates of the log view and the
// pipeline that combines them.
package filter

import (
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/google/uuid"
)

// Kind identifies one of the closed set of filter variants.
type Kind string

const (
	KindTags       Kind = "tags"
	KindLevels     Kind = "levels"
	KindGrep       Kind = "grep"
	KindConnection Kind = "connection"
	KindSelection  Kind = "selection"
	KindTime       Kind = "time"
)

// Filter is a named row predicate. Filters are immutable; the active list is
// combined with AND, so their order only matters for display.
type Filter interface {
	ID() string
	Kind() Kind
	// Name is the human readable label shown in the active filter list.
	Name() string
	// Test reports whether rec passes. position is the record's index in the
	// full unfiltered list, not its position among the rows that survive;
	// Pipeline.Run passes the same value as rec.Index.
	Test(rec *model.LogRecord, position int) bool
	// Spec returns a serializable description that FromSpec turns back into
	// an equivalent filter.
	Spec() Spec
}

type base struct {
	id string
}

func newBase() base {
	return base{id: uuid.NewString()}
}

func (b base) ID() string { return b.id }
