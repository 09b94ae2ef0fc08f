package filter

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Slach/debug-log-viewer/pkg/model"
)

// ConnectionKey identifies one protocol connection of the debug session.
type ConnectionKey struct {
	Family model.Family
	ID     string
}

func (k ConnectionKey) String() string {
	return fmt.Sprintf("%s connection %s", k.Family.Label(), k.ID)
}

// ConnectionGroup is a connection with the number of records logged on it.
type ConnectionGroup struct {
	Key   ConnectionKey
	Count int
}

// ConnectionGroups lists every (family, connectionId) pair found in records,
// sorted by family and then id.
func ConnectionGroups(records []model.LogRecord) []ConnectionGroup {
	counts := make(map[ConnectionKey]int)
	for i := range records {
		rec := &records[i]
		family := rec.Family()
		if family == model.FamilyNone {
			continue
		}
		id, ok := rec.ConnectionID()
		if !ok {
			continue
		}
		counts[ConnectionKey{Family: family, ID: id}]++
	}

	groups := make([]ConnectionGroup, 0, len(counts))
	for k, c := range counts {
		groups = append(groups, ConnectionGroup{Key: k, Count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.Family != b.Family {
			return a.Family < b.Family
		}
		return lessID(a.ID, b.ID)
	})
	return groups
}

// lessID orders numeric ids numerically and everything else lexically.
func lessID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// Connection restricts records of one protocol family to a single
// connection. Records of other families are not affected.
type Connection struct {
	base
	key ConnectionKey
}

func NewConnection(key ConnectionKey) *Connection {
	return &Connection{base: newBase(), key: key}
}

func (c *Connection) Kind() Kind { return KindConnection }

func (c *Connection) Key() ConnectionKey { return c.key }

// Applies reports whether the filter restricts rec at all.
func (c *Connection) Applies(rec *model.LogRecord) bool {
	return rec.Family() == c.key.Family
}

func (c *Connection) Test(rec *model.LogRecord, _ int) bool {
	if !c.Applies(rec) {
		return true
	}
	id, ok := rec.ConnectionID()
	return ok && id == c.key.ID
}

func (c *Connection) Name() string { return c.key.String() }

func (c *Connection) Spec() Spec {
	return Spec{Kind: KindConnection, Family: string(c.key.Family), Connection: c.key.ID}
}
