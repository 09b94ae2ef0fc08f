package filter

import (
	"time"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// Spec is the serializable form of a filter, used for presets in the config
// file and for command line flags.
type Spec struct {
	Kind       Kind     `yaml:"kind"`
	Tags       []string `yaml:"tags,omitempty"`
	Levels     []string `yaml:"levels,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	Invert     bool     `yaml:"invert,omitempty"`
	Family     string   `yaml:"family,omitempty"`
	Connection string   `yaml:"connection,omitempty"`
	Rows       []int    `yaml:"rows,omitempty"`
	From       string   `yaml:"from,omitempty"`
	To         string   `yaml:"to,omitempty"`
}

// FromSpec builds the filter described by s.
func FromSpec(s Spec) (Filter, error) {
	switch s.Kind {
	case KindTags:
		return NewTagSet(s.Tags...), nil
	case KindLevels:
		levels := make([]model.LogLevel, 0, len(s.Levels))
		for _, w := range s.Levels {
			l, ok := model.ParseLevelName(w)
			if !ok {
				return nil, errors.Errorf("unknown log level %q", w)
			}
			levels = append(levels, l)
		}
		return NewLevelSet(levels...), nil
	case KindGrep:
		g, err := NewGrep(s.Pattern, s.Invert)
		if err != nil {
			return nil, err
		}
		return g, nil
	case KindConnection:
		family, ok := model.ParseFamily(s.Family)
		if !ok {
			return nil, errors.Errorf("unknown protocol family %q", s.Family)
		}
		if s.Connection == "" {
			return nil, errors.New("connection filter needs a connection id")
		}
		return NewConnection(ConnectionKey{Family: family, ID: s.Connection}), nil
	case KindSelection:
		return NewFrozenSelection(s.Rows...), nil
	case KindTime:
		from, err := parseBound(s.From)
		if err != nil {
			return nil, errors.Wrap(err, "invalid time range start")
		}
		to, err := parseBound(s.To)
		if err != nil {
			return nil, errors.Wrap(err, "invalid time range end")
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			return nil, errors.Errorf("time range ends before it starts: %s > %s", s.From, s.To)
		}
		return NewTimeRange(from, to), nil
	}
	return nil, errors.Errorf("unknown filter kind %q", s.Kind)
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}
