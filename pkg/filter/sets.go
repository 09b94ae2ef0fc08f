package filter

import (
	"sort"
	"strings"

	"github.com/Slach/debug-log-viewer/pkg/model"
)

// TagSet passes records whose tag is in the set.
type TagSet struct {
	base
	tags map[string]struct{}
}

func NewTagSet(tags ...string) *TagSet {
	s := &TagSet{base: newBase(), tags: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		s.tags[t] = struct{}{}
	}
	return s
}

func (s *TagSet) Kind() Kind { return KindTags }

func (s *TagSet) Has(tag string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tags[tag]
	return ok
}

func (s *TagSet) Test(rec *model.LogRecord, _ int) bool { return s.Has(rec.Tag) }

// Tags returns the selected tags sorted alphabetically.
func (s *TagSet) Tags() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.tags))
	for t := range s.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// With returns a copy of the set with tag added or removed.
func (s *TagSet) With(tag string, on bool) *TagSet {
	tags := s.Tags()
	next := NewTagSet(tags...)
	if on {
		next.tags[tag] = struct{}{}
	} else {
		delete(next.tags, tag)
	}
	return next
}

func (s *TagSet) Name() string {
	tags := s.Tags()
	if len(tags) == 0 {
		return "Tags: (none)"
	}
	return "Tags: " + strings.Join(tags, ", ")
}

func (s *TagSet) Spec() Spec {
	return Spec{Kind: KindTags, Tags: s.Tags()}
}

// LevelSet passes records whose level is in the set.
type LevelSet struct {
	base
	levels map[model.LogLevel]struct{}
}

func NewLevelSet(levels ...model.LogLevel) *LevelSet {
	s := &LevelSet{base: newBase(), levels: make(map[model.LogLevel]struct{}, len(levels))}
	for _, l := range levels {
		s.levels[l] = struct{}{}
	}
	return s
}

func (s *LevelSet) Kind() Kind { return KindLevels }

func (s *LevelSet) Has(level model.LogLevel) bool {
	if s == nil {
		return false
	}
	_, ok := s.levels[level]
	return ok
}

func (s *LevelSet) Test(rec *model.LogRecord, _ int) bool { return s.Has(rec.Level) }

// Levels returns the selected levels in ascending severity.
func (s *LevelSet) Levels() []model.LogLevel {
	if s == nil {
		return nil
	}
	out := make([]model.LogLevel, 0, len(s.levels))
	for l := range s.levels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// With returns a copy of the set with level added or removed.
func (s *LevelSet) With(level model.LogLevel, on bool) *LevelSet {
	next := NewLevelSet(s.Levels()...)
	if on {
		next.levels[level] = struct{}{}
	} else {
		delete(next.levels, level)
	}
	return next
}

func (s *LevelSet) words() []string {
	levels := s.Levels()
	words := make([]string, len(levels))
	for i, l := range levels {
		words[i] = l.String()
	}
	return words
}

func (s *LevelSet) Name() string {
	words := s.words()
	if len(words) == 0 {
		return "Levels: (none)"
	}
	return "Levels: " + strings.Join(words, ", ")
}

func (s *LevelSet) Spec() Spec {
	return Spec{Kind: KindLevels, Levels: s.words()}
}
