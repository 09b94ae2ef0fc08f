package model

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// ErrNotObject is returned by ParseLine for valid JSON that is not an object.
var ErrNotObject = errors.New("log line is not a JSON object")

// LogRecord is one parsed line of a debug adapter log.
// Records are created once when the file is loaded and never modified.
type LogRecord struct {
	// Index is the position of the record among the successfully parsed lines.
	Index      int
	Timestamp  int64
	Tag        string
	Level      LogLevel
	Message    string
	HasMessage bool
	// Metadata is nil when the line has no metadata field.
	Metadata *fastjson.Value
	Raw      string
}

// Parse splits text into lines and parses each one independently. Lines that
// are not JSON objects are dropped, which is expected for a truncated
// trailing line. Indices are assigned densely to the surviving records.
func Parse(text string) []LogRecord {
	records, _ := ParseCounting(text)
	return records
}

// ParseCounting is Parse that also reports how many non-blank lines were
// dropped because they weren't JSON objects.
func ParseCounting(text string) ([]LogRecord, int) {
	lines := strings.Split(text, "\n")
	records := make([]LogRecord, 0, len(lines))
	dropped := 0
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line, len(records))
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

// ParseLine parses a single log line and assigns it the given index.
func ParseLine(line string, index int) (LogRecord, error) {
	v, err := fastjson.Parse(line)
	if err != nil {
		return LogRecord{}, errors.Wrap(err, "can't parse log line")
	}
	if v.Type() != fastjson.TypeObject {
		return LogRecord{}, ErrNotObject
	}

	rec := LogRecord{
		Index:     index,
		Raw:       line,
		Timestamp: numberField(v, "timestamp"),
		Level:     LogLevel(numberField(v, "level")),
	}
	if tag := v.Get("tag"); tag != nil && tag.Type() == fastjson.TypeString {
		rec.Tag = string(tag.GetStringBytes())
	}
	if msg := v.Get("message"); msg != nil && msg.Type() == fastjson.TypeString {
		rec.Message = string(msg.GetStringBytes())
		rec.HasMessage = true
	}
	if md := v.Get("metadata"); md != nil && md.Type() != fastjson.TypeNull {
		rec.Metadata = md
	}
	return rec, nil
}

func numberField(v *fastjson.Value, key string) int64 {
	f := v.Get(key)
	if f == nil || f.Type() != fastjson.TypeNumber {
		return 0
	}
	n, err := f.Float64()
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int64(n)
}

// Field returns the metadata value at the given path, or nil.
func (r *LogRecord) Field(path ...string) *fastjson.Value {
	if r == nil || r.Metadata == nil {
		return nil
	}
	return r.Metadata.Get(path...)
}

// MetadataString returns the metadata value at path when it is a string.
func (r *LogRecord) MetadataString(path ...string) (string, bool) {
	v := r.Field(path...)
	if v == nil || v.Type() != fastjson.TypeString {
		return "", false
	}
	return string(v.GetStringBytes()), true
}

// Tags returns the distinct tags of records in first-seen order.
func Tags(records []LogRecord) []string {
	seen := make(map[string]struct{})
	var tags []string
	for i := range records {
		if _, ok := seen[records[i].Tag]; ok {
			continue
		}
		seen[records[i].Tag] = struct{}{}
		tags = append(tags, records[i].Tag)
	}
	return tags
}
