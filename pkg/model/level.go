package model

import (
	"fmt"
	"strings"
)

// LogLevel is the severity ordinal written by the debug adapter.
type LogLevel int

const (
	LevelVerbose LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelNever
)

var levelWords = map[LogLevel]string{
	LevelVerbose: "VERB",
	LevelInfo:    "INFO",
	LevelWarn:    "WARN",
	LevelError:   "ERROR",
	LevelFatal:   "FATAL",
	LevelNever:   "NEVER",
}

// SelectableLevels are the levels offered by the level filter. Never is a
// sentinel used by the adapter to disable logging and is not selectable.
var SelectableLevels = []LogLevel{LevelVerbose, LevelInfo, LevelWarn, LevelError, LevelFatal}

func (l LogLevel) String() string {
	if w, ok := levelWords[l]; ok {
		return w
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevelWord converts a level word (VERB, INFO, ...) to a LogLevel.
func ParseLevelWord(word string) (LogLevel, bool) {
	word = strings.ToUpper(strings.TrimSpace(word))
	for _, l := range SelectableLevels {
		if levelWords[l] == word {
			return l, true
		}
	}
	// accept the long spelling too
	if word == "VERBOSE" {
		return LevelVerbose, true
	}
	return 0, false
}

// ParseLevelName is ParseLevelWord that also accepts NEVER, so every word
// String produces parses back.
func ParseLevelName(word string) (LogLevel, bool) {
	if strings.EqualFold(strings.TrimSpace(word), levelWords[LevelNever]) {
		return LevelNever, true
	}
	return ParseLevelWord(word)
}
