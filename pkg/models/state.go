package models

import (
	"fmt"

	"github.com/Slach/debug-log-viewer/pkg/config"
	"github.com/Slach/debug-log-viewer/pkg/logfile"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/Slach/debug-log-viewer/pkg/viewer"
)

// AppState holds what the commands share: configuration, the opened log and
// its session. The terminal UI keeps its own presentation state.
type AppState struct {
	Config  *config.Config
	Version string
	CLI     *types.CLI

	Intake  *logfile.Intake
	Session *viewer.Session
	// Dropped counts lines that were not JSON objects.
	Dropped int
}

// NewAppState creates a state with the given config and an empty CLI.
func NewAppState(cfg *config.Config, version string) *AppState {
	if cfg == nil {
		cfg = config.Default()
	}
	return &AppState{
		Config:  cfg,
		Version: version,
		CLI:     &types.CLI{},
	}
}

// IsLoaded reports whether a log has been opened.
func (s *AppState) IsLoaded() bool {
	return s.Session != nil
}

// SourceInfo describes the opened file for the status line.
func (s *AppState) SourceInfo() string {
	if s.Intake == nil {
		return ""
	}
	info := fmt.Sprintf("%s (%s", s.Intake.Path, utils.FormatBytes(s.Intake.Bytes))
	if s.Intake.Compression != logfile.CompressionNone {
		info += ", " + string(s.Intake.Compression)
	}
	if s.Intake.Partial {
		info += ", truncated"
	}
	return info + ")"
}
