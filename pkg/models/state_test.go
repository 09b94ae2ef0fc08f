package models

import (
	"testing"

	"github.com/Slach/debug-log-viewer/pkg/config"
	"github.com/Slach/debug-log-viewer/pkg/logfile"
	"github.com/stretchr/testify/assert"
)

func TestNewAppState(t *testing.T) {
	s := NewAppState(nil, "dev")
	assert.Equal(t, config.Default(), s.Config)
	assert.NotNil(t, s.CLI)
	assert.False(t, s.IsLoaded())
	assert.Empty(t, s.SourceInfo())
}

func TestSourceInfo(t *testing.T) {
	s := NewAppState(config.Default(), "dev")
	s.Intake = &logfile.Intake{Path: "adapter.json.gz", Bytes: 2048, Compression: logfile.CompressionGzip, Partial: true}
	assert.Equal(t, "adapter.json.gz (2.0 KiB, gzip, truncated)", s.SourceInfo())

	s.Intake = &logfile.Intake{Path: "adapter.json", Bytes: 10, Compression: logfile.CompressionNone}
	assert.Equal(t, "adapter.json (10 B)", s.SourceInfo())
}
