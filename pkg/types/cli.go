package types

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

type CLI struct {
	FromTime       string
	ToTime         string
	ConfigPath     string
	LogPath        string
	LogLevel       string
	Pprof          bool
	PprofPath      string
	DisableMouse   bool
	NoColor        bool
	JSON           bool
	ConnectionMode string
	FilterParams   FilterParams
}

// FilterParams are the filters given on the command line. They are applied
// after the ones from the config file.
type FilterParams struct {
	Tags        []string
	Levels      []string
	Grep        string
	Invert      bool
	Connections []string // family:id, e.g. cdp:1
}

func (c *CLI) ParseFromTime() (time.Time, error) {
	return parseOptional(c.FromTime)
}

func (c *CLI) ParseToTime() (time.Time, error) {
	return parseOptional(c.ToTime)
}

// HasTimeRange reports whether --from or --to was given.
func (c *CLI) HasTimeRange() bool {
	return c.FromTime != "" || c.ToTime != ""
}

func parseOptional(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "can't parse time %q", s)
	}
	return t, nil
}
