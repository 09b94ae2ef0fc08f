package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGrepDebounce   = 250 * time.Millisecond
	DefaultReadRetries    = 3
	DefaultRetryDelay     = 200 * time.Millisecond
	DefaultInspectorStyle = "monokai"
	DefaultPageSize       = 0 // follow the terminal height
)

type Config struct {
	GrepDebounce   time.Duration `yaml:"grep_debounce"`
	SummaryLength  int           `yaml:"summary_length"`
	ConnectionMode string        `yaml:"connection_mode"` // intersect or union
	ReadRetries    int           `yaml:"read_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	// Levels are the level words selected at startup, all when empty.
	Levels     []string      `yaml:"levels"`
	HiddenTags []string      `yaml:"hidden_tags"`
	Filters    []filter.Spec `yaml:"filters"`
	UI         UI            `yaml:"ui"`
}

type UI struct {
	UsingMouse     bool   `yaml:"using_mouse"`
	InspectorStyle string `yaml:"inspector_style"` // chroma style name
	// PageSize is the pgup/pgdown step, 0 follows the terminal height.
	PageSize int `yaml:"page_size"`
	// AbsoluteTime starts the time column in ISO format instead of the
	// offset from the session start.
	AbsoluteTime bool `yaml:"absolute_time"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		GrepDebounce:   DefaultGrepDebounce,
		SummaryLength:  model.DefaultSummaryLength,
		ConnectionMode: string(filter.ConnectionIntersect),
		ReadRetries:    DefaultReadRetries,
		RetryDelay:     DefaultRetryDelay,
		UI: UI{
			UsingMouse:     true,
			InspectorStyle: DefaultInspectorStyle,
			PageSize:       DefaultPageSize,
		},
	}
}

// DefaultPath is ~/.debug-log-viewer/debug-log-viewer.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, ".debug-log-viewer", "debug-log-viewer.yml"), nil
}

// Load reads the config at path over the defaults. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "can't read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "can't parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks values that can't be expressed by the yaml types.
func (c *Config) Validate() error {
	if _, err := filter.ParseConnectionMode(c.ConnectionMode); err != nil {
		return err
	}
	if _, err := c.LevelValues(); err != nil {
		return err
	}
	if c.GrepDebounce < 0 {
		return errors.Errorf("grep_debounce must not be negative, got %s", c.GrepDebounce)
	}
	if c.SummaryLength <= 0 {
		return errors.Errorf("summary_length must be positive, got %d", c.SummaryLength)
	}
	if c.UI.PageSize < 0 {
		return errors.Errorf("ui.page_size must not be negative, got %d", c.UI.PageSize)
	}
	if c.ReadRetries < 0 {
		return errors.Errorf("read_retries must not be negative, got %d", c.ReadRetries)
	}
	for i, s := range c.Filters {
		if _, err := filter.FromSpec(s); err != nil {
			return errors.Wrapf(err, "filters[%d]", i)
		}
	}
	return nil
}

// LevelValues converts Levels to log levels. nil means every level.
func (c *Config) LevelValues() ([]model.LogLevel, error) {
	if len(c.Levels) == 0 {
		return nil, nil
	}
	out := make([]model.LogLevel, 0, len(c.Levels))
	for _, w := range c.Levels {
		l, ok := model.ParseLevelWord(w)
		if !ok {
			return nil, errors.Errorf("unknown log level %q", w)
		}
		out = append(out, l)
	}
	return out, nil
}

// Mode returns the validated connection mode.
func (c *Config) Mode() filter.ConnectionMode {
	mode, err := filter.ParseConnectionMode(c.ConnectionMode)
	if err != nil {
		return filter.ConnectionIntersect
	}
	return mode
}
