package cli

import (
	"context"
	"strings"

	"github.com/Slach/debug-log-viewer/pkg/config"
	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/logfile"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/models"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/Slach/debug-log-viewer/pkg/viewer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LoadConfig reads --config, or the default config file.
func LoadConfig(cli *types.CLI) (*config.Config, error) {
	path := cli.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cli.ConnectionMode != "" {
		if _, err := filter.ParseConnectionMode(cli.ConnectionMode); err != nil {
			return nil, errors.Wrap(err, "--connection-mode")
		}
		cfg.ConnectionMode = cli.ConnectionMode
	}
	return cfg, nil
}

// LoadState reads the log at path and builds its session with the filters
// of the config file followed by the ones from the command line.
func LoadState(ctx context.Context, cli *types.CLI, version, path string) (*models.AppState, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := LoadConfig(cli)
	if err != nil {
		return nil, err
	}
	state := models.NewAppState(cfg, version)
	state.CLI = cli

	intake, err := logfile.Read(ctx, path, logfile.Options{Retries: cfg.ReadRetries, RetryDelay: cfg.RetryDelay})
	if err != nil {
		return nil, err
	}
	state.Intake = intake

	records, dropped := model.ParseCounting(intake.Text)
	state.Dropped = dropped
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Str("path", path).Msg("skipped lines that are not JSON objects")
	}

	levels, err := cfg.LevelValues()
	if err != nil {
		return nil, err
	}
	state.Session = viewer.NewSession(records, viewer.Options{
		ConnectionMode: cfg.Mode(),
		HiddenTags:     cfg.HiddenTags,
		Levels:         levels,
	})

	for i, spec := range cfg.Filters {
		if _, err := state.Session.AddSpec(spec); err != nil {
			return nil, errors.Wrapf(err, "config filters[%d]", i)
		}
	}
	if err := applyFilterParams(state.Session, cli); err != nil {
		return nil, err
	}
	return state, nil
}

func applyFilterParams(s *viewer.Session, cli *types.CLI) error {
	p := cli.FilterParams
	if len(p.Tags) > 0 {
		s.SetTags(p.Tags)
	}
	if len(p.Levels) > 0 {
		if _, err := s.AddSpec(filter.Spec{Kind: filter.KindLevels, Levels: p.Levels}); err != nil {
			return errors.Wrap(err, "--level")
		}
	}
	if p.Grep != "" {
		if _, err := s.AddGrep(p.Grep, p.Invert); err != nil {
			return errors.Wrap(err, "--grep")
		}
	}
	for _, c := range p.Connections {
		family, id, ok := strings.Cut(c, ":")
		if !ok {
			return errors.Errorf("--connection %q: expected family:id, e.g. cdp:1", c)
		}
		if _, err := s.AddSpec(filter.Spec{Kind: filter.KindConnection, Family: family, Connection: id}); err != nil {
			return errors.Wrapf(err, "--connection %q", c)
		}
	}
	if cli.HasTimeRange() {
		from, err := cli.ParseFromTime()
		if err != nil {
			return errors.Wrap(err, "--from")
		}
		to, err := cli.ParseToTime()
		if err != nil {
			return errors.Wrap(err, "--to")
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			return errors.New("--to is before --from")
		}
		s.SetTimeRange(from, to)
	}
	return nil
}
