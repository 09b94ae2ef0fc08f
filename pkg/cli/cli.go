package cli

import (
	"os"

	"github.com/Slach/debug-log-viewer/pkg/logfile"
	"github.com/Slach/debug-log-viewer/pkg/logging"
	"github.com/Slach/debug-log-viewer/pkg/pprof"
	"github.com/Slach/debug-log-viewer/pkg/tui"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func NewRootCommand(cli *types.CLI, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "debug-log-viewer [file]",
		Short:         "debug-log-viewer - interactive viewer for JavaScript debug adapter logs",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetLevel(cli.LogLevel); err != nil {
				return err
			}
			if cli.Pprof {
				if err := pprof.Setup(cli.PprofPath); err != nil {
					return errors.Wrap(err, "failed to setup profiling")
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cli.Pprof {
				pprof.Stop(cli.PprofPath)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunView(cmd, cli, version, args)
		},
	}

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse the log in the terminal UI (default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunView(cmd, cli, version, args)
		},
	}

	printCmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Print the filtered records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPrint(cmd, cli, version, args)
		},
	}
	printCmd.Flags().BoolVar(&cli.JSON, "json", false, "Print the raw JSON lines of the filtered records")

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Print the debug session information and record counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInfo(cmd, cli, version, args)
		},
	}

	pairCmd := &cobra.Command{
		Use:   "pair <file> <index>",
		Short: "Print a record and its request or response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPair(cmd, cli, version, args)
		},
	}

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cli.ConfigPath, "config", "", "Path to config file (default: ~/.debug-log-viewer/debug-log-viewer.yml)")
	flags.StringVar(&cli.LogPath, "log", "", "Path to log file (default: ~/.debug-log-viewer/debug-log-viewer.log)")
	flags.StringVar(&cli.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&cli.FromTime, "from", "", "Keep records at or after this time (in any parsable format, see https://github.com/araddon/dateparse)")
	flags.StringVar(&cli.ToTime, "to", "", "Keep records at or before this time (in any parsable format, see https://github.com/araddon/dateparse)")
	flags.StringSliceVar(&cli.FilterParams.Tags, "tag", nil, "Show only these tags (repeatable)")
	flags.StringSliceVar(&cli.FilterParams.Levels, "level", nil, "Show only these levels: VERB, INFO, WARN, ERROR, FATAL (repeatable)")
	flags.StringVar(&cli.FilterParams.Grep, "grep", "", "Substring or /regex/flags the raw line must contain")
	flags.BoolVar(&cli.FilterParams.Invert, "invert", false, "Invert --grep")
	flags.StringSliceVar(&cli.FilterParams.Connections, "connection", nil, "Show only this protocol connection, as family:id, e.g. cdp:1 (repeatable)")
	flags.StringVar(&cli.ConnectionMode, "connection-mode", "", "How several connections combine: intersect or union")
	flags.BoolVar(&cli.Pprof, "pprof", false, "Write CPU and heap profiles")
	flags.StringVar(&cli.PprofPath, "pprof-path", "", "Directory for profiles (default: ~/.debug-log-viewer)")
	flags.BoolVar(&cli.DisableMouse, "disable-mouse", false, "Disable mouse support in the terminal UI")
	flags.BoolVar(&cli.NoColor, "no-color", false, "Disable colors")

	rootCmd.AddCommand(viewCmd, printCmd, infoCmd, pairCmd)
	return rootCmd
}

// logPath picks the log to open: the argument, or stdin when it is piped.
func logPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return logfile.Stdin, nil
	}
	return "", errors.New("no log file given, pass a path or pipe the log to stdin")
}

// RunView opens the log in the terminal UI.
func RunView(cmd *cobra.Command, cli *types.CLI, version string, args []string) error {
	path, err := logPath(args)
	if err != nil {
		return err
	}
	if path == logfile.Stdin {
		// the UI needs the terminal for input
		return errors.New("the terminal UI can't read the log from stdin, use the print command instead")
	}

	if err := logging.InitLogFile(cli, version); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	state, err := LoadState(cmd.Context(), cli, version, path)
	if err != nil {
		return err
	}
	log.Info().Str("source", state.SourceInfo()).Int("records", len(state.Session.Records())).Msg("log opened")

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	return tui.NewApp(state).Run()
}
