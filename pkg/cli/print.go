package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/models"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var levelAttributes = map[model.LogLevel][]color.Attribute{
	model.LevelVerbose: {color.FgHiBlack},
	model.LevelInfo:    {color.FgBlue},
	model.LevelWarn:    {color.FgYellow},
	model.LevelError:   {color.FgRed},
	model.LevelFatal:   {color.FgMagenta, color.Bold},
}

// printer writes records as text lines, colored when the output is a terminal.
type printer struct {
	out     io.Writer
	colored bool
	summary int
	epoch   int64
}

func newPrinter(out io.Writer, state *models.AppState, cli *types.CLI) *printer {
	return &printer{
		out:     out,
		colored: !cli.NoColor && isTerminal(out),
		summary: state.Config.SummaryLength,
		epoch:   state.Session.Epoch(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) paint(s string, attrs ...color.Attribute) string {
	if len(attrs) == 0 {
		return s
	}
	c := color.New(attrs...)
	if p.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (p *printer) record(rec *model.LogRecord) {
	level := fmt.Sprintf("%-5s", rec.Level.String())
	fmt.Fprintf(p.out, "%s %s %s %s\n",
		p.paint(level, levelAttributes[rec.Level]...),
		p.paint(utils.FormatInterval(rec.Timestamp-p.epoch), color.Faint),
		p.paint(rec.Tag, color.FgCyan),
		rec.Summary(p.summary),
	)
}

// RunPrint writes the records that pass the filters to stdout.
func RunPrint(cmd *cobra.Command, cli *types.CLI, version string, args []string) error {
	path, err := logPath(args)
	if err != nil {
		return err
	}
	state, err := LoadState(cmd.Context(), cli, version, path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cli.JSON {
		for _, rec := range state.Session.Visible() {
			fmt.Fprintln(out, rec.Raw)
		}
		return nil
	}
	p := newPrinter(out, state, cli)
	for _, rec := range state.Session.Visible() {
		p.record(rec)
	}
	return nil
}
