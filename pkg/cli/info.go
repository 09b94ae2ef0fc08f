package cli

import (
	"fmt"
	"io"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/models"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// RunInfo prints the welcome information and per-tag, per-level and
// per-connection record counts.
func RunInfo(cmd *cobra.Command, cli *types.CLI, version string, args []string) error {
	path, err := logPath(args)
	if err != nil {
		return err
	}
	state, err := LoadState(cmd.Context(), cli, version, path)
	if err != nil {
		return err
	}
	writeInfo(cmd.OutOrStdout(), state)
	return nil
}

func writeInfo(out io.Writer, state *models.AppState) {
	s := state.Session
	if w, ok := s.Welcome(); ok {
		fmt.Fprintln(out, "System information")
		fmt.Fprintf(out, "  OS:      %s\n", orUnknown(w.OS))
		fmt.Fprintf(out, "  Node:    %s\n", orUnknown(w.NodeVersion))
		fmt.Fprintf(out, "  Adapter: %s\n", orUnknown(w.AdapterVersion))
		fmt.Fprintf(out, "  Started: %s\n", utils.FormatTimestamp(w.Timestamp))
	} else {
		fmt.Fprintln(out, "No system information found")
	}
	fmt.Fprintf(out, "\nLog file: %s\n", state.SourceInfo())
	fmt.Fprintf(out, "%s records", utils.FormatCount(len(s.Records())))
	if state.Dropped > 0 {
		fmt.Fprintf(out, ", %s lines skipped", utils.FormatCount(state.Dropped))
	}
	fmt.Fprintf(out, ", %s shown by the filters\n\n", utils.FormatCount(len(s.Visible())))

	tagCounts := s.TagCounts()
	tags := countTable("Tag")
	for _, tag := range s.Tags() {
		tags.Row(tag, utils.FormatCount(tagCounts[tag]))
	}
	fmt.Fprintln(out, tags.Render())

	levelCounts := s.LevelCounts()
	levels := countTable("Level")
	for _, l := range model.SelectableLevels {
		if n := levelCounts[l]; n > 0 {
			levels.Row(l.String(), utils.FormatCount(n))
		}
	}
	fmt.Fprintln(out, levels.Render())

	if groups := s.ConnectionGroups(); len(groups) > 0 {
		conns := countTable("Connection")
		for _, g := range groups {
			conns.Row(fmt.Sprintf("%s:%s", g.Key.Family, g.Key.ID), utils.FormatCount(g.Count))
		}
		fmt.Fprintln(out, conns.Render())
	}
}

func countTable(name string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(name, "Records").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
