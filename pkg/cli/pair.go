package cli

import (
	"fmt"
	"strconv"

	"github.com/Slach/debug-log-viewer/pkg/pairing"
	"github.com/Slach/debug-log-viewer/pkg/tui/widgets"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RunPair prints the record at the given index and its reciprocal record.
// The index counts parsed records from zero and ignores the filters.
func RunPair(cmd *cobra.Command, cli *types.CLI, version string, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Wrapf(err, "invalid record index %q", args[1])
	}
	state, err := LoadState(cmd.Context(), cli, version, args[0])
	if err != nil {
		return err
	}
	records := state.Session.Records()
	if index < 0 || index >= len(records) {
		return errors.Errorf("record index %d out of range, the log has %d records", index, len(records))
	}
	rec := &records[index]

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s at %s\n%s\n", rec, utils.FormatTimestamp(rec.Timestamp), widgets.PrettyJSON(rec.Raw))
	other, ok := pairing.FindCounterpart(rec, records)
	if !ok {
		fmt.Fprintln(out, "\nno reciprocal record found")
		return nil
	}
	fmt.Fprintf(out, "\n%s at %s (%s)\n%s\n", other, utils.FormatTimestamp(other.Timestamp),
		utils.FormatInterval(other.Timestamp-rec.Timestamp), widgets.PrettyJSON(other.Raw))
	return nil
}
