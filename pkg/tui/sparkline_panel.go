package tui

import (
	"fmt"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/tui/widgets"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	activityLabelWidth    = 12
	minActivityBuckets    = 10
	activityFixedColumns  = 40
	activityColumnName    = "name"
	activityColumnTotal   = "total"
	activityColumnSpark   = "sparkline"
	activityColumnPeak    = "peak"
	activityColumnPeakLen = 8
)

// SparklineRowData is one level's activity over the visible time span.
type SparklineRowData struct {
	Name      string
	Total     int
	Peak      float64
	Values    []float64
	Sparkline string
	Color     lipgloss.Color
}

// timeSpan returns the smallest and largest timestamp of rows.
func timeSpan(rows []*model.LogRecord) (start, end int64, ok bool) {
	for i, rec := range rows {
		if i == 0 || rec.Timestamp < start {
			start = rec.Timestamp
		}
		if i == 0 || rec.Timestamp > end {
			end = rec.Timestamp
		}
	}
	return start, end, len(rows) > 0
}

// levelActivity buckets rows by level over their common time span. Levels
// without rows are left out.
func levelActivity(rows []*model.LogRecord, buckets int) []SparklineRowData {
	start, end, ok := timeSpan(rows)
	if !ok {
		return nil
	}
	byLevel := make(map[model.LogLevel][]int64)
	for _, rec := range rows {
		byLevel[rec.Level] = append(byLevel[rec.Level], rec.Timestamp)
	}

	var out []SparklineRowData
	for _, level := range model.SelectableLevels {
		ts := byLevel[level]
		if len(ts) == 0 {
			continue
		}
		values := widgets.Histogram(ts, start, end, buckets)
		peak := 0.0
		for _, v := range values {
			if v > peak {
				peak = v
			}
		}
		out = append(out, SparklineRowData{
			Name:      level.String(),
			Total:     len(ts),
			Peak:      peak,
			Values:    values,
			Sparkline: widgets.Sparkline(values),
			Color:     levelColor(level),
		})
	}
	return out
}

// activityBuckets is the number of sparkline cells that fit next to the
// fixed columns of the activity table.
func activityBuckets(screenWidth int) int {
	if n := screenWidth - activityFixedColumns; n > minActivityBuckets {
		return n
	}
	return minActivityBuckets
}

// activityLine is the one-line sparkline of all visible rows shown in the
// header.
func activityLine(rows []*model.LogRecord, width int) string {
	start, end, ok := timeSpan(rows)
	label := lipgloss.NewStyle().Width(activityLabelWidth).Foreground(lipgloss.Color("8")).Render("activity")
	if !ok || width <= activityLabelWidth {
		return label
	}
	ts := make([]int64, len(rows))
	for i, rec := range rows {
		ts[i] = rec.Timestamp
	}
	spark := widgets.Sparkline(widgets.Histogram(ts, start, end, width-activityLabelWidth))
	return label + lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(spark)
}

func activityColumns(buckets int) []table.Column {
	return []table.Column{
		table.NewColumn(activityColumnName, "Level", 8),
		table.NewColumn(activityColumnTotal, "Rows", 10),
		table.NewColumn(activityColumnSpark, "Activity", buckets),
		table.NewColumn(activityColumnPeak, "Peak", activityColumnPeakLen),
	}
}

// ConvertSparklineDataToTableRows converts sparkline row data to bubble-table rows
func ConvertSparklineDataToTableRows(data []SparklineRowData) []table.Row {
	var rows []table.Row
	for _, item := range data {
		rowData := table.RowData{
			activityColumnName:  item.Name,
			activityColumnTotal: utils.FormatCount(item.Total),
			activityColumnSpark: item.Sparkline,
			activityColumnPeak:  fmt.Sprintf("%.0f", item.Peak),
		}
		rows = append(rows, table.NewRow(rowData).
			WithStyle(lipgloss.NewStyle().Foreground(item.Color)))
	}
	return rows
}

// showActivity renders the per level activity of the visible rows.
func (a *App) showActivity() {
	buckets := activityBuckets(a.width)
	data := levelActivity(a.state.Session.Visible(), buckets)
	a.activity = table.New(activityColumns(buckets)).
		WithRows(ConvertSparklineDataToTableRows(data)).
		WithFooterVisibility(false).
		HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")))
	a.mode = modeActivity
}
