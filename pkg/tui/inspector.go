package tui

import (
	"fmt"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/tui/widgets"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	tea "github.com/charmbracelet/bubbletea"
)

func recordTitle(rec *model.LogRecord) string {
	return fmt.Sprintf("#%d %s %s %s", rec.Index, rec.Level, rec.Tag, utils.FormatTimestamp(rec.Timestamp))
}

// openInspector shows the record at pos next to its request or response.
func (a *App) openInspector(pos int) {
	in, err := a.state.Session.Inspect(pos)
	if err != nil {
		a.setError(err)
		return
	}
	a.inspected = in
	a.inspector.SetTitle("Inspector " + recordTitle(in.Record) + "  (p: jump to counterpart, esc: close)")

	sections := []widgets.Section{{Title: "Record " + recordTitle(in.Record), JSON: in.Record.Raw}}
	switch {
	case in.HasCounterpart():
		delta := utils.FormatInterval(in.Counterpart.Timestamp - in.Record.Timestamp)
		sections = append(sections, widgets.Section{
			Title: fmt.Sprintf("Counterpart %s (%s)", recordTitle(in.Counterpart), delta),
			JSON:  in.Counterpart.Raw,
		})
	case in.Record.IsProtocol():
		sections = append(sections, widgets.Section{Title: "Counterpart", Note: "no reciprocal record found"})
	}
	a.inspector.SetSections(sections...)
	a.mode = modeInspector
}

// jumpToCounterpart moves the cursor to the counterpart and inspects it.
func (a *App) jumpToCounterpart() {
	if !a.inspected.HasCounterpart() {
		a.setMessage("no reciprocal record found")
		return
	}
	pos, ok := a.state.Session.Position(a.inspected.Counterpart.Index)
	if !ok {
		a.setMessage("the counterpart is hidden by the active filters")
		return
	}
	a.setCursor(pos)
	a.openInspector(pos)
}

func (a *App) updateInspector(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "i":
		a.mode = modeTable
		return nil
	case "p":
		a.jumpToCounterpart()
		return nil
	}
	var cmd tea.Cmd
	a.inspector, cmd = a.inspector.Update(msg)
	return cmd
}
