package tui

import (
	"github.com/Slach/debug-log-viewer/pkg/selection"
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

// handleMouse maps clicks on table rows to selection changes. Ctrl or alt
// toggles the row, since many terminals keep ctrl+click for themselves.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch a.mode {
	case modeInspector:
		var cmd tea.Cmd
		a.inspector, cmd = a.inspector.Update(msg)
		return cmd
	case modeHelp:
		var cmd tea.Cmd
		a.helpView, cmd = a.helpView.Update(msg)
		return cmd
	case modeTable, modeGrep:
	default:
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		a.moveCursor(wheelStep)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	pos, ok := a.table.RowAt(msg.Y - headerLines)
	if !ok {
		return nil
	}
	a.setCursor(pos)
	a.state.Session.Click(pos, selection.Modifiers{Ctrl: msg.Ctrl || msg.Alt, Shift: msg.Shift})
	return nil
}
