package tui

import (
	"time"

	"github.com/Slach/debug-log-viewer/pkg/filter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// grepDebounceMsg fires after the user stopped typing. Only the message of
// the latest keystroke, matched by gen, applies the pattern.
type grepDebounceMsg struct {
	gen uint64
}

func (a *App) openGrep() tea.Cmd {
	a.mode = modeGrep
	a.grepInput.SetValue("")
	a.grepInvert = false
	a.grepLiveID = ""
	a.grepErr = ""
	return a.grepInput.Focus()
}

// scheduleGrep restarts the debounce timer.
func (a *App) scheduleGrep() tea.Cmd {
	a.grepGen++
	if a.cfg.GrepDebounce <= 0 {
		a.applyLiveGrep()
		return nil
	}
	gen := a.grepGen
	return tea.Tick(a.cfg.GrepDebounce, func(time.Time) tea.Msg {
		return grepDebounceMsg{gen: gen}
	})
}

// applyLiveGrep installs the typed pattern in place of the previous one.
// An invalid pattern keeps the previous filter and shows the error.
func (a *App) applyLiveGrep() bool {
	s := a.state.Session
	value := a.grepInput.Value()
	if value == "" {
		a.grepErr = ""
		if a.grepLiveID != "" {
			s.RemoveFilter(a.grepLiveID)
			a.grepLiveID = ""
		}
		return true
	}
	g, err := filter.NewGrep(value, a.grepInvert)
	if err != nil {
		a.grepErr = err.Error()
		return false
	}
	a.grepErr = ""
	if a.grepLiveID != "" {
		s.ReplaceFilter(a.grepLiveID, g)
	} else {
		s.AddFilter(g)
	}
	a.grepLiveID = g.ID()
	return true
}

func (a *App) closeGrep() {
	a.grepGen++
	a.grepInput.Blur()
	a.grepLiveID = ""
	a.grepErr = ""
	a.mode = modeTable
}

func (a *App) updateGrep(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if a.grepLiveID != "" {
			a.state.Session.RemoveFilter(a.grepLiveID)
		}
		a.closeGrep()
		return nil
	case "enter":
		if !a.applyLiveGrep() {
			return nil
		}
		if a.grepLiveID != "" {
			a.setMessage("added filter")
		}
		a.closeGrep()
		return nil
	case "ctrl+r":
		a.grepInvert = !a.grepInvert
		return a.scheduleGrep()
	}
	var cmd tea.Cmd
	before := a.grepInput.Value()
	a.grepInput, cmd = a.grepInput.Update(msg)
	if a.grepInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, a.scheduleGrep())
}

func (a *App) grepView() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	view := a.grepInput.View()
	if a.grepInvert {
		view += lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("  [inverted]")
	}
	if a.grepErr != "" {
		return view + "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(a.grepErr)
	}
	return view + dim.Render("  enter: keep | esc: cancel | ctrl+r: invert")
}
