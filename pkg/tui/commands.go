package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/araddon/dateparse"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Available commands
const (
	CmdHelp        = "help"
	CmdInfo        = "info"
	CmdTags        = "tags"
	CmdLevels      = "levels"
	CmdConnections = "connections"
	CmdActivity    = "activity"
	CmdClear       = "clear"
	CmdFrom        = "from"
	CmdTo          = "to"
	CmdTime        = "time"
	CmdQuit        = "quit"
)

var availableCommands = []string{
	CmdHelp,
	CmdInfo,
	CmdTags,
	CmdLevels,
	CmdConnections,
	CmdActivity,
	CmdClear,
	CmdFrom,
	CmdTo,
	CmdTime,
	CmdQuit,
}

var commandDescriptions = map[string]string{
	CmdHelp:        "Show keys and commands",
	CmdInfo:        "Show the debug session information",
	CmdTags:        "Choose the visible tags",
	CmdLevels:      "Choose the visible levels",
	CmdConnections: "Filter by protocol connection",
	CmdActivity:    "Show activity per level over time",
	CmdClear:       "Drop every grep, connection, selection and time filter",
	CmdFrom:        "`from <time>` keeps records at or after the time, `from` alone clears it",
	CmdTo:          "`to <time>` keeps records at or before the time, `to` alone clears it",
	CmdTime:        "Switch between relative and absolute timestamps",
	CmdQuit:        "Exit the application",
}

// updateCommandSuggestions filters available commands based on current input
func (a *App) updateCommandSuggestions() {
	input := strings.TrimSpace(a.commandInput.Value())
	if input == "" {
		a.commandSuggestions = append([]string{}, availableCommands...)
		a.selectedSuggestion = 0
		return
	}
	// arguments are typed after the name, keep suggesting that command
	name := strings.Fields(input)[0]

	var suggestions []string
	for _, cmd := range availableCommands {
		if strings.HasPrefix(cmd, name) {
			suggestions = append(suggestions, cmd)
		}
	}
	if len(suggestions) == 0 {
		for _, cmd := range availableCommands {
			if strings.Contains(cmd, name) {
				suggestions = append(suggestions, cmd)
			}
		}
	}

	a.commandSuggestions = suggestions
	if a.selectedSuggestion >= len(suggestions) {
		a.selectedSuggestion = 0
	}
}

func (a *App) closeCommandMode() {
	a.mode = modeTable
	a.commandInput.SetValue("")
	a.commandInput.Blur()
	a.commandSuggestions = nil
	a.selectedSuggestion = 0
	a.suggestionScrollOffset = 0
}

// executeCommand runs a command line such as "from 2024-01-02 10:00".
func (a *App) executeCommand(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)
	log.Info().Str("command", name).Str("args", args).Msg("executing command")

	switch name {
	case CmdHelp:
		a.showHelp(false)
	case CmdInfo:
		a.showHelp(true)
	case CmdTags:
		a.openPicker(pickTags)
	case CmdLevels:
		a.openPicker(pickLevels)
	case CmdConnections:
		a.openPicker(pickConnections)
	case CmdActivity:
		a.showActivity()
	case CmdClear:
		a.state.Session.ClearFilters()
		a.state.Session.SetTimeRange(time.Time{}, time.Time{})
		a.setMessage("filters cleared")
	case CmdFrom, CmdTo:
		a.setTimeBound(name, args)
	case CmdTime:
		a.toggleTimeFormat()
	case CmdQuit:
		return tea.Quit
	default:
		a.setError(fmt.Errorf("unknown command: %s, type :help for available commands", name))
	}
	return nil
}

func (a *App) setTimeBound(name, args string) {
	from, to, _ := a.state.Session.TimeRange()
	var t time.Time
	if args != "" {
		parsed, err := dateparse.ParseAny(args)
		if err != nil {
			a.setError(fmt.Errorf("can't parse %s=%q: %v", name, args, err))
			return
		}
		t = parsed
	}
	if name == CmdFrom {
		from = t
	} else {
		to = t
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		a.setError(fmt.Errorf("time range ends before it starts"))
		return
	}
	a.state.Session.SetTimeRange(from, to)
	if t.IsZero() {
		a.setMessage(fmt.Sprintf("%s bound removed", name))
		return
	}
	a.setMessage(fmt.Sprintf("%s set to %s", name, utils.FormatTimestamp(t.UnixMilli())))
}

func (a *App) toggleTimeFormat() {
	a.absoluteTime = !a.absoluteTime
	if a.absoluteTime {
		a.setMessage("showing absolute timestamps")
	} else {
		a.setMessage("showing time since session start")
	}
}
