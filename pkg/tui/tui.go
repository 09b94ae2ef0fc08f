package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/config"
	"github.com/Slach/debug-log-viewer/pkg/filter"
	"github.com/Slach/debug-log-viewer/pkg/models"
	"github.com/Slach/debug-log-viewer/pkg/selection"
	"github.com/Slach/debug-log-viewer/pkg/tui/widgets"
	"github.com/Slach/debug-log-viewer/pkg/types"
	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/Slach/debug-log-viewer/pkg/viewer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/rs/zerolog/log"
)

type mode string

const (
	modeTable     mode = "table"
	modeGrep      mode = "grep"
	modeCommand   mode = "command"
	modePicker    mode = "picker"
	modeInspector mode = "inspector"
	modeHelp      mode = "help"
	modeActivity  mode = "activity"
)

const (
	// title, active filters and the activity sparkline
	headerLines = 3
	// input or message, status and key help
	footerLines    = 3
	maxSuggestions = 8
)

// App is the main bubbletea model
type App struct {
	state *models.AppState
	cfg   *config.Config

	mode          mode
	width         int
	height        int
	table         widgets.FilteredTable
	help          help.Model
	absoluteTime  bool
	message       string
	messageIsErr  bool
	anchorIndex   int // record index under the cursor
	anchorPresent bool

	grepInput  textinput.Model
	grepInvert bool
	grepGen    uint64
	grepLiveID string
	grepErr    string

	commandInput           textinput.Model
	commandSuggestions     []string
	selectedSuggestion     int
	suggestionScrollOffset int

	picker         widgets.FilteredList
	pickerKind     pickerKind
	connectionKeys map[string]filter.ConnectionKey

	inspector widgets.JSONView
	inspected viewer.Inspection

	helpView viewport.Model
	activity table.Model
}

// NewApp creates the viewer for a loaded log. The session must be set on
// state.
func NewApp(state *models.AppState) *App {
	cfg := state.Config
	if cfg == nil {
		cfg = config.Default()
		state.Config = cfg
	}

	gi := textinput.New()
	gi.Prompt = "/"
	gi.Placeholder = "substring or /regex/flags"
	gi.CharLimit = 256

	ci := textinput.New()
	ci.Placeholder = "Enter command..."
	ci.Prompt = ":"
	ci.CharLimit = 100

	a := &App{
		state:        state,
		cfg:          cfg,
		mode:         modeTable,
		table:        widgets.NewFilteredTable(tableColumns(), 80, 20),
		help:         help.New(),
		absoluteTime: cfg.UI.AbsoluteTime,
		grepInput:    gi,
		commandInput: ci,
		inspector:    widgets.NewJSONView("Inspector", cfg.UI.InspectorStyle, 80, 20),
		helpView:     viewport.New(80, 20),
	}
	a.resetSource()
	state.Session.Subscribe(a.onResult)
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// onResult keeps the cursor on the same record, or the next visible one,
// when the filters change.
func (a *App) onResult(filter.Result) {
	a.resetSource()
	if a.anchorPresent {
		a.table.SetCursor(a.state.Session.NearestPosition(a.anchorIndex))
	}
	a.syncAnchor()
}

func (a *App) resetSource() {
	a.table.SetSource(len(a.state.Session.Visible()), a.renderRow)
	a.table.SetEmptyMessage(a.emptyMessage())
}

func (a *App) emptyMessage() string {
	if len(a.state.Session.Records()) == 0 {
		return "The log has no records"
	}
	return "No rows match the active filters, press backspace to drop the last one"
}

// syncAnchor remembers the record under the cursor.
func (a *App) syncAnchor() {
	rows := a.state.Session.Visible()
	cur := a.table.Cursor()
	if cur < len(rows) {
		a.anchorIndex = rows[cur].Index
		a.anchorPresent = true
	}
}

func (a *App) moveCursor(delta int) {
	a.table.MoveCursor(delta)
	a.syncAnchor()
}

func (a *App) setCursor(pos int) {
	a.table.SetCursor(pos)
	a.syncAnchor()
}

func (a *App) setMessage(msg string) {
	a.message = msg
	a.messageIsErr = false
}

func (a *App) setError(err error) {
	log.Debug().Err(err).Msg("shown to user")
	a.message = err.Error()
	a.messageIsErr = true
}

// pageStep is the pgup/pgdown distance.
func (a *App) pageStep() int {
	if a.cfg.UI.PageSize > 0 {
		return a.cfg.UI.PageSize
	}
	return a.table.PageSize()
}

func (a *App) bodyHeight() int {
	h := a.height - headerLines - footerLines
	if h < 3 {
		return 3
	}
	return h
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	body := a.bodyHeight()
	a.table.SetSize(width, body)
	a.picker.SetHeight(body - 2)
	a.inspector.SetSize(width, body)
	a.helpView.Width = width
	a.helpView.Height = body
	a.help.Width = width
}

// Update handles all messages and state updates
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case grepDebounceMsg:
		if msg.gen == a.grepGen && a.mode == modeGrep {
			a.applyLiveGrep()
		}
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		switch a.mode {
		case modeGrep:
			return a, a.updateGrep(msg)
		case modeCommand:
			return a, a.updateCommand(msg)
		case modePicker:
			return a, a.updatePicker(msg)
		case modeInspector:
			return a, a.updateInspector(msg)
		case modeHelp:
			return a, a.updateHelp(msg)
		case modeActivity:
			if key.Matches(msg, keys.Quit, keys.ClearSel, keys.Activity) {
				a.mode = modeTable
			}
			return a, nil
		}
		return a, a.updateTable(msg)
	}
	return a, nil
}

func (a *App) updateTable(msg tea.KeyMsg) tea.Cmd {
	s := a.state.Session
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, keys.PageUp):
		a.moveCursor(-a.pageStep())
	case key.Matches(msg, keys.PageDown):
		a.moveCursor(a.pageStep())
	case key.Matches(msg, keys.Home):
		a.setCursor(0)
	case key.Matches(msg, keys.End):
		a.setCursor(a.table.Total() - 1)
	case key.Matches(msg, keys.Select):
		s.Click(a.table.Cursor(), selection.Modifiers{})
	case key.Matches(msg, keys.Toggle):
		s.Click(a.table.Cursor(), selection.Modifiers{Ctrl: true})
	case key.Matches(msg, keys.RangeUp):
		a.extendSelection(-1)
	case key.Matches(msg, keys.RangeDown):
		a.extendSelection(1)
	case key.Matches(msg, keys.ClearSel):
		s.ClearSelection()
		a.setMessage("")
	case key.Matches(msg, keys.Grep):
		return a.openGrep()
	case key.Matches(msg, keys.Tags):
		a.openPicker(pickTags)
	case key.Matches(msg, keys.Levels):
		a.openPicker(pickLevels)
	case key.Matches(msg, keys.Connections):
		a.openPicker(pickConnections)
	case key.Matches(msg, keys.Activity):
		a.showActivity()
	case key.Matches(msg, keys.Highlight):
		if s.Selection().IsEmpty() {
			a.setMessage("select rows to highlight first")
			return nil
		}
		s.HighlightSelected()
		a.setMessage(fmt.Sprintf("%d rows highlighted", s.Highlights().Len()))
	case key.Matches(msg, keys.Freeze):
		if f, ok := s.FreezeSelection(); ok {
			a.setMessage("added filter: " + f.Name())
		} else {
			a.setMessage("select rows to filter first")
		}
	case key.Matches(msg, keys.PopFilter):
		if !s.RemoveLastFilter() {
			a.setMessage("no filter to remove")
		}
	case key.Matches(msg, keys.Inspect):
		a.openInspector(a.table.Cursor())
	case key.Matches(msg, keys.TimeFormat):
		a.toggleTimeFormat()
	case key.Matches(msg, keys.Command):
		a.mode = modeCommand
		a.updateCommandSuggestions()
		return a.commandInput.Focus()
	case key.Matches(msg, keys.Help):
		a.showHelp(true)
	}
	return nil
}

// extendSelection moves the cursor and extends the selection to it, starting
// from the current row when nothing is selected yet.
func (a *App) extendSelection(delta int) {
	s := a.state.Session
	if _, ok := s.Selection().Anchor(); !ok {
		s.Click(a.table.Cursor(), selection.Modifiers{})
	}
	a.moveCursor(delta)
	s.Click(a.table.Cursor(), selection.Modifiers{Shift: true})
}

func (a *App) updateCommand(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.closeCommandMode()
		return nil
	case "enter":
		line := strings.TrimSpace(a.commandInput.Value())
		// a bare prefix runs the highlighted suggestion, arguments are kept
		if !strings.Contains(line, " ") && a.selectedSuggestion < len(a.commandSuggestions) {
			line = a.commandSuggestions[a.selectedSuggestion]
		}
		a.closeCommandMode()
		return a.executeCommand(line)
	case "tab":
		if len(a.commandSuggestions) > 0 {
			a.commandInput.SetValue(a.commandSuggestions[a.selectedSuggestion] + " ")
			a.commandInput.CursorEnd()
			a.updateCommandSuggestions()
		}
		return nil
	case "down", "ctrl+n":
		if n := len(a.commandSuggestions); n > 0 {
			a.selectedSuggestion = (a.selectedSuggestion + 1) % n
			if a.selectedSuggestion == 0 {
				a.suggestionScrollOffset = 0
			} else if a.selectedSuggestion >= a.suggestionScrollOffset+maxSuggestions {
				a.suggestionScrollOffset = a.selectedSuggestion - maxSuggestions + 1
			}
		}
		return nil
	case "up", "ctrl+p":
		if n := len(a.commandSuggestions); n > 0 {
			a.selectedSuggestion--
			if a.selectedSuggestion < 0 {
				a.selectedSuggestion = n - 1
				a.suggestionScrollOffset = max(0, n-maxSuggestions)
			} else if a.selectedSuggestion < a.suggestionScrollOffset {
				a.suggestionScrollOffset = a.selectedSuggestion
			}
		}
		return nil
	}
	var cmd tea.Cmd
	a.commandInput, cmd = a.commandInput.Update(msg)
	a.updateCommandSuggestions()
	return cmd
}

func (a *App) updateHelp(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit, keys.ClearSel, keys.Help) {
		a.mode = modeTable
		return nil
	}
	var cmd tea.Cmd
	a.helpView, cmd = a.helpView.Update(msg)
	return cmd
}

// View renders the current view
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var body string
	switch a.mode {
	case modePicker:
		body = a.picker.View()
	case modeInspector:
		body = a.inspector.View()
	case modeHelp:
		body = a.helpView.View()
	case modeActivity:
		body = a.activity.View()
	default:
		body = a.table.View()
	}
	body = lipgloss.NewStyle().Height(a.bodyHeight()).MaxHeight(a.bodyHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		body,
		a.renderFooter(),
	)
}

func (a *App) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	filterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("debug-log-viewer")
	if src := a.state.SourceInfo(); src != "" {
		title += "  " + dimStyle.Render(src)
	}
	if w, ok := a.state.Session.Welcome(); ok && w.AdapterVersion != "" {
		title += "  " + dimStyle.Render("adapter "+w.AdapterVersion)
	}

	names := a.state.Session.Pipeline().Names()
	filters := dimStyle.Render("filters: ")
	if len(names) == 0 {
		filters += dimStyle.Render("none")
	} else {
		filters += filterStyle.Render(strings.Join(names, " | "))
	}

	line := lipgloss.NewStyle().MaxWidth(a.width)
	return lipgloss.JoinVertical(lipgloss.Left,
		line.Render(title),
		line.Render(filters),
		line.Render(activityLine(a.state.Session.Visible(), a.width)),
	)
}

func (a *App) renderFooter() string {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))

	var input string
	switch a.mode {
	case modeGrep:
		input = a.grepView()
	case modeCommand:
		input = a.commandView()
	default:
		if a.messageIsErr {
			input = errStyle.Render(a.message)
		} else {
			input = infoStyle.Render(a.message)
		}
	}

	status := statusStyle.Width(a.width).MaxWidth(a.width).Render(a.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(a.width).Render(input),
		status,
		a.help.View(keys),
	)
}

func (a *App) statusLine() string {
	s := a.state.Session
	res := s.Result()
	parts := []string{
		fmt.Sprintf("%s / %s rows", utils.FormatCount(res.Count()), utils.FormatCount(res.Total)),
		fmt.Sprintf("filtered in %s", res.Elapsed.Round(time.Microsecond)),
	}
	if n := s.Selection().Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if n := s.Highlights().Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d highlighted", n))
	}
	if a.state.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("%d unreadable lines skipped", a.state.Dropped))
	}
	if a.absoluteTime {
		parts = append(parts, "absolute time")
	}
	return " " + strings.Join(parts, " | ")
}

// commandView renders the command input followed by its suggestions.
func (a *App) commandView() string {
	view := a.commandInput.View()
	if len(a.commandSuggestions) == 0 {
		return view
	}
	end := min(a.suggestionScrollOffset+maxSuggestions, len(a.commandSuggestions))
	var items []string
	for i := a.suggestionScrollOffset; i < end; i++ {
		name := a.commandSuggestions[i]
		if i == a.selectedSuggestion {
			items = append(items, lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true).Render(name))
		} else {
			items = append(items, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(name))
		}
	}
	return view + "  " + strings.Join(items, " ")
}

// useMouse reports whether mouse reporting should be enabled. The
// --disable-mouse flag wins over the config file.
func useMouse(cfg *config.Config, cli *types.CLI) bool {
	usingMouse := true
	if cfg != nil && !cfg.UI.UsingMouse {
		usingMouse = false
	}
	if cli != nil && cli.DisableMouse {
		usingMouse = false
	}
	return usingMouse
}

// Run starts the bubbletea program
func (a *App) Run() error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if useMouse(a.cfg, a.state.CLI) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(a, opts...)
	_, err := p.Run()
	return err
}
