package widgets

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Section is one titled JSON document of a JSONView. A section without JSON
// shows only its note.
type Section struct {
	Title string
	JSON  string
	Note  string
}

// JSONView is a scrollable view of one or more highlighted JSON documents.
type JSONView struct {
	viewport viewport.Model
	title    string
	style    string
	content  string
	width    int
	height   int
}

// NewJSONView creates a view using the chroma style for highlighting.
func NewJSONView(title, style string, width, height int) JSONView {
	m := JSONView{
		viewport: viewport.New(width, height),
		title:    title,
		style:    style,
	}
	m.SetSize(width, height)
	return m
}

// SetSize updates the dimensions; the title and border take 4 lines.
func (m *JSONView) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 4
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

func (m *JSONView) SetTitle(title string) { m.title = title }

// SetSections replaces the content and scrolls back to the top.
func (m *JSONView) SetSections(sections ...Section) {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(headingStyle.Render(s.Title))
		sb.WriteString("\n")
		if s.JSON != "" {
			sb.WriteString(HighlightJSON(s.JSON, m.style))
		}
		if s.Note != "" {
			if s.JSON != "" {
				sb.WriteString("\n")
			}
			sb.WriteString(noteStyle.Render(s.Note))
		}
	}
	m.content = sb.String()
	m.viewport.SetContent(m.content)
	m.viewport.GotoTop()
}

// Content returns the rendered content, including color codes.
func (m JSONView) Content() string { return m.content }

func (m JSONView) Init() tea.Cmd { return nil }

func (m JSONView) Update(msg tea.Msg) (JSONView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m JSONView) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.title), borderStyle.Render(m.viewport.View()))
}

// PrettyJSON indents a JSON document. Invalid input is returned unchanged.
func PrettyJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

// HighlightJSON indents src and colors it for a 256 color terminal. The
// plain indented text is returned if highlighting fails.
func HighlightJSON(src, style string) string {
	pretty := PrettyJSON(src)
	var out strings.Builder
	if err := quick.Highlight(&out, pretty, "json", "terminal256", style); err != nil {
		return pretty
	}
	return strings.TrimRight(out.String(), "\n")
}
