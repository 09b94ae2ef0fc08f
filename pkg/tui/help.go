package tui

import (
	"fmt"
	"strings"

	"github.com/Slach/debug-log-viewer/pkg/utils"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// systemInfoMarkdown describes the debug session from its welcome record.
func (a *App) systemInfoMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# System information\n\n")
	w, ok := a.state.Session.Welcome()
	if !ok {
		sb.WriteString("No system information found\n\n")
	} else {
		sb.WriteString("| | |\n|---|---|\n")
		fmt.Fprintf(&sb, "| OS | %s |\n", orUnknown(w.OS))
		fmt.Fprintf(&sb, "| Node | %s |\n", orUnknown(w.NodeVersion))
		fmt.Fprintf(&sb, "| Adapter | %s |\n", orUnknown(w.AdapterVersion))
		fmt.Fprintf(&sb, "| Started | %s |\n\n", utils.FormatTimestamp(w.Timestamp))
	}
	if src := a.state.SourceInfo(); src != "" {
		fmt.Fprintf(&sb, "Log file: `%s`\n\n", src)
	}
	fmt.Fprintf(&sb, "%s records, %s tags, %s connections\n\n",
		utils.FormatCount(len(a.state.Session.Records())),
		utils.FormatCount(len(a.state.Session.Tags())),
		utils.FormatCount(len(a.state.Session.ConnectionGroups())))
	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func keysMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Keys\n\n| Key | Action |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("\nMouse: click selects a row, ctrl+click toggles it, shift+click extends the selection.\n\n")
	sb.WriteString("Grep patterns are substrings, or `/regex/flags` with the flags `i`, `m` and `s`.\n\n")

	sb.WriteString("# Commands\n\n")
	for _, name := range availableCommands {
		fmt.Fprintf(&sb, "- `:%s` %s\n", name, commandDescriptions[name])
	}
	return sb.String()
}

// renderMarkdown renders md for the terminal, falling back to the source.
func renderMarkdown(md string, width int, noColor bool) string {
	style := "dark"
	if noColor {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(max(width-4, 20)))
	if err != nil {
		log.Warn().Err(err).Msg("can't create markdown renderer")
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Warn().Err(err).Msg("can't render markdown")
		return md
	}
	return out
}

// showHelp opens the help page, with the session information first when
// info is set.
func (a *App) showHelp(info bool) {
	md := keysMarkdown()
	if info {
		md = a.systemInfoMarkdown() + md
	}
	noColor := a.state.CLI != nil && a.state.CLI.NoColor
	a.helpView.SetContent(renderMarkdown(md, a.width, noColor))
	a.helpView.GotoTop()
	a.mode = modeHelp
}
