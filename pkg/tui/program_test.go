package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/Slach/debug-log-viewer/pkg/config"
	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/Slach/debug-log-viewer/pkg/models"
	"github.com/Slach/debug-log-viewer/pkg/viewer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"
)

func TestProgramFilterAndQuit(t *testing.T) {
	cfg := config.Default()
	cfg.GrepDebounce = 10 * time.Millisecond
	state := models.NewAppState(cfg, "test")
	state.Session = viewer.NewSession(model.Parse(appLog), viewer.Options{})

	tm := teatest.NewTestModel(t, NewApp(state), teatest.WithInitialTermSize(160, 40))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Debugger.enable")) && bytes.Contains(bts, []byte("Log Entry"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	tm.Type("Runtime.enable")
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("1 / 7 rows"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(*App)
	require.True(t, ok)
	require.Len(t, final.state.Session.Visible(), 1)
	require.Equal(t, 5, final.state.Session.Visible()[0].Index)
}
