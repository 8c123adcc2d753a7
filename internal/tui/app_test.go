package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/portalbridge/internal/bridge"
	"github.com/jask/portalbridge/internal/config"
)

func newTestApp() *App {
	cfg := config.Config{
		Sim:  config.Sim{ResonanceFrequency: 1000, DetuneDefault: 0.5, EnergyRate: 250},
		Demo: config.Demo{PayloadVolume: 0.1, PayloadMass: 75, FloorTemp: -196, StepSeconds: 2},
		UI:   config.UI{RefreshMS: 250},
	}
	n := 0
	ctrl := bridge.New(cfg.Sim, bridge.WithRunIDGenerator(func() string {
		n++
		return fmt.Sprintf("run_%d", n)
	}))
	return New(cfg, ctrl)
}

func press(a *App, key string) *App {
	var msg tea.KeyMsg
	if len(key) == 1 {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	} else {
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
	}
	m, _ := a.Update(msg)
	return m.(*App)
}

func TestFullRunThroughKeys(t *testing.T) {
	t.Parallel()

	a := newTestApp()

	a = press(a, "i")
	require.Equal(t, "run_1", a.ctrl.RunID())

	a = press(a, "e") // 2 s at 250 W per portal
	a = press(a, "e")
	require.InDelta(t, 1000.0, a.ctrl.PortalA.Energy, 1e-9)

	a = press(a, "f")
	require.Greater(t, a.ctrl.BridgeStrength(), 0.95)

	a = press(a, "t")
	require.NotNil(t, a.result)
	require.True(t, a.result.Success)
	require.Zero(t, a.ctrl.BridgeStrength())

	a = press(a, "r")
	require.Empty(t, a.ctrl.RunID())
	require.Nil(t, a.result)
}

func TestStatusViewToggle(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	require.Equal(t, viewDashboard, a.state)

	a = press(a, "s")
	require.Equal(t, viewStatus, a.state)
	require.Contains(t, a.View(), "Run ID: none")

	a = press(a, "s")
	require.Equal(t, viewDashboard, a.state)
}

func TestCommandConsoleExecutes(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	a = press(a, ":")
	require.True(t, a.commandOpen)

	for _, r := range "init" {
		a = press(a, string(r))
	}
	a = press(a, "enter")

	require.False(t, a.commandOpen)
	require.Equal(t, "run_1", a.ctrl.RunID())
}

func TestCommandConsoleSuggestsOnTypo(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	a = press(a, ":")
	for _, r := range "trnsfer" {
		a = press(a, string(r))
	}
	a = press(a, "enter")

	require.True(t, strings.Contains(a.status, `did you mean "transfer"`))
}

func TestTickChargesOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	m, _ := a.Update(tickMsg{})
	a = m.(*App)
	require.Zero(t, a.ctrl.PortalA.Energy)

	a = press(a, "c")
	m, _ = a.Update(tickMsg{})
	a = m.(*App)
	// 250 ms tick at 250 W
	require.InDelta(t, 62.5, a.ctrl.PortalA.Energy, 1e-9)
}
