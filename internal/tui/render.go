package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/portalbridge/internal/portal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	paneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const (
	gaugeWidth = 24
	logTail    = 8
)

func (a *App) View() string {
	if a.state == viewStatus {
		return a.renderStatus()
	}
	return a.renderDashboard()
}

func (a *App) renderDashboard() string {
	var b strings.Builder

	runID := a.ctrl.RunID()
	if runID == "" {
		runID = "none"
	}
	b.WriteString(titleStyle.Render("portalbridge") + "  " + labelStyle.Render("run: ") + runID + "\n\n")

	portals := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(renderPortal("Portal A", a.ctrl.PortalA)),
		" ",
		paneStyle.Render(renderPortal("Portal B", a.ctrl.PortalB)),
	)
	b.WriteString(portals + "\n")

	b.WriteString(paneStyle.Render(a.renderBridge()) + "\n")

	if a.result != nil {
		b.WriteString(a.renderResult() + "\n")
	}

	log := a.ctrl.StatusLog()
	if len(log) > 0 {
		start := 0
		if len(log) > logTail {
			start = len(log) - logTail
		}
		for _, line := range log[start:] {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}

	if a.commandOpen {
		b.WriteString("\n:" + a.commandInput + "█\n")
	} else {
		b.WriteString("\n" + dimStyle.Render(a.status) + "\n")
		b.WriteString(dimStyle.Render("i init  e step  c charge  f bridge  t transfer  s status  r reset  : cmd  q quit") + "\n")
	}
	return b.String()
}

func renderPortal(name string, p *portal.Portal) string {
	safety := okStyle.Render("safe")
	if !p.SafetyStatus {
		safety = errStyle.Render("UNSAFE")
	}
	stability := fmt.Sprintf("%.2f", p.Stability)
	if p.Stability < 0.9 {
		stability = warnStyle.Render(stability)
	}
	payload := "none"
	if p.Payload != nil {
		payload = fmt.Sprintf("%.1f kg / %.3f m^3", p.Payload.Mass, p.Payload.Volume)
	}
	return strings.Join([]string{
		titleStyle.Render(name),
		labelStyle.Render("freq      ") + fmt.Sprintf("%.3f Hz", p.Freq),
		labelStyle.Render("energy    ") + fmt.Sprintf("%.1f J", p.Energy),
		labelStyle.Render("stability ") + stability,
		labelStyle.Render("safety    ") + safety,
		labelStyle.Render("payload   ") + payload,
	}, "\n")
}

func (a *App) renderBridge() string {
	strength := a.ctrl.BridgeStrength()
	filled := int(strength * gaugeWidth)
	gauge := strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
	switch {
	case strength >= 0.5:
		gauge = okStyle.Render(gauge)
	case strength > 0:
		gauge = warnStyle.Render(gauge)
	default:
		gauge = dimStyle.Render(gauge)
	}
	return strings.Join([]string{
		titleStyle.Render("Bridge"),
		labelStyle.Render("strength ") + gauge + fmt.Sprintf(" %.2f", strength),
		labelStyle.Render("detune   ") + fmt.Sprintf("%.3f Hz", a.ctrl.Detune()),
		labelStyle.Render("transfer ") + fmt.Sprintf("%.1f J", a.ctrl.TransferEnergy()),
	}, "\n")
}

func (a *App) renderResult() string {
	if a.result.Success {
		return okStyle.Render(fmt.Sprintf("transfer OK: %.1f J moved, %.1f J consumed",
			a.result.EnergyTransferred, a.result.EnergyConsumed))
	}
	return errStyle.Render("transfer failed: " + a.result.Reason)
}

func (a *App) renderStatus() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("full status") + "\n\n")
	for _, line := range a.ctrl.FullStatus() {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("s back  q quit") + "\n")
	return b.String()
}
