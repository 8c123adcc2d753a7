package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/portalbridge/internal/bridge"
	"github.com/jask/portalbridge/internal/config"
)

// App drives the interactive bridge dashboard.
type App struct {
	cfg  config.Config
	ctrl *bridge.Controller

	state    appState
	charging bool // auto-advance portal energy on each tick
	status   string
	result   *bridge.TransferResult

	commandOpen  bool
	commandInput string

	width  int
	height int
}

type appState string

const (
	viewDashboard appState = "dashboard"
	viewStatus    appState = "status"
)

type tickMsg time.Time

func New(cfg config.Config, ctrl *bridge.Controller) *App {
	return &App{
		cfg:    cfg,
		ctrl:   ctrl,
		state:  viewDashboard,
		status: "press i to initialize a run",
	}
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Duration(a.cfg.UI.RefreshMS)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stepSeconds is the simulated time each charge tick advances the portals by.
func (a *App) stepSeconds() float64 {
	return float64(a.cfg.UI.RefreshMS) / 1000.0
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		if a.charging {
			a.ctrl.PortalA.UpdateEnergy(a.stepSeconds())
			a.ctrl.PortalB.UpdateEnergy(a.stepSeconds())
		}
		return a, a.tick()

	case tea.KeyMsg:
		if a.commandOpen {
			return a.updateCommand(msg)
		}
		return a.updateKeys(msg)
	}
	return a, nil
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case ":":
		a.commandOpen = true
		a.commandInput = ""
		return a, nil
	case "i":
		a.doInit()
	case "e":
		a.doStep()
	case "c":
		a.charging = !a.charging
		if a.charging {
			a.status = "charging"
		} else {
			a.status = "charging paused"
		}
	case "f":
		a.doBridge()
	case "t":
		a.doTransfer()
	case "s":
		if a.state == viewStatus {
			a.state = viewDashboard
		} else {
			a.state = viewStatus
		}
	case "r":
		a.doReset()
	}
	return a, nil
}

func (a *App) doInit() {
	contact := true
	a.ctrl.InitializeRun(bridge.RunParams{
		PayloadVolume: &a.cfg.Demo.PayloadVolume,
		PayloadMass:   &a.cfg.Demo.PayloadMass,
		FloorTempA:    &a.cfg.Demo.FloorTemp,
		FloorContactA: &contact,
		FloorTempB:    &a.cfg.Demo.FloorTemp,
		FloorContactB: &contact,
	})
	a.result = nil
	a.status = "run " + a.ctrl.RunID() + " initialized"
}

func (a *App) doStep() {
	a.ctrl.PortalA.UpdateEnergy(a.cfg.Demo.StepSeconds)
	a.ctrl.PortalB.UpdateEnergy(a.cfg.Demo.StepSeconds)
	a.status = "portals advanced"
}

func (a *App) doBridge() {
	a.ctrl.FormBridge(nil)
	a.status = "bridge formed"
}

func (a *App) doTransfer() {
	res := a.ctrl.TransferPayload()
	a.result = &res
	if res.Success {
		a.status = "transfer complete"
	} else {
		a.status = "transfer failed: " + res.Reason
	}
}

func (a *App) doReset() {
	a.ctrl.Reset()
	a.result = nil
	a.charging = false
	a.status = "system reset"
}
