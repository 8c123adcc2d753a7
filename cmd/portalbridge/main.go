package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/portalbridge/internal/bridge"
	"github.com/jask/portalbridge/internal/config"
	"github.com/jask/portalbridge/internal/tui"
)

func main() {
	headless := flag.Bool("headless", false, "run the scripted demo and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctrl := bridge.New(cfg.Sim)

	if *headless {
		runDemo(cfg, ctrl)
		return
	}

	p := tea.NewProgram(tui.New(cfg, ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui: %v", err)
	}
}

// runDemo performs one scripted transfer run and prints the audit trail.
func runDemo(cfg config.Config, ctrl *bridge.Controller) {
	contact := true
	ctrl.InitializeRun(bridge.RunParams{
		PayloadVolume: &cfg.Demo.PayloadVolume,
		PayloadMass:   &cfg.Demo.PayloadMass,
		FloorTempA:    &cfg.Demo.FloorTemp,
		FloorContactA: &contact,
		FloorTempB:    &cfg.Demo.FloorTemp,
		FloorContactB: &contact,
	})
	ctrl.PortalA.UpdateEnergy(cfg.Demo.StepSeconds)
	ctrl.PortalB.UpdateEnergy(cfg.Demo.StepSeconds)
	ctrl.FormBridge(nil)

	result := ctrl.TransferPayload()
	if result.Success {
		fmt.Println("Bridge transfer result: Success")
	} else {
		fmt.Printf("Bridge transfer result: Fail (%s)\n", result.Reason)
	}
	fmt.Println("Full status report:")
	for _, line := range ctrl.FullStatus() {
		fmt.Println(line)
	}

	ctrl.Reset()
	fmt.Println()
	fmt.Println("After reset:")
	for _, line := range ctrl.FullStatus() {
		fmt.Println(line)
	}
}
