// Package bridge implements the dual-portal bridge lifecycle: run
// initialization, bridge-strength derivation, one-shot payload transfer with
// energy accounting, and the cumulative audit log.
//
// Controller instances are NOT safe for concurrent use; every operation is a
// bounded, synchronous computation over in-memory state.
package bridge

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/jask/portalbridge/internal/config"
	"github.com/jask/portalbridge/internal/portal"
)

// DefaultResonanceFrequency is the design's nominal resonance, used when the
// configured base frequency is absent or non-positive.
const DefaultResonanceFrequency = 1000.0

const (
	minStrengthForTransfer = 0.5
	transferEfficiency     = 0.8
	minTransferEnergy      = 100.0 // joules
	overheadFraction       = 0.1
	stabilityThreshold     = 0.9
	stabilityPenalty       = 0.7
	maxStrengthMark        = 0.95
)

// Controller manages two linked portals, bridge formation, detune state, and
// the audit trail for every transfer run.
type Controller struct {
	PortalA *portal.Portal
	PortalB *portal.Portal

	detune    float64 // Hz, fixed at construction
	resonance float64 // nominal resonance the detune penalty is scaled by

	bridgeStrength float64 // 0..1, recomputed wholesale by FormBridge
	transferEnergy float64 // joules, last requested or executed transfer
	statusLog      []string
	runID          string // "" until InitializeRun

	newRunID func() string
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithRunIDGenerator replaces the default run-id source. Tests use a counter
// here to make runs reproducible.
func WithRunIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newRunID = gen }
}

// New builds a controller with portal A at the configured base frequency and
// portal B offset by the configured detune. Both portals charge at the
// configured energy rate.
func New(cfg config.Sim, opts ...Option) *Controller {
	base := cfg.ResonanceFrequency
	if base <= 0 {
		base = DefaultResonanceFrequency
	}
	c := &Controller{
		PortalA:   portal.New(base, cfg.EnergyRate),
		PortalB:   portal.New(base+cfg.DetuneDefault, cfg.EnergyRate),
		detune:    cfg.DetuneDefault,
		resonance: base,
		newRunID: func() string {
			return "run_" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunParams carries the optional payload and floor-sensor inputs for a run.
// Nil means the reading is absent; values are passed to the portals verbatim,
// without validation.
type RunParams struct {
	PayloadVolume *float64
	PayloadMass   *float64
	FloorTempA    *float64
	FloorContactA *bool
	FloorTempB    *float64
	FloorContactB *bool
}

// InitializeRun begins a logical run: resets both portals, senses the payload
// on both, records per-portal floor readings, clears the log, and assigns a
// fresh run id. Calling it again fully re-initializes.
func (c *Controller) InitializeRun(p RunParams) {
	c.PortalA.Reset()
	c.PortalB.Reset()
	c.PortalA.SensePayload(p.PayloadVolume, p.PayloadMass)
	c.PortalB.SensePayload(p.PayloadVolume, p.PayloadMass)
	c.PortalA.FloorSensor(p.FloorTempA, p.FloorContactA)
	c.PortalB.FloorSensor(p.FloorTempB, p.FloorContactB)
	c.statusLog = nil
	c.runID = c.newRunID()
	c.logf("[INFO] Run %s initialized.", c.runID)
}

// FormBridge derives bridge strength from the current portal and detune
// state. A nil energyInput defaults to the lesser of the two portals'
// energy. The result reflects only current state; repeated calls with
// identical state produce identical strength.
//
// Only portal A's stability enters the denominator. The asymmetry is part of
// the reference formula and is kept deliberately.
func (c *Controller) FormBridge(energyInput *float64) {
	in := math.Min(c.PortalA.Energy, c.PortalB.Energy)
	if energyInput != nil {
		in = *energyInput
	}
	if in < 0 {
		in = 0
	}
	c.transferEnergy = in

	minEnergy := c.PortalA.Energy * (1 + math.Abs(c.detune)/c.resonance)
	if den := minEnergy * c.PortalA.Stability; den > 0 {
		c.bridgeStrength = clamp(in/den, 0.0, 1.0)
	} else {
		c.bridgeStrength = 0.0
	}

	if c.PortalA.Stability < stabilityThreshold || c.PortalB.Stability < stabilityThreshold {
		c.bridgeStrength *= stabilityPenalty
		c.logf("[WARN] Portal stability below threshold - bridge degraded.")
	}

	if !(c.PortalA.SafetyStatus && c.PortalB.SafetyStatus) {
		c.bridgeStrength = 0.0
		c.logf("[ERROR] Safety failure - bridge formation blocked.")
	}

	if c.bridgeStrength >= maxStrengthMark {
		c.logf("[INFO] Bridge formed at maximum strength.")
	} else {
		c.logf("[INFO] Bridge strength updated: %.2f", c.bridgeStrength)
	}
}

// TransferResult is the structured outcome of a transfer attempt.
type TransferResult struct {
	Success           bool
	Reason            string // set on failure
	EnergyTransferred float64
	EnergyConsumed    float64
	PayloadsCleared   bool
	SystemReset       bool
}

// TransferPayload executes a payload transfer across the bridge. It consumes
// the current bridge strength: on success both portals are debited the
// overhead cost, payloads are cleared, and strength returns to zero, so an
// immediate second call fails the strength precondition.
func (c *Controller) TransferPayload() TransferResult {
	if c.bridgeStrength < minStrengthForTransfer {
		c.logf("TRANSFER FAIL: Bridge strength %.3f < 0.5 minimum", c.bridgeStrength)
		return TransferResult{Reason: "insufficient bridge strength"}
	}

	available := math.Min(c.PortalA.Energy, c.PortalB.Energy)
	c.transferEnergy = available * c.bridgeStrength * transferEfficiency

	if c.transferEnergy <= minTransferEnergy {
		c.logf("TRANSFER FAIL: Insufficient transfer energy %.1fJ", c.transferEnergy)
		return TransferResult{Reason: "insufficient transfer energy"}
	}

	consumed := c.transferEnergy * overheadFraction
	c.PortalA.DebitEnergy(consumed)
	c.PortalB.DebitEnergy(consumed)
	c.PortalA.ClearPayload()
	c.PortalB.ClearPayload()
	c.bridgeStrength = 0.0
	c.logf("TRANSFER SUCCESS: %.1fJ transferred - payloads cleared", c.transferEnergy)

	return TransferResult{
		Success:           true,
		EnergyTransferred: c.transferEnergy,
		EnergyConsumed:    consumed,
		PayloadsCleared:   true,
		SystemReset:       true,
	}
}

// FullStatus compiles the status report for both portals and the bridge. It
// is read-only and safe to call at any point, including before the first run.
func (c *Controller) FullStatus() []string {
	runID := c.runID
	if runID == "" {
		runID = "none"
	}
	report := []string{
		fmt.Sprintf("Run ID: %s", runID),
		fmt.Sprintf("Portal A freq: %.3f Hz, stability: %.2f, safety: %v",
			c.PortalA.Freq, c.PortalA.Stability, c.PortalA.SafetyStatus),
		fmt.Sprintf("Portal B freq: %.3f Hz, stability: %.2f, safety: %v",
			c.PortalB.Freq, c.PortalB.Stability, c.PortalB.SafetyStatus),
		fmt.Sprintf("Detune: %.3f Hz", c.detune),
		fmt.Sprintf("Bridge strength: %.2f, transfer energy: %.2f J", c.bridgeStrength, c.transferEnergy),
		"Status log:",
	}
	report = append(report, c.PortalA.ReportStatus()...)
	report = append(report, c.PortalB.ReportStatus()...)
	report = append(report, c.statusLog...)
	return report
}

// Reset ends the current run without starting a new one: portals back to
// baseline, bridge state zeroed, log cleared, run id unset.
func (c *Controller) Reset() {
	c.PortalA.Reset()
	c.PortalB.Reset()
	c.bridgeStrength = 0.0
	c.transferEnergy = 0.0
	c.statusLog = nil
	c.runID = ""
}

// BridgeStrength reports the current derived bridge strength in [0,1].
func (c *Controller) BridgeStrength() float64 { return c.bridgeStrength }

// TransferEnergy reports the last requested or executed transfer energy.
func (c *Controller) TransferEnergy() float64 { return c.transferEnergy }

// Detune reports the fixed frequency offset between the portals.
func (c *Controller) Detune() float64 { return c.detune }

// RunID reports the current run identifier, "" when no run is active.
func (c *Controller) RunID() string { return c.runID }

// StatusLog returns a copy of the accumulated audit log.
func (c *Controller) StatusLog() []string {
	out := make([]string, len(c.statusLog))
	copy(out, c.statusLog)
	return out
}

func (c *Controller) logf(format string, args ...any) {
	c.statusLog = append(c.statusLog, fmt.Sprintf(format, args...))
}

// clamp bounds x into [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
