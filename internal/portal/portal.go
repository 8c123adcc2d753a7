package portal

import "fmt"

// Floor sensor envelope. Contact loss or overheating trips the safety
// interlock; readings outside the nominal band degrade stability.
const (
	maxSafeTemp    = 50.0
	minNominalTemp = -210.0
)

// Payload holds the sensed payload characteristics.
type Payload struct {
	Volume float64 // m^3
	Mass   float64 // kg
}

// Portal models one resonance portal: charge state, platform sensors, and the
// derived stability/safety readings the bridge controller consumes. Portals
// are exclusively owned by their controller and are not safe for concurrent
// use.
type Portal struct {
	Freq         float64 // resonance frequency, Hz
	Power        float64 // charge rate, W
	Energy       float64 // stored energy, J
	Stability    float64 // 0..1
	SafetyStatus bool
	Payload      *Payload

	floorTemp    *float64
	floorContact *bool
}

// New constructs a portal at its discharged baseline.
func New(freq, power float64) *Portal {
	p := &Portal{Freq: freq, Power: power}
	p.Reset()
	return p
}

// Reset returns the portal to baseline: discharged, fully stable, safe, no
// payload, no floor readings.
func (p *Portal) Reset() {
	p.Energy = 0
	p.Stability = 1.0
	p.SafetyStatus = true
	p.Payload = nil
	p.floorTemp = nil
	p.floorContact = nil
}

// SensePayload records a payload when both readings are present. Missing
// readings are tolerated; the portal simply stays empty.
func (p *Portal) SensePayload(volume, mass *float64) {
	if volume == nil || mass == nil {
		return
	}
	p.Payload = &Payload{Volume: *volume, Mass: *mass}
}

// FloorSensor records platform readings and rederives stability and the
// safety interlock. Nil readings leave the corresponding state untouched.
func (p *Portal) FloorSensor(temp *float64, contact *bool) {
	if contact != nil {
		p.floorContact = contact
		if !*contact {
			p.SafetyStatus = false
		}
	}
	if temp != nil {
		p.floorTemp = temp
		if *temp > maxSafeTemp {
			p.SafetyStatus = false
		}
		if *temp < minNominalTemp || *temp > maxSafeTemp {
			p.Stability *= 0.85
		}
	}
}

// UpdateEnergy integrates the charge rate over dt seconds. An unstable portal
// charges proportionally slower. Non-positive dt is a no-op.
func (p *Portal) UpdateEnergy(dt float64) {
	if dt <= 0 {
		return
	}
	p.Energy += p.Power * dt * p.Stability
}

// DebitEnergy withdraws amount joules, clamped at the zero floor.
func (p *Portal) DebitEnergy(amount float64) {
	p.Energy -= amount
	if p.Energy < 0 {
		p.Energy = 0
	}
}

// ClearPayload drops the sensed payload after a completed transfer.
func (p *Portal) ClearPayload() {
	p.Payload = nil
}

// ReportStatus compiles the portal's own status lines.
func (p *Portal) ReportStatus() []string {
	lines := []string{
		fmt.Sprintf("Portal %.3f Hz: energy %.1f J, stability %.2f, safety %v",
			p.Freq, p.Energy, p.Stability, p.SafetyStatus),
	}
	if p.Payload != nil {
		lines = append(lines, fmt.Sprintf("  payload: %.3f m^3, %.1f kg", p.Payload.Volume, p.Payload.Mass))
	} else {
		lines = append(lines, "  payload: none")
	}
	switch {
	case p.floorTemp != nil && p.floorContact != nil:
		lines = append(lines, fmt.Sprintf("  floor: %.1f C, contact %v", *p.floorTemp, *p.floorContact))
	case p.floorTemp != nil:
		lines = append(lines, fmt.Sprintf("  floor: %.1f C, contact unknown", *p.floorTemp))
	case p.floorContact != nil:
		lines = append(lines, fmt.Sprintf("  floor: no temp, contact %v", *p.floorContact))
	default:
		lines = append(lines, "  floor: no reading")
	}
	return lines
}
