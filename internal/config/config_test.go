package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// point at a missing file so only defaults apply
	t.Setenv("PORTALBRIDGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.ResonanceFrequency != 1000.0 {
		t.Errorf("resonance_frequency = %v, want 1000", cfg.Sim.ResonanceFrequency)
	}
	if cfg.Sim.DetuneDefault != 0.5 {
		t.Errorf("detune_default = %v, want 0.5", cfg.Sim.DetuneDefault)
	}
	if cfg.Sim.EnergyRate != 250.0 {
		t.Errorf("energy_rate = %v, want 250", cfg.Sim.EnergyRate)
	}
	if cfg.Demo.PayloadMass != 75.0 {
		t.Errorf("payload_mass = %v, want 75", cfg.Demo.PayloadMass)
	}
	if cfg.Demo.FloorTemp != -196.0 {
		t.Errorf("floor_temp = %v, want -196", cfg.Demo.FloorTemp)
	}
	if cfg.UI.RefreshMS != 250 {
		t.Errorf("refresh_ms = %v, want 250", cfg.UI.RefreshMS)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[sim]
resonance_frequency = 2000.0
detune_default = 1.25

[ui]
refresh_ms = 100
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORTALBRIDGE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.ResonanceFrequency != 2000.0 {
		t.Errorf("resonance_frequency = %v, want 2000", cfg.Sim.ResonanceFrequency)
	}
	if cfg.Sim.DetuneDefault != 1.25 {
		t.Errorf("detune_default = %v, want 1.25", cfg.Sim.DetuneDefault)
	}
	if cfg.UI.RefreshMS != 100 {
		t.Errorf("refresh_ms = %v, want 100", cfg.UI.RefreshMS)
	}
	// unset keys keep their defaults
	if cfg.Sim.EnergyRate != 250.0 {
		t.Errorf("energy_rate = %v, want 250", cfg.Sim.EnergyRate)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORTALBRIDGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PORTALBRIDGE_SIM_DETUNE_DEFAULT", "3.5")
	t.Setenv("PORTALBRIDGE_SIM_ENERGY_RATE", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.DetuneDefault != 3.5 {
		t.Errorf("detune_default = %v, want 3.5", cfg.Sim.DetuneDefault)
	}
	if cfg.Sim.EnergyRate != 500.0 {
		t.Errorf("energy_rate = %v, want 500", cfg.Sim.EnergyRate)
	}
}
