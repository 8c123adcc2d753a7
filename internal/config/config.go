package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Sim  Sim
	Demo Demo
	UI   UI
}

// Sim holds the physical parameters shared by both portals.
type Sim struct {
	ResonanceFrequency float64 `mapstructure:"resonance_frequency"`
	DetuneDefault      float64 `mapstructure:"detune_default"`
	EnergyRate         float64 `mapstructure:"energy_rate"`
}

// Demo holds the scripted demo's payload and sensor inputs.
type Demo struct {
	PayloadVolume float64 `mapstructure:"payload_volume"`
	PayloadMass   float64 `mapstructure:"payload_mass"`
	FloorTemp     float64 `mapstructure:"floor_temp"`
	StepSeconds   float64 `mapstructure:"step_seconds"`
}

// UI holds presentation settings.
type UI struct {
	RefreshMS int `mapstructure:"refresh_ms"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// PORTALBRIDGE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("sim.resonance_frequency", 1000.0)
	v.SetDefault("sim.detune_default", 0.5)
	v.SetDefault("sim.energy_rate", 250.0)
	v.SetDefault("demo.payload_volume", 0.1)
	v.SetDefault("demo.payload_mass", 75.0)
	v.SetDefault("demo.floor_temp", -196.0)
	v.SetDefault("demo.step_seconds", 2.0)
	v.SetDefault("ui.refresh_ms", 250)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PORTALBRIDGE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "portalbridge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PORTALBRIDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
