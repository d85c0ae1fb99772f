package config

import (
	"fmt"
	"os"

	"github.com/san-kum/projsim/internal/dynamo"
	"github.com/san-kum/projsim/internal/integrators"
	"github.com/san-kum/projsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS   = 60
	DefaultTheme = "day"
)

type Config struct {
	Params        dynamo.Params `yaml:"params"`
	Integrator    string        `yaml:"integrator"`
	Dt            float64       `yaml:"dt"`
	MaxFlightTime float64       `yaml:"max_flight_time"`
	Theme         string        `yaml:"theme"`
	FPS           int           `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:        dynamo.DefaultParams(),
		Integrator:    integrators.Default,
		Dt:            sim.DefaultDt,
		MaxFlightTime: sim.DefaultMaxFlightTime,
		Theme:         DefaultTheme,
		FPS:           DefaultFPS,
	}
}

// Load reads a YAML file over the defaults, so a file only needs the
// fields it changes.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads a YAML file over cfg, replacing only the fields the file
// sets.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Theme != "day" && c.Theme != "night" {
		return fmt.Errorf("unknown theme: %s", c.Theme)
	}
	return nil
}

func (c *Config) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.MaxFlightTime = c.MaxFlightTime
	return cfg
}

// Simulator builds the trajectory simulator this configuration describes.
func (c *Config) Simulator() (*sim.Simulator, error) {
	integ, err := integrators.Get(c.Integrator)
	if err != nil {
		return nil, err
	}
	return sim.New(integ, c.SimConfig())
}
