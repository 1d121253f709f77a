package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/saltflux/internal/scenario"
)

const (
	DefaultTimes     = 24
	DefaultSpace     = 20
	DefaultDepth     = 10
	DefaultTimeAxis  = 0
	DefaultDepthAxis = -1
)

type Config struct {
	Scenario  string             `yaml:"scenario"`
	Grid      GridConfig         `yaml:"grid"`
	TimeAxis  int                `yaml:"time_axis"`
	DepthAxis int                `yaml:"depth_axis"`
	Seed      int64              `yaml:"seed"`
	Noise     float64            `yaml:"noise"`
	Params    map[string]float64 `yaml:"params,omitempty"`
}

type GridConfig struct {
	Times  int `yaml:"times"`
	Space  int `yaml:"space"`
	Space2 int `yaml:"space2"`
	Depth  int `yaml:"depth"`
}

func (g GridConfig) Grid() scenario.Grid {
	return scenario.Grid{Times: g.Times, Space: g.Space, Space2: g.Space2, Depth: g.Depth}
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: "tidal",
		Grid: GridConfig{
			Times: DefaultTimes,
			Space: DefaultSpace,
			Depth: DefaultDepth,
		},
		TimeAxis:  DefaultTimeAxis,
		DepthAxis: DefaultDepthAxis,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply builds the configured scenario with its parameter overrides.
func (c *Config) Apply(r *scenario.Registry) (scenario.Scenario, error) {
	sc, err := r.Get(c.Scenario)
	if err != nil {
		return nil, err
	}
	for name, v := range c.Params {
		if err := sc.SetParam(name, v); err != nil {
			return nil, fmt.Errorf("config: %s: %w", c.Scenario, err)
		}
	}
	return sc, nil
}
