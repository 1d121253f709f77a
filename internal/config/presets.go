package config

import "sort"

var Presets = map[string]map[string]*Config{
	"uniform": {
		"reference": {
			Scenario: "uniform", Grid: GridConfig{Times: 10, Space: 10, Depth: 10}, DepthAxis: -1,
		},
	},
	"wedge": {
		"reference": {
			Scenario: "wedge", Grid: GridConfig{Times: 10, Space: 10, Depth: 10}, DepthAxis: -1,
		},
		"shallow": {
			Scenario: "wedge", Grid: GridConfig{Times: 10, Space: 10, Depth: 20}, DepthAxis: -1,
			Params: map[string]float64{"interface": 0.25},
		},
	},
	"masked": {
		"reference": {
			Scenario: "masked", Grid: GridConfig{Times: 10, Space: 10, Depth: 10}, DepthAxis: -1,
		},
	},
	"tidal": {
		"spring": {
			Scenario: "tidal", Grid: GridConfig{Times: 48, Space: 20, Depth: 10}, DepthAxis: -1,
			Params: map[string]float64{"tidal_velocity": 1.5, "tidal_range": 2.0},
		},
		"neap": {
			Scenario: "tidal", Grid: GridConfig{Times: 48, Space: 20, Depth: 10}, DepthAxis: -1,
			Params: map[string]float64{"tidal_velocity": 0.6, "tidal_range": 0.5, "stratification": 8},
		},
		"channel": {
			Scenario: "tidal", Grid: GridConfig{Times: 24, Space: 12, Space2: 5, Depth: 8}, DepthAxis: -1,
		},
		"noisy": {
			Scenario: "tidal", Grid: GridConfig{Times: 48, Space: 20, Depth: 10}, DepthAxis: -1,
			Seed: 42, Noise: 0.05,
		},
	},
}

func GetPreset(name, preset string) *Config {
	presets, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg, ok := presets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(name string) []string {
	presets, ok := Presets[name]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
