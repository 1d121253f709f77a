package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/saltflux/internal/scenario"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "tidal" {
		t.Errorf("expected scenario tidal, got %s", cfg.Scenario)
	}
	if err := cfg.Grid.Grid().Validate(); err != nil {
		t.Errorf("default grid invalid: %v", err)
	}
	if cfg.DepthAxis != -1 {
		t.Errorf("expected depth axis -1, got %d", cfg.DepthAxis)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Scenario = "wedge"
	cfg.Grid.Space2 = 3
	cfg.TimeAxis = 2
	cfg.DepthAxis = 0
	cfg.Params = map[string]float64{"interface": 0.3}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Scenario != "wedge" || got.Grid.Space2 != 3 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.TimeAxis != 2 || got.DepthAxis != 0 {
		t.Errorf("axes = (%d, %d), want (2, 0)", got.TimeAxis, got.DepthAxis)
	}
	if got.Params["interface"] != 0.3 {
		t.Errorf("expected interface 0.3, got %f", got.Params["interface"])
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := Save(path, &Config{Scenario: "uniform", Grid: GridConfig{Times: 3, Space: 2, Depth: 4}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Grid.Times != 3 || cfg.Scenario != "uniform" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("wedge", "shallow")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["interface"] != 0.25 {
		t.Errorf("expected interface 0.25, got %f", cfg.Params["interface"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("tidal", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "spring"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("tidal")
	if len(presets) == 0 {
		t.Error("expected presets for tidal")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestPresetsBuild(t *testing.T) {
	r := scenario.NewRegistry()
	for name := range Presets {
		for _, p := range ListPresets(name) {
			cfg := GetPreset(name, p)
			if cfg.Scenario != name {
				t.Errorf("%s/%s: scenario %q", name, p, cfg.Scenario)
			}
			sc, err := cfg.Apply(r)
			if err != nil {
				t.Fatalf("%s/%s: apply failed: %v", name, p, err)
			}
			if _, err := sc.Build(cfg.Grid.Grid()); err != nil {
				t.Errorf("%s/%s: build failed: %v", name, p, err)
			}
		}
	}
}

func TestApply_UnknownParam(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]float64{"bogus": 1}
	if _, err := cfg.Apply(scenario.NewRegistry()); !errors.Is(err, scenario.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
