package scenario

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestGridShape(t *testing.T) {
	tests := []struct {
		grid Grid
		want []int
	}{
		{Grid{Times: 4, Space: 3, Depth: 2}, []int{4, 3, 2}},
		{Grid{Times: 4, Space: 3, Space2: 5, Depth: 2}, []int{4, 3, 5, 2}},
	}

	for _, tt := range tests {
		if got := tt.grid.Shape(); !slices.Equal(got, tt.want) {
			t.Errorf("Shape() = %v, want %v", got, tt.want)
		}
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{"zero times", Grid{Times: 0, Space: 1, Depth: 1}},
		{"zero space", Grid{Times: 1, Space: 0, Depth: 1}},
		{"zero depth", Grid{Times: 1, Space: 1, Depth: 0}},
		{"negative space2", Grid{Times: 1, Space: 1, Space2: -1, Depth: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grid.Validate(); !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("expected ErrInvalidGrid, got %v", err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	want := []string{"masked", "tidal", "uniform", "wedge"}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	for _, name := range want {
		sc, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", name, err)
		}
		if sc.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, sc.Name())
		}
		if sc.Description() == "" {
			t.Errorf("%s: empty description", name)
		}
	}

	if _, err := r.Get("river"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestBuildShapes(t *testing.T) {
	grids := []Grid{
		{Times: 6, Space: 4, Depth: 5},
		{Times: 6, Space: 4, Space2: 3, Depth: 5},
	}

	r := NewRegistry()
	for _, name := range r.List() {
		for _, g := range grids {
			sc, _ := r.Get(name)
			f, err := sc.Build(g)
			if err != nil {
				t.Fatalf("%s: Build failed: %v", name, err)
			}
			for _, fld := range []struct {
				label string
				shape []int
			}{
				{"driving", f.Driving.Shape()},
				{"scalar", f.Scalar.Shape()},
				{"area", f.Area.Shape()},
			} {
				if !slices.Equal(fld.shape, g.Shape()) {
					t.Errorf("%s %s: shape %v, want %v", name, fld.label, fld.shape, g.Shape())
				}
			}
		}
	}
}

func TestBuild_InvalidGrid(t *testing.T) {
	_, err := NewUniform().Build(Grid{Times: 1, Space: 0, Depth: 1})
	if !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
}

func TestWedgeLayers(t *testing.T) {
	f, err := NewWedge().Build(Grid{Times: 2, Space: 2, Depth: 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if f.Driving.At(0, 0, 4) != 1 || f.Driving.At(0, 0, 5) != -1 {
		t.Errorf("velocity layers: %v %v", f.Driving.At(0, 0, 4), f.Driving.At(0, 0, 5))
	}
	if f.Scalar.At(1, 1, 4) != 30 || f.Scalar.At(1, 1, 5) != 0 {
		t.Errorf("salinity layers: %v %v", f.Scalar.At(1, 1, 4), f.Scalar.At(1, 1, 5))
	}
}

func TestMaskedBlock(t *testing.T) {
	f, err := NewMasked().Build(Grid{Times: 10, Space: 10, Depth: 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := f.Area.MaskedCount(); got != 10*5*5 {
		t.Errorf("masked count = %d, want 250", got)
	}
	if !f.Driving.IsMasked(3, 5, 5) || f.Driving.IsMasked(3, 4, 9) || f.Driving.IsMasked(3, 9, 4) {
		t.Error("mask does not match the [:, 5:, 5:] block")
	}
}

func TestTidalPeriodic(t *testing.T) {
	sc := NewTidal()
	f, err := sc.Build(Grid{Times: 25, Space: 3, Depth: 4})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// One period is 12 steps.
	a, b := f.Driving.At(1, 1, 2), f.Driving.At(13, 1, 2)
	if math.Abs(a-b) > 1e-12 {
		t.Errorf("velocity not periodic: %v vs %v", a, b)
	}
	for _, v := range f.Scalar.Valid() {
		if v < 0 {
			t.Fatalf("negative salinity %v", v)
		}
	}
	for _, v := range f.Area.Valid() {
		if v <= 0 {
			t.Fatalf("non-positive area %v", v)
		}
	}
}

func TestSetParam(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		sc, _ := r.Get(name)
		for param, val := range sc.GetParams() {
			if err := sc.SetParam(param, val); err != nil {
				t.Errorf("%s: SetParam(%q) failed: %v", name, param, err)
			}
		}
		if err := sc.SetParam("bogus", 1); !errors.Is(err, ErrUnknownParam) {
			t.Errorf("%s: expected ErrUnknownParam, got %v", name, err)
		}
	}

	w := NewWedge()
	if err := w.SetParam("interface", 1.5); err == nil {
		t.Error("expected error for interface outside [0, 1]")
	}
}

func TestArrange(t *testing.T) {
	f, _ := NewTidal().Build(Grid{Times: 5, Space: 4, Depth: 3})

	tests := []struct {
		time, depth int
		want        []int
	}{
		{0, -1, []int{5, 4, 3}},
		{2, 0, []int{3, 4, 5}},
		{1, 2, []int{4, 5, 3}},
		{-1, 1, []int{4, 3, 5}},
	}

	for _, tt := range tests {
		a, err := f.Arrange(tt.time, tt.depth)
		if err != nil {
			t.Fatalf("Arrange(%d, %d) failed: %v", tt.time, tt.depth, err)
		}
		if got := a.Scalar.Shape(); !slices.Equal(got, tt.want) {
			t.Errorf("Arrange(%d, %d) shape = %v, want %v", tt.time, tt.depth, got, tt.want)
		}
	}

	moved, _ := f.Arrange(2, 0)
	if moved.Driving.At(2, 1, 3) != f.Driving.At(3, 1, 2) {
		t.Error("Arrange(2, 0) misplaced values")
	}

	if _, err := f.Arrange(1, 1); !errors.Is(err, ErrInvalidArrangement) {
		t.Errorf("expected ErrInvalidArrangement, got %v", err)
	}
}

func TestPerturb(t *testing.T) {
	f, _ := NewMasked().Build(Grid{Times: 4, Space: 6, Depth: 6})

	if same := f.Perturb(0, 1); same != f {
		t.Error("zero noise should return the input")
	}

	a := f.Perturb(0.1, 7)
	b := f.Perturb(0.1, 7)
	if !slices.Equal(a.Driving.Valid(), b.Driving.Valid()) {
		t.Error("same seed should give the same noise")
	}
	if slices.Equal(a.Driving.Valid(), f.Driving.Valid()) {
		t.Error("noise was not applied")
	}
	if a.Driving.MaskedCount() != f.Driving.MaskedCount() || a.Scalar.MaskedCount() != f.Scalar.MaskedCount() {
		t.Error("noise changed the mask")
	}
	if a.Area != f.Area {
		t.Error("area should be shared")
	}
}
