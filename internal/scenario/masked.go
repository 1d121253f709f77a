package scenario

import (
	"fmt"
	"math"
)

// Masked is a uniform estuary whose deep seaward corner is dry: from
// Cutoff along space and depth onwards every field is masked.
type Masked struct {
	Velocity float64
	Salinity float64
	Area     float64
	Cutoff   float64
}

func NewMasked() *Masked {
	return &Masked{
		Velocity: 1.0,
		Salinity: 30.0,
		Area:     1.0,
		Cutoff:   0.5,
	}
}

func (m *Masked) Name() string { return "masked" }

func (m *Masked) Description() string {
	return "uniform estuary with a masked corner block of reduced depth"
}

func (m *Masked) Build(g Grid) (*Fields, error) {
	sx := int(m.Cutoff * float64(g.Space))
	sz := int(m.Cutoff * float64(g.Depth))
	nan := math.NaN()
	return build(g, func(p point) (float64, float64, float64) {
		if p.x >= sx && p.z >= sz {
			return nan, nan, nan
		}
		return m.Velocity, m.Salinity, m.Area
	})
}

func (m *Masked) GetParams() map[string]float64 {
	return map[string]float64{
		"velocity": m.Velocity,
		"salinity": m.Salinity,
		"area":     m.Area,
		"cutoff":   m.Cutoff,
	}
}

func (m *Masked) SetParam(name string, value float64) error {
	switch name {
	case "velocity":
		m.Velocity = value
	case "salinity":
		m.Salinity = value
	case "area":
		m.Area = value
	case "cutoff":
		if value < 0 || value > 1 {
			return fmt.Errorf("cutoff must be within [0, 1], got %f", value)
		}
		m.Cutoff = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
