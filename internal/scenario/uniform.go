package scenario

import "fmt"

type Uniform struct {
	Velocity float64
	Salinity float64
	Area     float64
}

func NewUniform() *Uniform {
	return &Uniform{
		Velocity: 1.0,
		Salinity: 30.0,
		Area:     1.0,
	}
}

func (u *Uniform) Name() string { return "uniform" }

func (u *Uniform) Description() string {
	return "constant velocity, salinity and area: all transport is net flow"
}

func (u *Uniform) Build(g Grid) (*Fields, error) {
	return build(g, func(point) (float64, float64, float64) {
		return u.Velocity, u.Salinity, u.Area
	})
}

func (u *Uniform) GetParams() map[string]float64 {
	return map[string]float64{
		"velocity": u.Velocity,
		"salinity": u.Salinity,
		"area":     u.Area,
	}
}

func (u *Uniform) SetParam(name string, value float64) error {
	switch name {
	case "velocity":
		u.Velocity = value
	case "salinity":
		u.Salinity = value
	case "area":
		u.Area = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
