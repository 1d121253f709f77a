package scenario

import "fmt"

// Wedge is a time-invariant two-layer estuary: fresh water flows seaward in
// the bottom layers while salt water flows landward on top.
type Wedge struct {
	Velocity float64
	Salinity float64
	Area     float64
	// Fraction of the depth axis occupied by the upper layer.
	Interface float64
}

func NewWedge() *Wedge {
	return &Wedge{
		Velocity:  1.0,
		Salinity:  30.0,
		Area:      1.0,
		Interface: 0.5,
	}
}

func (w *Wedge) Name() string { return "wedge" }

func (w *Wedge) Description() string {
	return "two opposing layers: all transport is estuarine circulation"
}

func (w *Wedge) Build(g Grid) (*Fields, error) {
	split := int(w.Interface * float64(g.Depth))
	return build(g, func(p point) (float64, float64, float64) {
		if p.z < split {
			return w.Velocity, w.Salinity, w.Area
		}
		return -w.Velocity, 0, w.Area
	})
}

func (w *Wedge) GetParams() map[string]float64 {
	return map[string]float64{
		"velocity":  w.Velocity,
		"salinity":  w.Salinity,
		"area":      w.Area,
		"interface": w.Interface,
	}
}

func (w *Wedge) SetParam(name string, value float64) error {
	switch name {
	case "velocity":
		w.Velocity = value
	case "salinity":
		w.Salinity = value
	case "area":
		w.Area = value
	case "interface":
		if value < 0 || value > 1 {
			return fmt.Errorf("interface must be within [0, 1], got %f", value)
		}
		w.Interface = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
