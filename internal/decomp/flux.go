package decomp

import (
	"fmt"
	"time"

	"github.com/san-kum/saltflux/internal/field"
)

// Kind identifies one of the four salt flux components.
type Kind int

const (
	NetFlow Kind = iota
	TidalOscillation
	EstuarineCirculation
	TidalShear

	numKinds = 4
)

// Kinds lists the flux components in decomposition order.
var Kinds = [numKinds]Kind{NetFlow, TidalOscillation, EstuarineCirculation, TidalShear}

func (k Kind) String() string {
	switch k {
	case NetFlow:
		return "net flow"
	case TidalOscillation:
		return "tidal oscillation"
	case EstuarineCirculation:
		return "estuarine circulation"
	case TidalShear:
		return "time-dependent shear"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// recipe describes one flux: component is applied to both the driving and
// the scalar field, area to the area field, and reduce to their product.
type recipe struct {
	component Reducer
	area      Reducer
	reduce    Reducer
}

func (d *Decomposer) recipe(k Kind) recipe {
	switch k {
	case NetFlow:
		return recipe{
			component: d.Component1,
			area:      d.AverageTimeIntegrateDepth,
			reduce:    field.Identity,
		}
	case TidalOscillation:
		return recipe{
			component: func(f *field.Field) *field.Field { return d.Component2(f, nil) },
			area:      d.IntegrateDepth,
			reduce:    d.AverageTime,
		}
	case EstuarineCirculation:
		return recipe{
			component: func(f *field.Field) *field.Field { return d.Component3(f, nil) },
			area:      d.AverageTime,
			reduce:    d.IntegrateDepth,
		}
	case TidalShear:
		return recipe{
			component: func(f *field.Field) *field.Field { return d.Component4(f, nil, nil) },
			area:      field.Identity,
			reduce:    d.AverageTimeIntegrateDepth,
		}
	}
	panic(fmt.Sprintf("decomp: unknown flux kind %d", int(k)))
}

func (d *Decomposer) assemble(r recipe) *field.Field {
	product := r.component(d.drive).Mul(r.component(d.scalar)).Mul(r.area(d.area))
	return r.reduce(product)
}

// Flux returns the flux of kind k, computing it on first use. The result has
// the space axes only and is shared between callers.
func (d *Decomposer) Flux(k Kind) *field.Field {
	if k < 0 || k >= numKinds {
		panic(fmt.Sprintf("decomp: unknown flux kind %d", int(k)))
	}
	slot := &d.fluxes[k]
	slot.once.Do(func() {
		start := time.Now()
		slot.val = d.assemble(d.recipe(k))
		d.logger.Debug("flux computed", "kind", k.String(), "elapsed", time.Since(start))
	})
	return slot.val
}

func (d *Decomposer) Flux1() *field.Field { return d.Flux(NetFlow) }
func (d *Decomposer) Flux2() *field.Field { return d.Flux(TidalOscillation) }
func (d *Decomposer) Flux3() *field.Field { return d.Flux(EstuarineCirculation) }
func (d *Decomposer) Flux4() *field.Field { return d.Flux(TidalShear) }

// Fluxes returns all four fluxes, computing missing ones in order.
func (d *Decomposer) Fluxes() [numKinds]*field.Field {
	var out [numKinds]*field.Field
	for _, k := range Kinds {
		out[k] = d.Flux(k)
	}
	return out
}

// Total is the full tide-averaged, depth-integrated salt transport of the
// undecomposed fields.
func (d *Decomposer) Total() *field.Field {
	d.total.once.Do(func() {
		d.total.val = d.AverageTimeIntegrateDepth(d.drive.Mul(d.scalar).Mul(d.area))
	})
	return d.total.val
}

// Closure is Total minus the sum of the four fluxes. It vanishes up to
// rounding when all fields share one mask.
func (d *Decomposer) Closure() *field.Field {
	fx := d.Fluxes()
	sum := fx[0].Add(fx[1]).Add(fx[2]).Add(fx[3])
	return d.Total().Sub(sum)
}
