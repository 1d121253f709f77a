package decomp

import "github.com/san-kum/saltflux/internal/field"

// Reducer collapses one or more axes of a field.
type Reducer func(*field.Field) *field.Field

// normalized is reduce(f*area) / reduce(area): an area-weighted average. A
// cross-section that reduces to zero area comes out masked.
func (d *Decomposer) normalized(reduce Reducer, f *field.Field) *field.Field {
	return reduce(f.Mul(d.area)).Div(reduce(d.area))
}

// Component1 is the tide-averaged, depth-integrated value of f: the net-flow
// baseline. It has the space axes only.
func (d *Decomposer) Component1(f *field.Field) *field.Field {
	return d.normalized(d.AverageTimeIntegrateDepth, f)
}

// Component2 is the depth-integrated, time-varying value of f with the net
// baseline removed. A nil c1 is computed from f.
func (d *Decomposer) Component2(f, c1 *field.Field) *field.Field {
	if c1 == nil {
		c1 = d.Component1(f)
	}
	return d.normalized(d.IntegrateDepth, f).Sub(d.ExpandTime(c1))
}

// Remainder is f with components 1 and 2 removed. It keeps the full shape.
func (d *Decomposer) Remainder(f, c1, c2 *field.Field) *field.Field {
	if c1 == nil {
		c1 = d.Component1(f)
	}
	if c2 == nil {
		c2 = d.Component2(f, c1)
	}
	return f.Sub(d.ExpandDepth(c2.Add(d.ExpandTime(c1))))
}

// Component3 is the time-averaged remainder: the estuarine circulation. When
// rem is nil it is derived from f, otherwise f is ignored.
func (d *Decomposer) Component3(f, rem *field.Field) *field.Field {
	if rem == nil {
		rem = d.Remainder(f, nil, nil)
	}
	return d.normalized(d.AverageTime, rem)
}

// Component4 is the remainder minus component 3: the time-dependent shear.
// When rem is nil it is derived from f; a nil c3 is derived from rem.
func (d *Decomposer) Component4(f, rem, c3 *field.Field) *field.Field {
	if rem == nil {
		rem = d.Remainder(f, nil, nil)
	}
	if c3 == nil {
		c3 = d.Component3(nil, rem)
	}
	return rem.Sub(d.ExpandTime(c3))
}
