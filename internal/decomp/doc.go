// Package decomp decomposes a three-dimensional salt flux into four
// additive transport mechanisms.
//
// A [Decomposer] holds three equally shaped fields laid out over time,
// space and depth: the driving field (signed flow velocity in the dominant
// direction), the scalar field (salinity) and the area field (cross-section
// normal to the flow). Each field is split into components by
// cross-section-weighted averaging:
//
//   - [Decomposer.Component1]: tide-averaged, depth-integrated (net flow)
//   - [Decomposer.Component2]: tide-varying, depth-integrated (tidal oscillation)
//   - [Decomposer.Component3]: tide-averaged, depth-varying (estuarine circulation)
//   - [Decomposer.Component4]: tide- and depth-varying (time-dependent shear)
//
// Matching components of the driving and scalar fields combine with a
// reduced area into the fluxes [NetFlow], [TidalOscillation],
// [EstuarineCirculation] and [TidalShear]. Every flux keeps only the space
// axes.
//
// # Example
//
//	d, err := decomp.New(velocity, salinity, area)
//	if err != nil {
//	    return err
//	}
//	fluxes := d.Fluxes()
//	net := fluxes[decomp.NetFlow]
//
// # Thread Safety
//
// Fluxes are computed lazily, once per Decomposer, and are safe to read from
// several goroutines. The input fields are held, not copied: callers must
// not mutate them after [New], and must not mutate returned fluxes.
package decomp
