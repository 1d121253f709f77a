// Package scenario builds synthetic estuaries for the salt flux
// decomposition.
//
// Each [Scenario] produces the driving (velocity), scalar (salinity) and area
// fields on a [Grid] laid out as (time, space, depth), or
// (time, space, space2, depth) when Grid.Space2 is set:
//
//   - [Uniform]: constant velocity, salinity and area
//   - [Wedge]: two-layer salt wedge with opposing layer velocities
//   - [Masked]: uniform estuary with a masked (dry) corner block
//   - [Tidal]: periodic tide with estuarine exchange flow and tidal straining
//
// Scenarios implement GetParams/SetParam for runtime adjustment:
//
//	sc, _ := scenario.NewRegistry().Get("tidal")
//	_ = sc.SetParam("period", 24)
//	fields, err := sc.Build(scenario.Grid{Times: 48, Space: 20, Depth: 10})
package scenario
