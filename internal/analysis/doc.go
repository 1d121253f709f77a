// Package analysis inspects the tidal part of a decomposition.
//
// [TidalSpectrum] takes the tidally varying, depth-averaged component of a
// field at one space element and returns its power spectrum:
//
//	ps, err := analysis.TidalSpectrum(d, fields.Driving, 3, analysis.Options{})
//	fmt.Println(ps.DominantPeriod) // in time steps
//
// Masked samples are replaced by the series mean before the transform.
package analysis
