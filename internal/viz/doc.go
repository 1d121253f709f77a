// Package viz renders decomposition results for the terminal.
//
//   - [FluxTable]: styled summary table of the four fluxes and the total
//   - [Sparkline]: one-line profile of a flux along space
//   - [Heatmap]: shaded map of a flux over two space axes
//
// Masked values are drawn as gaps. Colors follow the current [Theme].
package viz
