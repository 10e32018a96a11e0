// Package render turns networks and calculated paths into visual outputs.
//
// # Overview
//
// Two DOT producers cover the two things worth looking at:
//
//   - [NetworkToDOT] draws the raw block graph - every block and every
//     undirected connection, shaped by block kind. Useful while wiring a
//     design, before any calculation runs.
//   - [PathsToDOT] draws the calculated path set - one directed chain per
//     path with solved voltages and currents in the labels.
//
// Both emit Graphviz DOT; [RenderSVG] and [RenderPNG] rasterize it with the
// embedded Graphviz engine, so no external binary is needed.
//
//	dot := render.NetworkToDOT(net, render.Options{})
//	svg, err := render.RenderSVG(dot)
package render
