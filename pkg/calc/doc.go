// Package calc implements the path-construction and electrical-calculation
// engine for low-voltage signalling power distribution networks.
//
// The engine derives every physical current-carrying path from each supply
// to its loads and computes, per path, cumulative distance, load demand,
// voltage drop, fault current and protective-device sizing against catalog
// equipment.
//
// # Architecture
//
// A calculation is a fixed sequence of stages over one shared path set.
// Stages are strictly sequential - later stages depend on fields written by
// earlier ones:
//
//  1. Path Builder: depth-first enumeration of every maximal simple path
//     from each supply
//  2. Topology Validator: rejects branch reconnection and cross-supply
//     block sharing
//  3. Path Filter: collapses non-branching terminals and trims paths to
//     end at a load
//  4. Forward Propagator: cumulative distance and nominal voltage per point
//  5. Load Aggregator: downstream demand per point, shared across branches
//  6. Electrical Solver: actual voltage, current, drop and conductor
//     sizing, load back to source
//  7. Impedance Solver: accumulated fault impedance, fault current and
//     breaker sizing, source to load
//
// The engine is a pure, synchronous function of a frozen network snapshot:
// no suspension points, no I/O, no partial results. All failures are
// design-time modeling errors carried as pkg/errors codes.
//
// # Usage
//
// Run the engine directly:
//
//	paths, err := calc.BuildSequentialPaths(net, cat, calc.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or through a Runner for caching, run IDs and timing:
//
//	runner := calc.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, net, cat, calc.Options{})
package calc
