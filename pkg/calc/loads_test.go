package calc

import (
	"testing"

	"github.com/signalgrid/voltpath/pkg/model"
)

func TestAggregateLoadsSingleBranch(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))
	cons := mustItem(cat.Consumer("signal-10"))

	paths := []Path{livePath(
		&model.Block{ID: 1, Kind: model.KindSupply, Voltage: 120},
		&model.Block{ID: 2, Kind: model.KindConductor, Length: 100, Conductor: cable},
		&model.Block{ID: 3, Kind: model.KindLoad, Consumer: cons},
	)}

	aggregateLoads(paths)

	p := paths[0]
	for i := range p.Points {
		approx(t, "load at point", p.Points[i].LoadAtPoint, 1000)
	}
	approx(t, "load added at load", p.Load().AddedLoad, 1000)
	approx(t, "load added at conductor", p.Points[1].AddedLoad, 0)
	approx(t, "load added at supply", p.Points[0].AddedLoad, 0)
}

func TestAggregateLoadsSharedUpstream(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))
	cons := mustItem(cat.Consumer("signal-10"))

	supply := &model.Block{ID: 1, Kind: model.KindSupply, Voltage: 120}
	shared := &model.Block{ID: 2, Kind: model.KindConductor, Length: 50, Conductor: cable}
	busbar := &model.Block{ID: 3, Kind: model.KindBusbar}
	loadA := &model.Block{ID: 4, Kind: model.KindLoad, Consumer: cons}
	loadB := &model.Block{ID: 5, Kind: model.KindLoad, Consumer: cons}

	paths := []Path{
		livePath(supply, shared, busbar, loadA),
		livePath(supply, shared, busbar, loadB),
	}

	aggregateLoads(paths)

	// Both paths see the combined demand at every shared block, and the
	// loads themselves keep only their own demand.
	for _, p := range paths {
		approx(t, "supply load", p.Points[0].LoadAtPoint, 2000)
		approx(t, "shared conductor load", p.Points[1].LoadAtPoint, 2000)
		approx(t, "busbar load", p.Points[2].LoadAtPoint, 2000)
		approx(t, "leaf load", p.Points[3].LoadAtPoint, 1000)

		var sum float64
		for i := range p.Points {
			sum += p.Points[i].AddedLoad
		}
		approx(t, "telescoped sum", sum, 2000)
	}

	// The busbar carries the sibling branch's demand as its own addition.
	approx(t, "busbar added load", paths[0].Points[2].AddedLoad, 1000)
}

// TestAggregateLoadsNoDoubleCount wires the same load into both paths past
// the divergence. Each (block, load) pair must be counted once even when
// several paths traverse it.
func TestAggregateLoadsNoDoubleCount(t *testing.T) {
	cat := testCatalog(t)
	cons := mustItem(cat.Consumer("signal-10"))

	supply := &model.Block{ID: 1, Kind: model.KindSupply, Voltage: 120}
	busbar := &model.Block{ID: 2, Kind: model.KindBusbar}
	load := &model.Block{ID: 3, Kind: model.KindLoad, Consumer: cons}

	// The same supply-busbar-load chain appearing in two paths, as happens
	// when filtering leaves overlapping variants of one branch.
	paths := []Path{
		livePath(supply, busbar, load),
		livePath(supply, busbar, load),
	}

	aggregateLoads(paths)

	approx(t, "busbar load", paths[0].Points[1].LoadAtPoint, 1000)
	approx(t, "supply load", paths[0].Points[0].LoadAtPoint, 1000)
}
