package calc

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// prepare runs the stages the electrical solver depends on.
func prepare(t *testing.T, paths []Path) {
	t.Helper()
	if err := propagate(paths); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	aggregateLoads(paths)
}

func TestSolveElectricalAnchorsAtLoad(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))
	cons := mustItem(cat.Consumer("signal-10"))

	paths := []Path{livePath(
		&model.Block{ID: 1, Kind: model.KindSupply, Voltage: 120},
		&model.Block{ID: 2, Kind: model.KindConductor, Length: 100, Conductor: cable},
		&model.Block{ID: 3, Kind: model.KindLoad, Consumer: cons},
	)}
	prepare(t, paths)

	if err := solveElectrical(paths, cat, 0.10, discardLogger()); err != nil {
		t.Fatalf("solveElectrical: %v", err)
	}

	load := paths[0].Load()
	approx(t, "anchor voltage", load.Voltage, 108)
	approx(t, "anchor current", load.Current, 1000.0/108)
	approx(t, "anchor drop", load.VoltageDrop, 0)
}

func TestSizeConductor(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))
	cons := mustItem(cat.Consumer("signal-10"))

	paths := []Path{livePath(
		&model.Block{ID: 1, Kind: model.KindSupply, Voltage: 120},
		&model.Block{ID: 2, Kind: model.KindConductor, Length: 100, Conductor: cable},
		&model.Block{ID: 3, Kind: model.KindLoad, Consumer: cons},
	)}
	prepare(t, paths)

	if err := solveElectrical(paths, cat, 0.10, discardLogger()); err != nil {
		t.Fatalf("solveElectrical: %v", err)
	}

	pt := &paths[0].Points[1]
	current := 1000.0 / 108
	wantRate := 12.0 / (current * 0.1)
	approx(t, "theoretical drop rate", pt.TheoreticalDropRate, wantRate)

	// The suggestion is the largest catalog rate still inside the budget;
	// the booked drop uses the cable actually assigned to the block.
	if pt.SuggestedConductor != "2x6" {
		t.Errorf("suggested conductor = %q, want %q", pt.SuggestedConductor, "2x6")
	}
	approx(t, "suggested drop rate", pt.SuggestedDropRate, 7.4)
	approx(t, "selected drop rate", pt.SelectedDropRate, cable.VoltageDrop90)
	approx(t, "booked drop", pt.VoltageDrop, 0.1*current*cable.VoltageDrop90)

	wantZ := 2 * 0.1 * math.Sqrt(cable.Resistance90*cable.Resistance90+cable.Reactance*cable.Reactance)
	approx(t, "added impedance", pt.AddedImpedance, wantZ)
}

func TestSizeConductorCatalogExhausted(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))
	cons := mustItem(cat.Consumer("signal-10"))

	// 500 m run: the permitted drop rate falls below the thickest cable in
	// the catalog.
	paths := []Path{livePath(
		&model.Block{ID: 1, Kind: model.KindSupply, Voltage: 120},
		&model.Block{ID: 2, Kind: model.KindConductor, Length: 500, Conductor: cable},
		&model.Block{ID: 3, Kind: model.KindLoad, Consumer: cons},
	)}
	prepare(t, paths)

	err := solveElectrical(paths, cat, 0.10, discardLogger())
	if !vperrors.Is(err, vperrors.ErrCodeCatalogExhausted) {
		t.Fatalf("error = %v, want CATALOG_EXHAUSTED", err)
	}
}

func TestSolveTransformerReflection(t *testing.T) {
	cat := testCatalog(t)
	tx := mustItem(cat.Transformer("TR-230-120"))

	pt := newPoint(&model.Block{ID: 2, Kind: model.KindTransformerUPS, Transformer: tx})
	solveTransformer(&pt, 9.0, 108)

	a := tx.TurnsRatio()
	approx(t, "primary current", pt.PrimaryCurrent, 9.0/a)
	pti := tx.ImpedancePct / 100 * tx.PrimaryVoltage * tx.PrimaryVoltage / tx.Rating
	approx(t, "primary transformer impedance", pt.PrimaryTransformerImpedance, pti)
	approx(t, "drop", pt.VoltageDrop, 9.0/a*pti)
	approx(t, "primary voltage", pt.PrimaryVoltage,
		math.Sqrt(math.Pow(a*108, 2)+math.Pow(9.0/a*pti, 2)))
	approx(t, "added impedance", pt.AddedImpedance, pti/(a*a))
}
