package calc

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/signalgrid/voltpath/pkg/catalog"
	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

// solveElectrical runs a right-to-left pass per path (load back to source)
// computing actual voltage, current and voltage drop under the allowed-drop
// budget, and sizing conductors against the catalog.
//
// The load terminal anchors the pass at the worst permitted voltage
// (nominal minus the full drop budget); every earlier point recovers the
// next point's drop and accumulates its current. When the next point is a
// transformer, its primary-side voltage and current substitute for the
// secondary-side values.
func solveElectrical(paths []Path, cat *catalog.Catalog, maxDrop float64, logger *log.Logger) error {
	for pi := range paths {
		points := paths[pi].Points
		last := &points[len(points)-1]
		last.Voltage = last.IdealVoltage * (1 - maxDrop)
		last.Current = last.AddedLoad / last.Voltage
		last.VoltageDrop = 0

		for i := len(points) - 2; i >= 0; i-- {
			pt := &points[i]
			next := &points[i+1]

			// nextVoltage is the next point's voltage before its own drop
			// is recovered; it feeds the transformer reflection formula.
			var voltage, nextVoltage, current float64
			if next.Kind == model.KindTransformerUPS {
				voltage = next.PrimaryVoltage
				nextVoltage = next.PrimaryVoltage
				current = next.PrimaryCurrent
			} else {
				voltage = next.Voltage + next.VoltageDrop
				nextVoltage = next.Voltage
				current = next.Current
			}

			// More voltage available than nominal is physically impossible;
			// stop advancing toward the source and keep the last valid
			// values rather than producing nonsensical upstream results.
			if voltage > pt.IdealVoltage {
				logger.Debug("voltage exceeds nominal, truncating path solve",
					"block", pt.BlockID, "voltage", voltage, "ideal", pt.IdealVoltage)
				break
			}

			pt.Voltage = voltage
			pt.Current = current + pt.AddedLoad/pt.Voltage

			switch pt.Kind {
			case model.KindConductor:
				if err := sizeConductor(pt, cat); err != nil {
					return err
				}
			case model.KindTransformerUPS:
				solveTransformer(pt, current, nextVoltage)
			}
		}
	}
	return nil
}

// sizeConductor computes the theoretical voltage-drop rate the point may
// exhibit while keeping the path within budget, suggests the closest safe
// catalog conductor, and books the actual drop and impedance of the
// assigned cable (the block's own conductor, not the suggestion).
func sizeConductor(pt *Point, cat *catalog.Catalog) error {
	pt.TheoreticalDropRate = (pt.IdealVoltage - pt.Voltage) / (pt.Current * pt.DistanceFromSource)

	best, ok := cat.BestConductor(pt.TheoreticalDropRate)
	if !ok {
		return errors.New(errors.ErrCodeCatalogExhausted,
			"no catalog conductor within %g V/(A km) at %s %q (id %d)",
			pt.TheoreticalDropRate, pt.Kind, pt.Name, pt.BlockID)
	}
	pt.SuggestedConductor = best.Name
	pt.SuggestedDropRate = best.VoltageDrop90

	assigned := pt.block.Conductor
	pt.SelectedDropRate = assigned.VoltageDrop90
	pt.VoltageDrop = pt.AddedDistance * pt.Current * assigned.VoltageDrop90
	pt.AddedImpedance = 2 * pt.AddedDistance *
		math.Sqrt(assigned.Resistance90*assigned.Resistance90+assigned.Reactance*assigned.Reactance)
	return nil
}

// solveTransformer computes the primary-side quantities of a transformer
// point from the secondary-side voltage and current seen at the next point.
// The primary voltage combines the reflected secondary voltage with the
// transformer's own drop as orthogonal components.
func solveTransformer(pt *Point, secondaryCurrent, secondaryVoltage float64) {
	tx := pt.block.Transformer
	a := tx.TurnsRatio()

	pt.PrimaryCurrent = secondaryCurrent / a
	pt.PrimaryTransformerImpedance = tx.ImpedancePct / 100 * tx.PrimaryVoltage * tx.PrimaryVoltage / tx.Rating
	pt.VoltageDrop = pt.PrimaryCurrent * pt.PrimaryTransformerImpedance
	pt.PrimaryVoltage = math.Sqrt(math.Pow(a*secondaryVoltage, 2) + math.Pow(pt.VoltageDrop, 2))
	pt.AddedImpedance = pt.PrimaryTransformerImpedance / (a * a)
}
