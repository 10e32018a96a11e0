package calc

import (
	"math"

	"github.com/signalgrid/voltpath/pkg/model"
)

// breakerImpedanceFactor converts accumulated loop impedance into the
// minimum circuit breaker rating, matching the sizing rule used by the
// catalog's protective devices.
const breakerImpedanceFactor = 9.5

// solveImpedance runs a left-to-right pass per path accumulating
// source-referred fault impedance. The supply seeds the accumulator with
// its own source impedance; conductors and transformers contribute the
// AddedImpedance the electrical solver booked for them.
//
// A transformer starts a new impedance domain on its secondary side: the
// impedance seen at the previous point is reflected through the turns ratio
// squared and combined with the transformer's own secondary-referred
// impedance, replacing the primary-side accumulator.
//
// FaultCurrent at a point is the current available under a zero-impedance
// fault there; rows hosting a circuit breaker additionally get their
// minimum rating and the In ratio of fault current to selected rating.
func solveImpedance(paths []Path) {
	for pi := range paths {
		points := paths[pi].Points
		var running, previous float64
		for i := range points {
			pt := &points[i]
			switch pt.Kind {
			case model.KindSupply:
				pt.AddedImpedance = pt.block.Impedance
				running = pt.AddedImpedance
			case model.KindTransformerUPS:
				a := pt.block.Transformer.TurnsRatio()
				pt.SecondarySourceImpedance = previous / (a * a)
				running = pt.AddedImpedance + pt.SecondarySourceImpedance
			default:
				running += pt.AddedImpedance
			}
			pt.Impedance = running
			if running > 0 {
				pt.FaultCurrent = pt.IdealVoltage / running
			}

			if pt.Kind == model.KindRow && pt.SelectedBreakerRating > 0 {
				pt.MinBreakerRating = math.Ceil(running / breakerImpedanceFactor)
				pt.In = pt.FaultCurrent / pt.SelectedBreakerRating
			}
			previous = running
		}
	}
}
