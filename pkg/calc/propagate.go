package calc

import (
	"math"

	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

// voltageTolerance is the absolute tolerance used when matching the running
// voltage against a transformer's rated primary or secondary voltage.
const voltageTolerance = 0.01

// propagate runs a single left-to-right pass per path, maintaining a
// running distance and nominal voltage. Conductors add their length (in
// kilometers) to the running distance; supplies set the voltage baseline;
// transformers convert the running voltage between their rated sides; every
// other block passes both through unchanged.
func propagate(paths []Path) error {
	for pi := range paths {
		points := paths[pi].Points
		var distance, voltage float64
		for i := range points {
			pt := &points[i]
			switch pt.Kind {
			case model.KindSupply:
				voltage = pt.block.Voltage
			case model.KindConductor:
				pt.AddedDistance = pt.block.Length / 1000
				distance += pt.AddedDistance
			case model.KindTransformerUPS:
				converted, err := convertVoltage(pt, voltage)
				if err != nil {
					return err
				}
				voltage = converted
			}
			pt.DistanceFromSource = distance
			pt.IdealVoltage = voltage
		}
	}
	return nil
}

// convertVoltage maps the incoming running voltage to the other side of the
// transformer. The incoming voltage must match either rated side within
// voltageTolerance; anything else is a wiring error in the model.
func convertVoltage(pt *Point, incoming float64) (float64, error) {
	tx := pt.block.Transformer
	switch {
	case math.Abs(incoming-tx.PrimaryVoltage) <= voltageTolerance:
		return tx.SecondaryVoltage, nil
	case math.Abs(incoming-tx.SecondaryVoltage) <= voltageTolerance:
		return tx.PrimaryVoltage, nil
	}
	return 0, errors.New(errors.ErrCodeVoltageMismatch,
		"transformer %q (id %d) fed with %g V, rated %g/%g V",
		pt.Name, pt.BlockID, incoming, tx.PrimaryVoltage, tx.SecondaryVoltage)
}
