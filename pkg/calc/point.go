package calc

import (
	"fmt"
	"strings"

	"github.com/signalgrid/voltpath/pkg/model"
)

// Point is one occurrence of a block within one path. Occurrences are
// independent values: when the same block appears in several paths, each
// path carries its own copy, and each pipeline stage mutates the copies in
// place.
//
// Fields start at their zero values and are progressively filled by the
// stages: the builder writes identity, the propagator distance and ideal
// voltage, the aggregator loads, the electrical solver voltage/current/drop
// and conductor sizing, the impedance solver fault data and breaker sizing.
type Point struct {
	BlockID       int        `json:"block_id"`
	Kind          model.Kind `json:"kind"`
	Name          string     `json:"name,omitempty"`
	EquipmentName string     `json:"equipment,omitempty"`

	// Forward Propagator.
	DistanceFromSource float64 `json:"distance_from_source"`     // km
	AddedDistance      float64 `json:"added_distance,omitempty"` // km, conductors only
	IdealVoltage       float64 `json:"ideal_voltage"`            // V, nominal ignoring drop

	// Load Aggregator.
	LoadAtPoint float64 `json:"load_at_point"`        // VA at or downstream
	AddedLoad   float64 `json:"added_load,omitempty"` // VA introduced here

	// Electrical Solver.
	Voltage             float64 `json:"voltage"`                         // V under drop constraints
	Current             float64 `json:"current"`                         // A
	VoltageDrop         float64 `json:"voltage_drop,omitempty"`          // V across this point
	TheoreticalDropRate float64 `json:"theoretical_drop_rate,omitempty"` // V/(A·km) limit
	SuggestedConductor  string  `json:"suggested_conductor,omitempty"`
	SuggestedDropRate   float64 `json:"suggested_drop_rate,omitempty"`
	SelectedDropRate    float64 `json:"selected_drop_rate,omitempty"`

	// Transformer primary-side results.
	PrimaryVoltage              float64 `json:"primary_voltage,omitempty"`
	PrimaryCurrent              float64 `json:"primary_current,omitempty"`
	PrimaryTransformerImpedance float64 `json:"primary_transformer_impedance,omitempty"`
	SecondarySourceImpedance    float64 `json:"secondary_source_impedance,omitempty"`

	// Impedance Solver.
	AddedImpedance        float64 `json:"added_impedance,omitempty"` // Ω
	Impedance             float64 `json:"impedance,omitempty"`       // Ω, source-referred
	FaultCurrent          float64 `json:"fault_current,omitempty"`   // A
	MinBreakerRating      float64 `json:"min_breaker_rating,omitempty"`
	SelectedBreakerRating float64 `json:"selected_breaker_rating,omitempty"`
	In                    float64 `json:"in,omitempty"` // fault current / selected rating

	// block is the source block, shared read-only across copies. It is nil
	// on points decoded from JSON; only the live pipeline uses it.
	block *model.Block
}

// newPoint creates the initial point for a block. Only identity fields and
// the selected breaker rating are set; the stages fill in the rest.
func newPoint(b *model.Block) Point {
	return Point{
		BlockID:               b.ID,
		Kind:                  b.Kind,
		Name:                  b.Name,
		EquipmentName:         b.EquipmentName(),
		SelectedBreakerRating: b.BreakerRating,
		block:                 b,
	}
}

// Path is an ordered sequence of points from a supply toward a load.
// Index 0 is always a supply; after filtering, the last index is always a
// load.
type Path struct {
	Points []Point `json:"points"`
}

// clone returns an independent copy of the path. Point values are copied,
// so mutations on the clone never show through to the original.
func (p Path) clone() Path {
	points := make([]Point, len(p.Points))
	copy(points, p.Points)
	return Path{Points: points}
}

// Supply returns the first point of the path.
func (p Path) Supply() *Point { return &p.Points[0] }

// Load returns the last point of the path. Only meaningful after
// filtering, when paths are guaranteed to end at a load.
func (p Path) Load() *Point { return &p.Points[len(p.Points)-1] }

// Len returns the number of points in the path.
func (p Path) Len() int { return len(p.Points) }

// BlockIDs returns the path's block IDs in order.
func (p Path) BlockIDs() []int {
	ids := make([]int, len(p.Points))
	for i := range p.Points {
		ids[i] = p.Points[i].BlockID
	}
	return ids
}

// ContainsBlock reports whether the path visits the given block ID.
func (p Path) ContainsBlock(id int) bool {
	for i := range p.Points {
		if p.Points[i].BlockID == id {
			return true
		}
	}
	return false
}

// String renders the path as its block-ID chain, e.g. "1 -> 5 -> 9".
// Used in topology diagnostics.
func (p Path) String() string {
	parts := make([]string, len(p.Points))
	for i := range p.Points {
		parts[i] = fmt.Sprintf("%d", p.Points[i].BlockID)
	}
	return strings.Join(parts, " -> ")
}
