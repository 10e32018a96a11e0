package model

import (
	"fmt"

	"github.com/signalgrid/voltpath/pkg/catalog"
)

// Kind identifies the role a block plays in the distribution network.
type Kind int

const (
	// KindSupply is a power source. Every calculated path starts at one.
	KindSupply Kind = iota
	// KindConductor is a cable run with a physical length and an assigned
	// catalog conductor.
	KindConductor
	// KindTransformerUPS converts between its primary and secondary rated
	// voltages.
	KindTransformerUPS
	// KindAlternator is a standby source wired behind a transfer
	// arrangement. It passes voltage through unchanged.
	KindAlternator
	// KindLoad consumes power; paths are trimmed to end at their last load.
	KindLoad
	// KindTerminal is a wiring point. Terminals that are not genuine branch
	// points are collapsed out of calculated paths.
	KindTerminal
	// KindRow is a distribution row; a row may host a circuit breaker.
	KindRow
	// KindBusbar distributes power to several rows.
	KindBusbar
	// KindLocation is a containment grouping with no electrical role.
	KindLocation
	// KindExternalBusbar feeds equipment outside the modeled location.
	KindExternalBusbar
)

var kindNames = map[Kind]string{
	KindSupply:         "supply",
	KindConductor:      "conductor",
	KindTransformerUPS: "transformer",
	KindAlternator:     "alternator",
	KindLoad:           "load",
	KindTerminal:       "terminal",
	KindRow:            "row",
	KindBusbar:         "busbar",
	KindLocation:       "location",
	KindExternalBusbar: "external-busbar",
}

// String returns the lower-case kind name used in serialization and
// diagnostics.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindFromString resolves a serialized kind name. The second return is
// false for unrecognized names.
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler so kinds serialize as their
// names rather than integers.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := KindFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown block kind %q", string(text))
	}
	*k = parsed
	return nil
}

// Block is a vertex in the distribution network. The Kind tag selects which
// of the electrical attributes are meaningful; the rest stay at their zero
// values. Blocks are read-only during calculation.
//
// Equipment assignment is a queryable state: the catalog pointers are nil
// until equipment is attached, and [Block.HasEquipment] reports the state
// without panicking. Callers that need equipment use the typed accessors
// and handle the missing case explicitly.
type Block struct {
	ID       int    // Unique identifier within a network
	ParentID int    // Containment parent, -1 for roots
	Kind     Kind   // Role tag
	Name     string // Display name

	// Supply attributes.
	Voltage   float64 // Nominal volts
	Impedance float64 // Source impedance in ohms, may be 0

	// Conductor attributes.
	Length    float64            // Run length in meters
	Conductor *catalog.Conductor // Assigned cable, nil if unassigned

	// TransformerUPS / Alternator attributes.
	Transformer *catalog.TransformerUPS // nil if unassigned

	// Load attributes.
	Consumer *catalog.Consumer // nil if unassigned

	// Row attributes.
	BreakerRating float64 // Selected circuit breaker rating in amps, 0 if none
}

// RequiresEquipment reports whether this block kind must carry catalog
// equipment before a calculation may run. Conductors additionally require a
// positive length; a zero-length conductor counts as missing equipment.
func (b *Block) RequiresEquipment() bool {
	switch b.Kind {
	case KindConductor, KindTransformerUPS, KindAlternator, KindLoad:
		return true
	}
	return false
}

// HasEquipment reports whether the equipment required by this block kind is
// attached. Kinds that require none always report true.
func (b *Block) HasEquipment() bool {
	switch b.Kind {
	case KindConductor:
		return b.Conductor != nil && b.Length > 0
	case KindTransformerUPS, KindAlternator:
		return b.Transformer != nil
	case KindLoad:
		return b.Consumer != nil
	}
	return true
}

// EquipmentName returns the name of the attached equipment, or "" when none
// is attached or the kind carries none.
func (b *Block) EquipmentName() string {
	switch b.Kind {
	case KindConductor:
		if b.Conductor != nil {
			return b.Conductor.Name
		}
	case KindTransformerUPS, KindAlternator:
		if b.Transformer != nil {
			return b.Transformer.Name
		}
	case KindLoad:
		if b.Consumer != nil {
			return b.Consumer.Name
		}
	}
	return ""
}

// IsStructural reports whether the block only routes power without an
// electrical transformation of its own (terminals, rows, busbars,
// locations). Cycles through structural blocks are legal in the raw graph.
func (b *Block) IsStructural() bool {
	switch b.Kind {
	case KindTerminal, KindRow, KindBusbar, KindLocation, KindExternalBusbar:
		return true
	}
	return false
}
