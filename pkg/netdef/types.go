package netdef

import (
	"github.com/signalgrid/voltpath/pkg/catalog"
	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

// =============================================================================
// Document - Network Serialization Format
// =============================================================================

// Document is the canonical serialization format for distribution networks.
// Used for API requests, storage, caching, and cross-tool exchange.
//
// The format is human-readable and designed for round-trip fidelity:
// import → calculate → export → re-import produces identical results.
// Equipment is referenced by catalog name, not embedded, so documents stay
// small and a single catalog revision governs every stored network.
type Document struct {
	Name        string       `json:"name,omitempty" bson:"name,omitempty"`
	Blocks      []BlockDoc   `json:"blocks" bson:"blocks"`
	Connections []Connection `json:"connections" bson:"connections"`
}

// BlockDoc is the serialized form of a single network block. Only the
// attributes meaningful for the block's kind are expected to be set; the
// rest are omitted.
type BlockDoc struct {
	ID     int    `json:"id" bson:"id"`
	Parent *int   `json:"parent,omitempty" bson:"parent,omitempty"` // Containment parent, absent for roots
	Kind   string `json:"kind" bson:"kind"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"`

	Voltage   float64 `json:"voltage,omitempty" bson:"voltage,omitempty"`     // Supply nominal volts
	Impedance float64 `json:"impedance,omitempty" bson:"impedance,omitempty"` // Supply source ohms

	Length    float64 `json:"length,omitempty" bson:"length,omitempty"`       // Conductor run meters
	Equipment string  `json:"equipment,omitempty" bson:"equipment,omitempty"` // Catalog item name

	BreakerRating float64 `json:"breaker_rating,omitempty" bson:"breaker_rating,omitempty"` // Row breaker amps
}

// Connection is an undirected edge between two block IDs. The from/to
// naming is a serialization convention only; power may flow either way.
type Connection struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// =============================================================================
// Network ↔ Document Conversion
// =============================================================================

// FromNetwork converts a network to its serialization format.
// Blocks are emitted in ascending ID order for deterministic output;
// attached equipment is referenced by its catalog name.
func FromNetwork(n *model.Network) Document {
	blocks := n.Blocks()
	out := Document{
		Blocks:      make([]BlockDoc, len(blocks)),
		Connections: make([]Connection, 0, n.ConnectionCount()),
	}

	for i, b := range blocks {
		out.Blocks[i] = blockDoc(b)
	}

	for _, c := range n.Connections() {
		out.Connections = append(out.Connections, Connection{From: c.Left, To: c.Right})
	}

	return out
}

// ToNetwork converts a document to a network, resolving equipment references
// against the given catalog. Returns INVALID_NETWORK for structural problems
// (unknown kinds, bad connections) and INVALID_CATALOG for equipment names
// the catalog does not carry. A nil catalog is allowed as long as no block
// references equipment.
func ToNetwork(doc Document, cat *catalog.Catalog) (*model.Network, error) {
	n := model.New()

	for _, bd := range doc.Blocks {
		kind, ok := model.KindFromString(bd.Kind)
		if !ok {
			return nil, vperrors.New(vperrors.ErrCodeInvalidNetwork, "block %d: unknown kind %q", bd.ID, bd.Kind)
		}

		b := model.Block{
			ID:            bd.ID,
			ParentID:      -1,
			Kind:          kind,
			Name:          bd.Name,
			Voltage:       bd.Voltage,
			Impedance:     bd.Impedance,
			Length:        bd.Length,
			BreakerRating: bd.BreakerRating,
		}
		if bd.Parent != nil {
			b.ParentID = *bd.Parent
		}

		if bd.Equipment != "" {
			if err := attachEquipment(&b, bd.Equipment, cat); err != nil {
				return nil, err
			}
		}

		if err := n.AddBlock(b); err != nil {
			return nil, vperrors.Wrap(vperrors.ErrCodeInvalidNetwork, err, "add block %d", bd.ID)
		}
	}

	for _, c := range doc.Connections {
		if err := n.Connect(c.From, c.To); err != nil {
			return nil, vperrors.Wrap(vperrors.ErrCodeInvalidNetwork, err, "connect %d-%d", c.From, c.To)
		}
	}

	return n, nil
}

// attachEquipment resolves a catalog reference onto the block slot selected
// by its kind.
func attachEquipment(b *model.Block, name string, cat *catalog.Catalog) error {
	if cat == nil {
		return vperrors.New(vperrors.ErrCodeInvalidCatalog, "block %d references %q but no catalog is loaded", b.ID, name)
	}

	switch b.Kind {
	case model.KindConductor:
		cond, err := cat.Conductor(name)
		if err != nil {
			return vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "block %d", b.ID)
		}
		b.Conductor = cond
	case model.KindTransformerUPS, model.KindAlternator:
		tr, err := cat.Transformer(name)
		if err != nil {
			return vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "block %d", b.ID)
		}
		b.Transformer = tr
	case model.KindLoad:
		cons, err := cat.Consumer(name)
		if err != nil {
			return vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "block %d", b.ID)
		}
		b.Consumer = cons
	default:
		return vperrors.New(vperrors.ErrCodeInvalidNetwork,
			"block %d: kind %s carries no equipment but names %q", b.ID, b.Kind, name)
	}
	return nil
}

// blockDoc converts a model block to its serialization form.
// This is the single point of conversion for all network→document output.
func blockDoc(b *model.Block) BlockDoc {
	doc := BlockDoc{
		ID:            b.ID,
		Kind:          b.Kind.String(),
		Name:          b.Name,
		Voltage:       b.Voltage,
		Impedance:     b.Impedance,
		Length:        b.Length,
		Equipment:     b.EquipmentName(),
		BreakerRating: b.BreakerRating,
	}
	if b.ParentID >= 0 {
		parent := b.ParentID
		doc.Parent = &parent
	}
	return doc
}
