// Package catalog models the equipment catalog the calculation engine sizes
// equipment against: conductors, transformer/UPS units and consumers.
//
// Catalog items are read-only during calculation. The engine looks conductors
// up by their 90 °C voltage-drop rating and never mutates an item, so a
// single Catalog may be shared by concurrent calculations.
package catalog

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownConductor is returned by [Catalog.Conductor] when no
	// conductor with the given name exists.
	ErrUnknownConductor = errors.New("unknown conductor")

	// ErrUnknownTransformer is returned by [Catalog.Transformer] when no
	// transformer/UPS with the given name exists.
	ErrUnknownTransformer = errors.New("unknown transformer")

	// ErrUnknownConsumer is returned by [Catalog.Consumer] when no consumer
	// with the given name exists.
	ErrUnknownConsumer = errors.New("unknown consumer")

	// ErrDuplicateItem is returned by the Add methods when an item with the
	// same name already exists in the catalog.
	ErrDuplicateItem = errors.New("duplicate catalog item")

	// ErrInvalidItemName is returned by the Add methods when the item name
	// is empty. All catalog items must have non-empty names.
	ErrInvalidItemName = errors.New("catalog item name must not be empty")
)

// Conductor is a catalog cable type. Resistance, reactance and voltage-drop
// coefficients are per kilometer of run; the 60 °C and 90 °C variants are
// the manufacturer ratings at those operating temperatures.
type Conductor struct {
	Name          string  `json:"name" toml:"name"`
	Cores         int     `json:"cores" toml:"cores"`
	CrossSection  float64 `json:"cross_section" toml:"cross_section"`     // mm²
	Resistance60  float64 `json:"resistance_60" toml:"resistance_60"`     // Ω/km at 60 °C
	Resistance90  float64 `json:"resistance_90" toml:"resistance_90"`     // Ω/km at 90 °C
	Reactance     float64 `json:"reactance" toml:"reactance"`             // Ω/km
	VoltageDrop60 float64 `json:"voltage_drop_60" toml:"voltage_drop_60"` // V/(A·km) at 60 °C
	VoltageDrop90 float64 `json:"voltage_drop_90" toml:"voltage_drop_90"` // V/(A·km) at 90 °C
}

// TransformerUPS is a catalog transformer or UPS unit.
type TransformerUPS struct {
	Name             string  `json:"name" toml:"name"`
	Rating           float64 `json:"rating" toml:"rating"`                       // VA
	ImpedancePct     float64 `json:"impedance_pct" toml:"impedance_pct"`         // %Z
	PrimaryVoltage   float64 `json:"primary_voltage" toml:"primary_voltage"`     // V
	SecondaryVoltage float64 `json:"secondary_voltage" toml:"secondary_voltage"` // V
}

// TurnsRatio returns the primary-to-secondary turns ratio a = Vp/Vs.
func (t *TransformerUPS) TurnsRatio() float64 {
	return t.PrimaryVoltage / t.SecondaryVoltage
}

// Consumer is a catalog load type with its demand in VA.
type Consumer struct {
	Name string  `json:"name" toml:"name"`
	Load float64 `json:"load" toml:"load"` // VA
}

// Catalog holds the available equipment, with conductors kept in ascending
// order of their 90 °C voltage-drop rating so [Catalog.BestConductor] can
// find the closest safe match.
//
// The zero value is not usable - use New to create a valid Catalog.
// Catalog is safe for concurrent reads once populated; the Add methods are
// not safe to call while a calculation is in flight.
type Catalog struct {
	conductors   []*Conductor
	transformers map[string]*TransformerUPS
	consumers    map[string]*Consumer
	byName       map[string]*Conductor
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		transformers: make(map[string]*TransformerUPS),
		consumers:    make(map[string]*Consumer),
		byName:       make(map[string]*Conductor),
	}
}

// AddConductor adds a conductor, keeping the drop-rating order intact.
// Returns ErrInvalidItemName for empty names or ErrDuplicateItem when a
// conductor with the same name already exists.
func (c *Catalog) AddConductor(cond Conductor) error {
	if cond.Name == "" {
		return ErrInvalidItemName
	}
	if _, exists := c.byName[cond.Name]; exists {
		return ErrDuplicateItem
	}
	item := &cond
	c.byName[item.Name] = item
	idx, _ := slices.BinarySearchFunc(c.conductors, item, func(a, b *Conductor) int {
		switch {
		case a.VoltageDrop90 < b.VoltageDrop90:
			return -1
		case a.VoltageDrop90 > b.VoltageDrop90:
			return 1
		}
		return 0
	})
	c.conductors = slices.Insert(c.conductors, idx, item)
	return nil
}

// AddTransformer adds a transformer/UPS unit.
func (c *Catalog) AddTransformer(t TransformerUPS) error {
	if t.Name == "" {
		return ErrInvalidItemName
	}
	if _, exists := c.transformers[t.Name]; exists {
		return ErrDuplicateItem
	}
	c.transformers[t.Name] = &t
	return nil
}

// AddConsumer adds a consumer.
func (c *Catalog) AddConsumer(cons Consumer) error {
	if cons.Name == "" {
		return ErrInvalidItemName
	}
	if _, exists := c.consumers[cons.Name]; exists {
		return ErrDuplicateItem
	}
	c.consumers[cons.Name] = &cons
	return nil
}

// Conductor returns the conductor with the given name.
func (c *Catalog) Conductor(name string) (*Conductor, error) {
	cond, ok := c.byName[name]
	if !ok {
		return nil, ErrUnknownConductor
	}
	return cond, nil
}

// Transformer returns the transformer/UPS with the given name.
func (c *Catalog) Transformer(name string) (*TransformerUPS, error) {
	t, ok := c.transformers[name]
	if !ok {
		return nil, ErrUnknownTransformer
	}
	return t, nil
}

// Consumer returns the consumer with the given name.
func (c *Catalog) Consumer(name string) (*Consumer, error) {
	cons, ok := c.consumers[name]
	if !ok {
		return nil, ErrUnknownConsumer
	}
	return cons, nil
}

// Conductors returns all conductors in ascending 90 °C drop-rating order.
// The returned slice is the catalog's own index - treat it as read-only.
func (c *Catalog) Conductors() []*Conductor { return c.conductors }

// Transformers returns all transformer/UPS units in name order.
func (c *Catalog) Transformers() []*TransformerUPS {
	out := make([]*TransformerUPS, 0, len(c.transformers))
	for _, t := range c.transformers {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *TransformerUPS) int {
		return compareNames(a.Name, b.Name)
	})
	return out
}

// Consumers returns all consumers in name order.
func (c *Catalog) Consumers() []*Consumer {
	out := make([]*Consumer, 0, len(c.consumers))
	for _, cons := range c.consumers {
		out = append(out, cons)
	}
	slices.SortFunc(out, func(a, b *Consumer) int {
		return compareNames(a.Name, b.Name)
	})
	return out
}

// BestConductor returns the conductor whose 90 °C voltage-drop rating is the
// largest value not exceeding maxRate - the closest safe match, never an
// under-rated one. The second return is false when no conductor qualifies.
func (c *Catalog) BestConductor(maxRate float64) (*Conductor, bool) {
	var best *Conductor
	for _, cond := range c.conductors {
		if cond.VoltageDrop90 > maxRate {
			break
		}
		best = cond
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

func compareNames(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
