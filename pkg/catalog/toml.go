package catalog

import (
	"os"

	"github.com/BurntSushi/toml"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
)

// file is the on-disk TOML shape of a catalog.
//
// Example:
//
//	[[conductor]]
//	name = "2x1.5"
//	cores = 2
//	cross_section = 1.5
//	resistance_90 = 14.5
//	reactance = 0.115
//	voltage_drop_90 = 29.0
//
//	[[transformer]]
//	name = "TX-650"
//	rating = 650
//	impedance_pct = 4.0
//	primary_voltage = 230
//	secondary_voltage = 120
//
//	[[consumer]]
//	name = "signal-head"
//	load = 25
type file struct {
	Conductors   []Conductor      `toml:"conductor"`
	Transformers []TransformerUPS `toml:"transformer"`
	Consumers    []Consumer       `toml:"consumer"`
}

// Parse decodes a TOML catalog from raw bytes.
// Duplicate or unnamed items are reported as INVALID_CATALOG errors.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "decode catalog")
	}

	c := New()
	for _, cond := range f.Conductors {
		if err := c.AddConductor(cond); err != nil {
			return nil, vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "conductor %q", cond.Name)
		}
	}
	for _, t := range f.Transformers {
		if err := c.AddTransformer(t); err != nil {
			return nil, vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "transformer %q", t.Name)
		}
	}
	for _, cons := range f.Consumers {
		if err := c.AddConsumer(cons); err != nil {
			return nil, vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "consumer %q", cons.Name)
		}
	}
	return c, nil
}

// LoadFile reads and parses a TOML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vperrors.Wrap(vperrors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, vperrors.Wrap(vperrors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	return Parse(data)
}
