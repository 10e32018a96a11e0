package catalog

import (
	"errors"
	"testing"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := New()
	conductors := []Conductor{
		{Name: "2x1.5", Cores: 2, CrossSection: 1.5, Resistance90: 14.5, Reactance: 0.115, VoltageDrop90: 29.0},
		{Name: "2x2.5", Cores: 2, CrossSection: 2.5, Resistance90: 8.9, Reactance: 0.110, VoltageDrop90: 18.0},
		{Name: "2x6", Cores: 2, CrossSection: 6, Resistance90: 3.7, Reactance: 0.100, VoltageDrop90: 7.4},
		{Name: "2x16", Cores: 2, CrossSection: 16, Resistance90: 1.4, Reactance: 0.095, VoltageDrop90: 2.9},
	}
	for _, cond := range conductors {
		if err := c.AddConductor(cond); err != nil {
			t.Fatalf("AddConductor(%s): %v", cond.Name, err)
		}
	}
	return c
}

func TestConductorOrdering(t *testing.T) {
	c := testCatalog(t)

	var prev float64 = -1
	for _, cond := range c.Conductors() {
		if cond.VoltageDrop90 < prev {
			t.Fatalf("conductors not sorted by VoltageDrop90: %v", c.Conductors())
		}
		prev = cond.VoltageDrop90
	}
}

func TestBestConductor(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name    string
		maxRate float64
		want    string
		wantOK  bool
	}{
		{"ExactMatch", 18.0, "2x2.5", true},
		{"BetweenRatings", 20.0, "2x2.5", true},
		{"AboveAll", 100.0, "2x1.5", true},
		{"JustBelowSmallest", 2.8, "", false},
		{"Zero", 0, "", false},
		{"Negative", -1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.BestConductor(tt.maxRate)
			if ok != tt.wantOK {
				t.Fatalf("BestConductor(%g) ok = %v, want %v", tt.maxRate, ok, tt.wantOK)
			}
			if ok && got.Name != tt.want {
				t.Errorf("BestConductor(%g) = %s, want %s", tt.maxRate, got.Name, tt.want)
			}
		})
	}
}

func TestAddDuplicates(t *testing.T) {
	c := New()
	if err := c.AddConductor(Conductor{Name: "2x1.5"}); err != nil {
		t.Fatal(err)
	}
	if err := c.AddConductor(Conductor{Name: "2x1.5"}); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("duplicate conductor error = %v, want ErrDuplicateItem", err)
	}
	if err := c.AddConductor(Conductor{}); !errors.Is(err, ErrInvalidItemName) {
		t.Errorf("empty name error = %v, want ErrInvalidItemName", err)
	}
}

func TestLookups(t *testing.T) {
	c := testCatalog(t)
	if err := c.AddTransformer(TransformerUPS{Name: "TX-650", Rating: 650, ImpedancePct: 4, PrimaryVoltage: 230, SecondaryVoltage: 120}); err != nil {
		t.Fatal(err)
	}
	if err := c.AddConsumer(Consumer{Name: "signal-head", Load: 25}); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Conductor("2x6"); err != nil {
		t.Errorf("Conductor(2x6): %v", err)
	}
	if _, err := c.Conductor("nope"); !errors.Is(err, ErrUnknownConductor) {
		t.Errorf("unknown conductor error = %v", err)
	}
	if _, err := c.Transformer("TX-650"); err != nil {
		t.Errorf("Transformer(TX-650): %v", err)
	}
	if _, err := c.Consumer("signal-head"); err != nil {
		t.Errorf("Consumer(signal-head): %v", err)
	}
}

func TestTurnsRatio(t *testing.T) {
	tx := TransformerUPS{PrimaryVoltage: 230, SecondaryVoltage: 115}
	if got := tx.TurnsRatio(); got != 2 {
		t.Errorf("TurnsRatio = %g, want 2", got)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[[conductor]]
name = "2x1.5"
cores = 2
cross_section = 1.5
resistance_90 = 14.5
reactance = 0.115
voltage_drop_90 = 29.0

[[conductor]]
name = "2x2.5"
cores = 2
cross_section = 2.5
resistance_90 = 8.9
reactance = 0.110
voltage_drop_90 = 18.0

[[transformer]]
name = "TX-650"
rating = 650.0
impedance_pct = 4.0
primary_voltage = 230.0
secondary_voltage = 120.0

[[consumer]]
name = "signal-head"
load = 25.0
`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Conductors()) != 2 {
		t.Errorf("conductors = %d, want 2", len(c.Conductors()))
	}
	tx, err := c.Transformer("TX-650")
	if err != nil {
		t.Fatalf("Transformer: %v", err)
	}
	if tx.Rating != 650 || tx.SecondaryVoltage != 120 {
		t.Errorf("transformer fields wrong: %+v", tx)
	}
	cons, err := c.Consumer("signal-head")
	if err != nil {
		t.Fatalf("Consumer: %v", err)
	}
	if cons.Load != 25 {
		t.Errorf("consumer load = %g, want 25", cons.Load)
	}
}

func TestParseTOMLDuplicate(t *testing.T) {
	data := []byte(`
[[conductor]]
name = "2x1.5"

[[conductor]]
name = "2x1.5"
`)
	if _, err := Parse(data); err == nil {
		t.Error("duplicate conductor names should fail to parse")
	}
}

func TestParseTOMLMalformed(t *testing.T) {
	if _, err := Parse([]byte("not [valid toml")); err == nil {
		t.Error("malformed TOML should fail to parse")
	}
}
