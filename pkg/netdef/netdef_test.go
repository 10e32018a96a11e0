package netdef

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/signalgrid/voltpath/pkg/catalog"
	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	if err := cat.AddConductor(catalog.Conductor{
		Name: "2x1.5", Cores: 2, CrossSection: 1.5,
		Resistance60: 12.1, Resistance90: 13.4, Reactance: 0.1,
		VoltageDrop60: 26.0, VoltageDrop90: 29.0,
	}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddTransformer(catalog.TransformerUPS{
		Name: "TR-4k", Rating: 4000, ImpedancePct: 4.0,
		PrimaryVoltage: 230, SecondaryVoltage: 120,
	}); err != nil {
		t.Fatal(err)
	}
	if err := cat.AddConsumer(catalog.Consumer{Name: "signal-10", Load: 1000}); err != nil {
		t.Fatal(err)
	}
	return cat
}

func testNetwork(t *testing.T, cat *catalog.Catalog) *model.Network {
	t.Helper()
	cond, err := cat.Conductor("2x1.5")
	if err != nil {
		t.Fatal(err)
	}
	cons, err := cat.Consumer("signal-10")
	if err != nil {
		t.Fatal(err)
	}

	n := model.New()
	blocks := []model.Block{
		{ID: 1, ParentID: -1, Kind: model.KindSupply, Name: "feed", Voltage: 120},
		{ID: 2, ParentID: 1, Kind: model.KindConductor, Length: 100, Conductor: cond},
		{ID: 3, ParentID: 1, Kind: model.KindLoad, Consumer: cons},
	}
	for _, b := range blocks {
		if err := n.AddBlock(b); err != nil {
			t.Fatal(err)
		}
	}
	if err := n.Connect(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := n.Connect(2, 3); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	n := testNetwork(t, cat)

	data, err := Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Read(bytes.NewReader(data), cat)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if !reflect.DeepEqual(FromNetwork(got), FromNetwork(n)) {
		t.Errorf("round trip changed the document:\n got %+v\nwant %+v", FromNetwork(got), FromNetwork(n))
	}
}

func TestDocumentShape(t *testing.T) {
	cat := testCatalog(t)
	doc := FromNetwork(testNetwork(t, cat))

	if len(doc.Blocks) != 3 || len(doc.Connections) != 2 {
		t.Fatalf("got %d blocks, %d connections, want 3 and 2", len(doc.Blocks), len(doc.Connections))
	}
	if doc.Blocks[0].Kind != "supply" {
		t.Errorf("kind serialized as %q, want %q", doc.Blocks[0].Kind, "supply")
	}
	if doc.Blocks[0].Parent != nil {
		t.Errorf("root block has parent %v, want none", *doc.Blocks[0].Parent)
	}
	if doc.Blocks[1].Equipment != "2x1.5" {
		t.Errorf("conductor equipment = %q, want %q", doc.Blocks[1].Equipment, "2x1.5")
	}
}

func TestToNetworkErrors(t *testing.T) {
	cat := testCatalog(t)
	parent := 1

	tests := []struct {
		name string
		doc  Document
		code vperrors.Code
	}{
		{
			name: "unknown kind",
			doc: Document{Blocks: []BlockDoc{
				{ID: 1, Kind: "reactor"},
			}},
			code: vperrors.ErrCodeInvalidNetwork,
		},
		{
			name: "unknown equipment",
			doc: Document{Blocks: []BlockDoc{
				{ID: 1, Kind: "supply", Voltage: 120},
				{ID: 2, Parent: &parent, Kind: "conductor", Length: 50, Equipment: "no-such-cable"},
			}},
			code: vperrors.ErrCodeInvalidCatalog,
		},
		{
			name: "equipment on structural block",
			doc: Document{Blocks: []BlockDoc{
				{ID: 1, Kind: "terminal", Equipment: "2x1.5"},
			}},
			code: vperrors.ErrCodeInvalidNetwork,
		},
		{
			name: "duplicate block ID",
			doc: Document{Blocks: []BlockDoc{
				{ID: 1, Kind: "supply", Voltage: 120},
				{ID: 1, Kind: "terminal"},
			}},
			code: vperrors.ErrCodeInvalidNetwork,
		},
		{
			name: "connection to missing block",
			doc: Document{
				Blocks:      []BlockDoc{{ID: 1, Kind: "supply", Voltage: 120}},
				Connections: []Connection{{From: 1, To: 9}},
			},
			code: vperrors.ErrCodeInvalidNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToNetwork(tt.doc, cat)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !vperrors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s (err: %v)", vperrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestToNetworkNilCatalog(t *testing.T) {
	doc := Document{Blocks: []BlockDoc{
		{ID: 1, Kind: "load", Equipment: "signal-10"},
	}}
	_, err := ToNetwork(doc, nil)
	if !vperrors.Is(err, vperrors.ErrCodeInvalidCatalog) {
		t.Errorf("error = %v, want INVALID_CATALOG", err)
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("{not json"), nil)
	if !vperrors.Is(err, vperrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestFingerprintStable(t *testing.T) {
	cat := testCatalog(t)
	a := testNetwork(t, cat)
	b := testNetwork(t, cat)

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := Fingerprint(b)
	if err != nil {
		t.Fatal(err)
	}
	if fa != fb {
		t.Errorf("identical networks fingerprint differently: %s vs %s", fa, fb)
	}

	if err := b.AddBlock(model.Block{ID: 4, ParentID: -1, Kind: model.KindTerminal}); err != nil {
		t.Fatal(err)
	}
	fc, err := Fingerprint(b)
	if err != nil {
		t.Fatal(err)
	}
	if fc == fa {
		t.Error("modified network kept the same fingerprint")
	}
}

func TestCatalogFingerprint(t *testing.T) {
	a, err := CatalogFingerprint(testCatalog(t))
	if err != nil {
		t.Fatal(err)
	}
	b, err := CatalogFingerprint(testCatalog(t))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("identical catalogs fingerprint differently: %s vs %s", a, b)
	}

	other := testCatalog(t)
	if err := other.AddConsumer(catalog.Consumer{Name: "signal-20", Load: 2000}); err != nil {
		t.Fatal(err)
	}
	c, err := CatalogFingerprint(other)
	if err != nil {
		t.Fatal(err)
	}
	if c == a {
		t.Error("extended catalog kept the same fingerprint")
	}
}
