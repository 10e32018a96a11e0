package render

import (
	"strings"
	"testing"

	"github.com/signalgrid/voltpath/pkg/calc"
	"github.com/signalgrid/voltpath/pkg/model"
)

func testNetwork(t *testing.T) *model.Network {
	t.Helper()
	n := model.New()
	blocks := []model.Block{
		{ID: 1, ParentID: -1, Kind: model.KindSupply, Name: "feed", Voltage: 120},
		{ID: 2, ParentID: 1, Kind: model.KindTerminal},
		{ID: 3, ParentID: 1, Kind: model.KindLoad, Name: "lamp"},
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

func TestNetworkToDOT(t *testing.T) {
	dot := NetworkToDOT(testNetwork(t), Options{})

	for _, want := range []string{
		"graph network {",
		`1 [label="feed", shape=doublecircle, fillcolor=lightyellow];`,
		`2 [label="terminal 2", shape=point];`,
		`3 [label="lamp", shape=ellipse];`,
		"1 -- 2;",
		"2 -- 3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNetworkToDOTDetailed(t *testing.T) {
	dot := NetworkToDOT(testNetwork(t), Options{Detailed: true})
	if !strings.Contains(dot, "120 V") {
		t.Errorf("detailed DOT missing supply voltage:\n%s", dot)
	}
}

func TestPathsToDOTDeduplicatesSharedSegment(t *testing.T) {
	shared := []calc.Point{
		{BlockID: 1, Kind: model.KindSupply, Name: "feed", Voltage: 118.2, Current: 17.5},
		{BlockID: 2, Kind: model.KindBusbar, Voltage: 117.0, Current: 17.5},
	}
	paths := []calc.Path{
		{Points: append(append([]calc.Point{}, shared...), calc.Point{BlockID: 3, Kind: model.KindLoad, Voltage: 108, Current: 9.3})},
		{Points: append(append([]calc.Point{}, shared...), calc.Point{BlockID: 4, Kind: model.KindLoad, Voltage: 108, Current: 8.2})},
	}

	dot := PathsToDOT(paths, Options{})

	if strings.Count(dot, `label="feed"`) != 1 {
		t.Errorf("shared supply emitted more than once:\n%s", dot)
	}
	if strings.Count(dot, "1 -> 2;") != 1 {
		t.Errorf("shared edge emitted more than once:\n%s", dot)
	}
	for _, want := range []string{"2 -> 3;", "2 -> 4;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing edge %q:\n%s", want, dot)
		}
	}
}

func TestPathsToDOTDetailedLabels(t *testing.T) {
	paths := []calc.Path{{Points: []calc.Point{
		{BlockID: 1, Kind: model.KindSupply, Voltage: 110.7, Current: 9.26},
		{BlockID: 2, Kind: model.KindConductor, EquipmentName: "2x16", SuggestedConductor: "2x6", Voltage: 108, Current: 9.26},
	}}}

	dot := PathsToDOT(paths, Options{Detailed: true})
	for _, want := range []string{"2x16", "suggest 2x6", "110.7 V"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.50 60.25" xmlns="http://www.w3.org/2000/svg">`)
	out := normalizeViewBox(in)
	want := `viewBox="0 0 100.50 60.25" width="100" height="60"`
	if !strings.Contains(string(out), want) {
		t.Errorf("normalized SVG = %s, want substring %q", out, want)
	}
}
