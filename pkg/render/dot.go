package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signalgrid/voltpath/pkg/calc"
	"github.com/signalgrid/voltpath/pkg/model"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes solved electrical values in node labels.
	// When false, only block names and kinds are shown.
	Detailed bool
}

// kindShapes maps block kinds to Graphviz node shapes so the diagram reads
// like a one-line drawing: sources stand out, structure stays quiet.
var kindShapes = map[model.Kind]string{
	model.KindSupply:         "doublecircle",
	model.KindConductor:      "box",
	model.KindTransformerUPS: "trapezium",
	model.KindAlternator:     "trapezium",
	model.KindLoad:           "ellipse",
	model.KindTerminal:       "point",
	model.KindRow:            "box",
	model.KindBusbar:         "box3d",
	model.KindLocation:       "folder",
	model.KindExternalBusbar: "box3d",
}

// NetworkToDOT converts a network to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func NetworkToDOT(n *model.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph network {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, b := range n.Blocks() {
		fmt.Fprintf(&buf, "  %d [%s];\n", b.ID, strings.Join(blockAttrs(b, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, c := range n.Connections() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", c.Left, c.Right)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// PathsToDOT converts a calculated path set to Graphviz DOT format, one
// directed chain per path following the direction of power flow. Blocks
// shared between paths appear once; the shared upstream segment naturally
// fans out at the branch point.
func PathsToDOT(paths []calc.Path, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph paths {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	seenNode := make(map[int]bool)
	for _, p := range paths {
		for i := range p.Points {
			pt := &p.Points[i]
			if seenNode[pt.BlockID] {
				continue
			}
			seenNode[pt.BlockID] = true
			fmt.Fprintf(&buf, "  %d [%s];\n", pt.BlockID, strings.Join(pointAttrs(pt, opts.Detailed), ", "))
		}
	}

	buf.WriteString("\n")
	seenEdge := make(map[[2]int]bool)
	for _, p := range paths {
		for i := 1; i < p.Len(); i++ {
			edge := [2]int{p.Points[i-1].BlockID, p.Points[i].BlockID}
			if seenEdge[edge] {
				continue
			}
			seenEdge[edge] = true
			fmt.Fprintf(&buf, "  %d -> %d;\n", edge[0], edge[1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func blockAttrs(b *model.Block, detailed bool) []string {
	label := blockLabel(b, detailed)
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", shapeFor(b.Kind)),
	}
	if b.Kind == model.KindSupply {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

func blockLabel(b *model.Block, detailed bool) string {
	name := b.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", b.Kind, b.ID)
	}
	if !detailed {
		return name
	}

	parts := []string{name, b.Kind.String()}
	if eq := b.EquipmentName(); eq != "" {
		parts = append(parts, eq)
	}
	switch b.Kind {
	case model.KindSupply:
		parts = append(parts, fmt.Sprintf("%g V", b.Voltage))
	case model.KindConductor:
		parts = append(parts, fmt.Sprintf("%g m", b.Length))
	}
	return strings.Join(parts, "\n")
}

func pointAttrs(pt *calc.Point, detailed bool) []string {
	label := pointLabel(pt, detailed)
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("shape=%s", shapeFor(pt.Kind)),
	}
	if pt.Kind == model.KindSupply {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

func pointLabel(pt *calc.Point, detailed bool) string {
	name := pt.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", pt.Kind, pt.BlockID)
	}
	if !detailed {
		return name
	}

	parts := []string{name}
	if pt.EquipmentName != "" {
		parts = append(parts, pt.EquipmentName)
	}
	parts = append(parts, fmt.Sprintf("%.1f V  %.2f A", pt.Voltage, pt.Current))
	if pt.Kind == model.KindConductor && pt.SuggestedConductor != "" {
		parts = append(parts, "suggest "+pt.SuggestedConductor)
	}
	return strings.Join(parts, "\n")
}

func shapeFor(k model.Kind) string {
	if shape, ok := kindShapes[k]; ok {
		return shape
	}
	return "box"
}
