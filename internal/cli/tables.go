package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/signalgrid/voltpath/pkg/calc"
)

// printPathTable renders one solved path as a bordered table.
// Zero-valued optional columns show a dash so sparse rows stay readable.
func printPathTable(p *calc.Path, idx int) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Path %d", idx+1)) + " " + StyleDim.Render(p.String()))

	rows := make([][]string, 0, p.Len())
	for i := range p.Points {
		pt := &p.Points[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", pt.BlockID),
			pt.Kind.String(),
			pointName(pt),
			formatFloat(pt.Voltage, "%.1f"),
			formatFloat(pt.Current, "%.2f"),
			formatFloat(pt.LoadAtPoint, "%.0f"),
			pt.SuggestedConductor,
			formatFloat(pt.Impedance, "%.3f"),
			formatFloat(pt.FaultCurrent, "%.1f"),
			formatFloat(pt.MinBreakerRating, "%.1f"),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Kind", "Name", "V", "A", "VA", "Conductor", "Z (Ω)", "Ik (A)", "Breaker").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 3 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	fmt.Println()
}

// printCheckTable renders structurally validated paths without numeric columns.
func printCheckTable(paths []calc.Path) {
	rows := make([][]string, 0, len(paths))
	for i := range paths {
		p := &paths[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			pointName(p.Supply()),
			pointName(p.Load()),
			fmt.Sprintf("%d", p.Len()),
			p.String(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Supply", "Load", "Blocks", "Route").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

// pointName prefers the block name, falling back to "kind ID".
func pointName(pt *calc.Point) string {
	if pt.Name != "" {
		return pt.Name
	}
	return fmt.Sprintf("%s %d", pt.Kind, pt.BlockID)
}

// formatFloat renders v with format, or a dash when v is zero.
func formatFloat(v float64, format string) string {
	if v == 0 {
		return "—"
	}
	return fmt.Sprintf(format, v)
}
