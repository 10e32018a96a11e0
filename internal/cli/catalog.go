package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/catalog"
	"github.com/signalgrid/voltpath/pkg/errors"
)

// catalogCommand creates the catalog command group for inspecting
// equipment catalog files.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect equipment catalogs",
		Long: `Inspect the conductors, transformers and consumers of a catalog file.

Examples:
  voltpath catalog list equipment.toml
  voltpath catalog show equipment.toml 2x1.5`,
	}

	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogShowCommand())

	return cmd
}

// catalogListCommand lists all equipment in a catalog file.
func (c *CLI) catalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <catalog-file>",
		Short: "List all equipment in a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			printCatalogTables(cat)
			return nil
		},
	}
}

// catalogShowCommand shows a single piece of equipment by name.
func (c *CLI) catalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <catalog-file> <name>",
		Short: "Show one piece of equipment by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			return showEquipment(cat, args[1])
		},
	}
}

func printCatalogTables(cat *catalog.Catalog) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(colorDim)
	styler := func(row, col int) lipgloss.Style {
		if row == -1 {
			return headerStyle
		}
		if col > 0 {
			return StyleNumber
		}
		return StyleValue
	}

	if conds := cat.Conductors(); len(conds) > 0 {
		fmt.Println(StyleTitle.Render("Conductors"))
		rows := make([][]string, 0, len(conds))
		for _, cond := range conds {
			rows = append(rows, []string{
				cond.Name,
				fmt.Sprintf("%d", cond.Cores),
				fmt.Sprintf("%g", cond.CrossSection),
				fmt.Sprintf("%g", cond.Resistance90),
				fmt.Sprintf("%g", cond.Reactance),
				fmt.Sprintf("%g", cond.VoltageDrop90),
			})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers("Name", "Cores", "mm²", "R90 (Ω/km)", "X (Ω/km)", "VD90 (V/A·km)").
			Rows(rows...).
			StyleFunc(styler)
		fmt.Println(t.Render())
		fmt.Println()
	}

	if trs := cat.Transformers(); len(trs) > 0 {
		fmt.Println(StyleTitle.Render("Transformers"))
		rows := make([][]string, 0, len(trs))
		for _, tr := range trs {
			rows = append(rows, []string{
				tr.Name,
				fmt.Sprintf("%g", tr.Rating),
				fmt.Sprintf("%g", tr.ImpedancePct),
				fmt.Sprintf("%g", tr.PrimaryVoltage),
				fmt.Sprintf("%g", tr.SecondaryVoltage),
			})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers("Name", "VA", "%Z", "Primary V", "Secondary V").
			Rows(rows...).
			StyleFunc(styler)
		fmt.Println(t.Render())
		fmt.Println()
	}

	if cons := cat.Consumers(); len(cons) > 0 {
		fmt.Println(StyleTitle.Render("Consumers"))
		rows := make([][]string, 0, len(cons))
		for _, cn := range cons {
			rows = append(rows, []string{cn.Name, fmt.Sprintf("%g", cn.Load)})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers("Name", "VA").
			Rows(rows...).
			StyleFunc(styler)
		fmt.Println(t.Render())
	}
}

// showEquipment looks the name up across all three equipment families.
func showEquipment(cat *catalog.Catalog, name string) error {
	if cond, err := cat.Conductor(name); err == nil {
		printKeyValue("Kind", "conductor")
		printKeyValue("Name", cond.Name)
		printKeyValue("Cores", fmt.Sprintf("%d", cond.Cores))
		printKeyValue("Cross-section", fmt.Sprintf("%g mm²", cond.CrossSection))
		printKeyValue("R60", fmt.Sprintf("%g Ω/km", cond.Resistance60))
		printKeyValue("R90", fmt.Sprintf("%g Ω/km", cond.Resistance90))
		printKeyValue("Reactance", fmt.Sprintf("%g Ω/km", cond.Reactance))
		printKeyValue("VD60", fmt.Sprintf("%g V/(A·km)", cond.VoltageDrop60))
		printKeyValue("VD90", fmt.Sprintf("%g V/(A·km)", cond.VoltageDrop90))
		return nil
	}
	if tr, err := cat.Transformer(name); err == nil {
		printKeyValue("Kind", "transformer")
		printKeyValue("Name", tr.Name)
		printKeyValue("Rating", fmt.Sprintf("%g VA", tr.Rating))
		printKeyValue("Impedance", fmt.Sprintf("%g %%", tr.ImpedancePct))
		printKeyValue("Primary", fmt.Sprintf("%g V", tr.PrimaryVoltage))
		printKeyValue("Secondary", fmt.Sprintf("%g V", tr.SecondaryVoltage))
		printKeyValue("Turns ratio", fmt.Sprintf("%.3f", tr.TurnsRatio()))
		return nil
	}
	if cn, err := cat.Consumer(name); err == nil {
		printKeyValue("Kind", "consumer")
		printKeyValue("Name", cn.Name)
		printKeyValue("Load", fmt.Sprintf("%g VA", cn.Load))
		return nil
	}
	return errors.New(errors.ErrCodeNotFound, "no equipment named %q in catalog", name)
}
