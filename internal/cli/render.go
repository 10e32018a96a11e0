package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/calc"
	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	catalogPath string  // equipment catalog TOML file
	paths       bool    // render solved paths instead of raw topology
	detailed    bool    // include equipment and electrical detail in labels
	format      string  // svg, png or dot
	maxDrop     float64 // allowed voltage-drop fraction
	noCache     bool    // disable result caching
	output      string  // output file path (stdout if empty)
}

// renderCommand creates the render command.
// It exports the network topology, or the solved paths, as a diagram.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: "svg", maxDrop: calc.DefaultMaxDrop}

	cmd := &cobra.Command{
		Use:   "render <network-or-file>",
		Short: "Render a network or its solved paths as a diagram",
		Long: `Render a distribution network as an SVG, PNG or DOT diagram.

By default the raw topology is drawn as an undirected graph. With --paths
the network is solved first and the supply-to-load paths are drawn left to
right with voltages, currents and suggested conductors on the labels.

Examples:
  voltpath render network.json -c equipment.toml -o network.svg
  voltpath render network.json -c equipment.toml --paths --detailed -o paths.svg
  voltpath render station-north -c equipment.toml --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "equipment catalog file (TOML)")
	cmd.Flags().BoolVar(&opts.paths, "paths", false, "solve the network and render its paths")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include equipment and electrical detail")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png or dot")
	cmd.Flags().Float64Var(&opts.maxDrop, "max-drop", opts.maxDrop, "allowed voltage-drop fraction (with --paths)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching (with --paths)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts, arg string) error {
	ctx := cmd.Context()

	format := strings.ToLower(opts.format)
	switch format {
	case "svg", "png", "dot":
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown format %q (supported: svg, png, dot)", opts.format)
	}

	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	net, err := c.loadNetwork(ctx, arg, cat)
	if err != nil {
		return err
	}

	dotOpts := render.Options{Detailed: opts.detailed}

	var dot string
	if opts.paths {
		runner, err := c.newRunner(opts.noCache)
		if err != nil {
			return err
		}
		defer runner.Close()

		result, err := runner.Execute(ctx, net, cat, calc.Options{MaxDrop: opts.maxDrop})
		if err != nil {
			if errors.IsModelingError(err) {
				printError("%s", errors.UserMessage(err))
			}
			return err
		}
		dot = render.PathsToDOT(result.Paths, dotOpts)
	} else {
		dot = render.NetworkToDOT(net, dotOpts)
	}

	var data []byte
	switch format {
	case "svg", "png":
		sp := newSpinnerWithContext(ctx, fmt.Sprintf("rendering %s", format))
		sp.Start()
		if format == "svg" {
			data, err = render.RenderSVG(dot)
		} else {
			data, err = render.RenderPNG(dot)
		}
		sp.Stop()
	case "dot":
		data = []byte(dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Rendered %s", format)
		printFile(opts.output)
	}
	return nil
}
