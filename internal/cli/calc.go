package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/calc"
	"github.com/signalgrid/voltpath/pkg/catalog"
	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
	"github.com/signalgrid/voltpath/pkg/netdef"
	"github.com/signalgrid/voltpath/pkg/store"
)

// calcOpts holds the command-line flags for the calc command.
type calcOpts struct {
	catalogPath string  // equipment catalog TOML file
	maxDrop     float64 // allowed voltage-drop fraction
	refresh     bool    // bypass result cache
	noCache     bool    // disable caching entirely
	jsonOut     bool    // emit JSON instead of tables
	output      string  // output file path (stdout if empty)
	tui         bool    // browse results interactively
}

// calcCommand creates the calc command.
// It runs the full calculation over a network definition: path construction,
// topology validation, filtering, forward propagation, load aggregation,
// electrical solving and impedance solving.
func (c *CLI) calcCommand() *cobra.Command {
	opts := calcOpts{maxDrop: calc.DefaultMaxDrop}

	cmd := &cobra.Command{
		Use:   "calc <network-or-file>",
		Short: "Calculate voltages, currents and conductor sizes for a network",
		Long: `Calculate the complete electrical design for a distribution network.

The argument is either a network definition file or the name of a stored
network (see "voltpath net"). Results cover every supply-to-load path:
voltages and currents at each block, suggested conductor cross-sections,
fault currents and minimum breaker ratings.

Examples:
  voltpath calc network.json --catalog equipment.toml
  voltpath calc station-north -c equipment.toml --max-drop 0.05
  voltpath calc network.json -c equipment.toml --json -o result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCalc(cmd, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "equipment catalog file (TOML)")
	cmd.Flags().Float64Var(&opts.maxDrop, "max-drop", opts.maxDrop, "allowed voltage-drop fraction at the load")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass result cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit JSON instead of tables")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "browse results interactively")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (c *CLI) runCalc(cmd *cobra.Command, opts *calcOpts, arg string) error {
	ctx := cmd.Context()

	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	net, err := c.loadNetwork(ctx, arg, cat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, net, cat, calc.Options{
		MaxDrop: opts.maxDrop,
		Refresh: opts.refresh,
	})
	if err != nil {
		if errors.IsModelingError(err) {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}
	prog.done(fmt.Sprintf("Solved %d paths", result.Stats.PathCount))

	if opts.tui {
		return browsePaths(result.Paths)
	}
	if opts.jsonOut || opts.output != "" {
		return writeResultJSON(result, opts.output)
	}

	printSuccess("Calculation complete")
	printStats(result.Stats.BlockCount, result.Stats.PathCount, result.CacheInfo.ResultHit)
	printNewline()
	for i := range result.Paths {
		printPathTable(&result.Paths[i], i)
	}
	printNextStep("Render diagram", fmt.Sprintf("voltpath render %s -c %s --paths", arg, opts.catalogPath))
	return nil
}

// loadNetwork resolves arg as either a file path or a stored network name.
// A file on disk always wins; anything else is looked up in the local store.
func (c *CLI) loadNetwork(ctx context.Context, arg string, cat *catalog.Catalog) (*model.Network, error) {
	if _, err := os.Stat(arg); err == nil {
		return netdef.ReadFile(arg, cat)
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	st, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	doc, err := st.Load(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("%q is neither a file nor a stored network: %w", arg, err)
	}
	return netdef.ToNetwork(doc, cat)
}

// writeResultJSON serializes the result to path, or stdout if path is empty.
func writeResultJSON(result *calc.Result, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
