package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/errors"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	catalogPath string // equipment catalog TOML file (optional)
	jsonOut     bool   // emit JSON instead of tables
	output      string // output file path (stdout if empty)
}

// checkCommand creates the check command.
// It validates topology and enumerates supply-to-load paths without running
// the electrical solver, so it works without a complete catalog.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <network-or-file>",
		Short: "Validate topology and list supply-to-load paths",
		Long: `Validate a network's topology without solving it electrically.

Check enumerates every supply-to-load path, rejects reconnecting branches
and crossing supply domains, and reports the surviving paths. Equipment
assignments are still verified, so pass the catalog the network was
authored against.

Examples:
  voltpath check network.json --catalog equipment.toml
  voltpath check station-north -c equipment.toml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "equipment catalog file (TOML)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit JSON instead of tables")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, opts *checkOpts, arg string) error {
	ctx := cmd.Context()

	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	net, err := c.loadNetwork(ctx, arg, cat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	paths, err := runner.Check(ctx, net)
	if err != nil {
		if errors.IsModelingError(err) {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}
	prog.done(fmt.Sprintf("Validated %d paths", len(paths)))

	if opts.jsonOut || opts.output != "" {
		out, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer out.Close()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(paths)
	}

	printSuccess("Topology is valid")
	printStats(net.BlockCount(), len(paths), false)
	printNewline()
	printCheckTable(paths)
	printNextStep("Run the calculation", fmt.Sprintf("voltpath calc %s -c %s", arg, opts.catalogPath))
	return nil
}
