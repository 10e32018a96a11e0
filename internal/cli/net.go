package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/netdef"
	"github.com/signalgrid/voltpath/pkg/store"
)

// netOpts holds the persistent flags for the net command group.
// When a Mongo URI is given, networks are stored in MongoDB instead of the
// local data directory, so teams can share one library of networks.
type netOpts struct {
	mongoURI string
	mongoDB  string
}

// netCommand creates the net command group for managing stored networks.
func (c *CLI) netCommand() *cobra.Command {
	var opts netOpts

	cmd := &cobra.Command{
		Use:   "net",
		Short: "Manage stored network definitions",
		Long: `Save, list, show and remove network definitions.

Networks are stored under the local data directory by default. Pass
--mongo-uri to use a shared MongoDB library instead.

Examples:
  voltpath net save station-north network.json
  voltpath net list
  voltpath net show station-north
  voltpath net rm station-north
  voltpath net list --mongo-uri mongodb://localhost:27017`,
	}

	cmd.PersistentFlags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI (default: local file store)")
	cmd.PersistentFlags().StringVar(&opts.mongoDB, "mongo-db", "voltpath", "MongoDB database name")

	cmd.AddCommand(c.netSaveCommand(&opts))
	cmd.AddCommand(c.netListCommand(&opts))
	cmd.AddCommand(c.netShowCommand(&opts))
	cmd.AddCommand(c.netRemoveCommand(&opts))

	return cmd
}

// openStore picks the network store from the flags: Mongo when a URI is
// given, the local file store otherwise. The caller must Close it.
func (c *CLI) openStore(cmd *cobra.Command, opts *netOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		return store.NewMongoStore(cmd.Context(), store.MongoConfig{
			URI:      opts.mongoURI,
			Database: opts.mongoDB,
		})
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(dir)
}

func (c *CLI) netSaveCommand(opts *netOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <network-file>",
		Short: "Save a network definition under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			if err := errors.ValidateNetworkName(name); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
			}
			var doc netdef.Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
			}
			doc.Name = name

			st, err := c.openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(cmd.Context(), name, doc); err != nil {
				return err
			}
			printSuccess("Saved network %q (%d blocks)", name, len(doc.Blocks))
			printNextStep("Calculate it", fmt.Sprintf("voltpath calc %s -c <catalog.toml>", name))
			return nil
		},
	}
}

func (c *CLI) netListCommand(opts *netOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("no stored networks")
				return nil
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.Name,
					fmt.Sprintf("%d", info.Blocks),
					info.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Name", "Blocks", "Updated").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return StyleValue
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

func (c *CLI) netShowCommand(opts *netOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored network as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

func (c *CLI) netRemoveCommand(opts *netOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a stored network",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd, opts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Removed network %q", args[0])
			return nil
		},
	}
}
