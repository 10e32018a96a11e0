package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for voltpath.

Load it for the current session:

  bash:        source <(voltpath completion bash)
  zsh:         source <(voltpath completion zsh)
  fish:        voltpath completion fish | source
  powershell:  voltpath completion powershell | Out-String | Invoke-Expression

To load completions in every session, write the script to your shell's
completion directory, e.g.:

  voltpath completion bash > /etc/bash_completion.d/voltpath
  voltpath completion zsh > "${fpath[1]}/_voltpath"
  voltpath completion fish > ~/.config/fish/completions/voltpath.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
