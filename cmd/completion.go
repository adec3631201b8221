package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for devpanel.

To load completions:

Bash:
  $ source <(devpanel completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ devpanel completion bash > /etc/bash_completion.d/devpanel
  # macOS:
  $ devpanel completion bash > $(brew --prefix)/etc/bash_completion.d/devpanel

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ devpanel completion zsh > "${fpath[1]}/_devpanel"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ devpanel completion fish | source

  # To load completions for each session, execute once:
  $ devpanel completion fish > ~/.config/fish/completions/devpanel.fish

PowerShell:
  PS> devpanel completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// Completion must work without a config file or browser.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
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

func init() {
	rootCmd.AddCommand(completionCmd)
}
