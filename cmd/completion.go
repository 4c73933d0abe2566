package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/config"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for timevault.

This enables tab-completion for commands, flags, and arguments in your
shell. The --client, --project and --activity flags complete from the
catalogs in your config file.

Bash:
  source <(timevault completion bash)

  # Install permanently (Linux):
  timevault completion bash > ~/.local/share/bash-completion/completions/timevault

Zsh:
  source <(timevault completion zsh)

  # Install permanently:
  timevault completion zsh > ~/.zsh/completion/_timevault

Fish:
  timevault completion fish > ~/.config/fish/completions/timevault.fish

PowerShell:
  timevault completion powershell | Out-String | Invoke-Expression`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{addCmd, editCmd, listCmd} {
		_ = c.RegisterFlagCompletionFunc("client", catalogCompletion(func(cfg config.Config) []string { return cfg.Clients }))
		_ = c.RegisterFlagCompletionFunc("project", catalogCompletion(func(cfg config.Config) []string { return cfg.Projects }))
	}
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		_ = c.RegisterFlagCompletionFunc("activity", catalogCompletion(func(cfg config.Config) []string { return cfg.Activities }))
	}
}

// generateCompletion writes the completion script for the given shell
func generateCompletion(cmd *cobra.Command, shell string) {
	var err error
	switch shell {
	case "bash":
		err = cmd.Root().GenBashCompletionV2(deps.Stdout, true)
	case "zsh":
		err = cmd.Root().GenZshCompletion(deps.Stdout)
	case "fish":
		err = cmd.Root().GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = cmd.Root().GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell %q\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate completion script: %v\n", err)
		deps.Exit(1)
	}
}

// catalogCompletion builds a flag completion function that offers the
// names from one config catalog.
func catalogCompletion(catalog func(config.Config) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		configPath, err := deps.ConfigPath()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := config.LoadOrDefault(configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return catalog(cfg), cobra.ShellCompDirectiveNoFileComp
	}
}
