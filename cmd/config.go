package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/config"
	"github.com/eivindw/timevault/internal/vault"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings.

Shows the configuration file location, whether it exists, and all
current settings. Values are merged from the config file with defaults.

timevault works without any configuration file:
  - vault_dir: ~/timevault
  - week_start_day: monday
  - clients/projects/activities: empty catalogs

Examples:
  timevault config         Show all current settings
  timevault config init    Write a commented sample config file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	Long: `Write a commented sample configuration file to the config location.

Refuses to overwrite an existing config file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	fileExists := false
	if _, err := os.Stat(configPath); err == nil {
		fileExists = true
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		_, _ = fmt.Fprintln(deps.Stderr, "Valid week_start_day values: monday, sunday")
		deps.Exit(1)
		return
	}

	vaultDir := cfg.VaultDir
	if vaultDir == "" {
		if dir, err := vault.DefaultDir(); err == nil {
			vaultDir = dir + " (default)"
		} else {
			vaultDir = "(default)"
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for timevault")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Vault Directory: %s\n", vaultDir)
	_, _ = fmt.Fprintf(deps.Stdout, "Week Start Day:  %s\n", cfg.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "Clients:         %s\n", formatCatalog(cfg.Clients))
	_, _ = fmt.Fprintf(deps.Stdout, "Projects:        %s\n", formatCatalog(cfg.Projects))
	_, _ = fmt.Fprintf(deps.Stdout, "Activities:      %s\n", formatCatalog(cfg.Activities))
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'timevault config init' to create a sample config file.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file
func initConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to determine config file location: %v\n", err)
		deps.Exit(1)
		return
	}

	if _, err := os.Stat(configPath); err == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists: %s\n", configPath)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Edit the existing file instead")
		deps.Exit(1)
		return
	}

	if err := os.WriteFile(configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to write config file: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Wrote sample config to %s\n", configPath)
}

// formatCatalog renders a catalog list for display
func formatCatalog(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
