package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "timevault",
	Short: "Plain-text time tracking in monthly markdown documents",
	Long: `timevault tracks work time in plain markdown files, one document per
month, that stay readable and editable in any text editor.

Usage:
  timevault add --start '2025-01-15 09:00' --end '2025-01-15 10:30' code review
  timevault                                 List today's entries
  timevault list 2025-01-15                 List a specific day
  timevault list 2025-01                    List a whole month
  timevault edit 2025-01-15 2 --end '2025-01-15 11:00'
  timevault delete 2025-01-15 2             Delete an entry (with confirmation)
  timevault report --week                   Weekly report
  timevault check --start ... --end ...     Test a time range for overlaps
  timevault tui                             Browse the current month interactively

Times use the format 'YYYY-MM-DD HH:mm'. Entries may span midnight; the
end just falls on the next day.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// No args: list today's entries
		listDay("")
	},
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"timevault version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
