package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse entries interactively",
	Long: `Launch the interactive month browser.

The browser shows one month's entries in a table and refreshes
automatically when a document changes on disk, e.g. when an editor
saves it.

Keyboard shortcuts:
  - j/k or arrows: Move within the table
  - h/l or ←/→: Previous/next month
  - t: Jump to the current month
  - r: Refresh
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI initializes the store and runs the month browser
func runTUI() {
	s, v, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if err := v.EnsureContainerExists(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create vault directory: %v\n", err)
		deps.Exit(1)
		return
	}

	if err := tui.Run(s, v); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}
