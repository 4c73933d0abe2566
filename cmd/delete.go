package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/entry"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <date> <index>",
	Short: "Delete a time entry",
	Long: `Delete a time entry, addressed by its day and the index shown in list
output (starting from 1).

A confirmation prompt is shown unless --yes is specified.

Examples:
  timevault delete 2025-01-15 3
  timevault delete 2025-01-15 3 --yes`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		deleteEntry(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
}

// deleteEntry handles the deletion of a time entry
func deleteEntry(dateArg, indexArg string) {
	s, _, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	target, ok := resolveEntry(s, dateArg, indexArg)
	if !ok {
		return
	}

	showEntryForDeletion(target)

	if !yesFlag {
		if !promptConfirmation() {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	if err := s.Delete(target); err != nil {
		reportStoreError(err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s (%s)\n", target.Description, formatDuration(target.DurationMinutes))
}

// showEntryForDeletion displays the entry that is about to be deleted
func showEntryForDeletion(e entry.Entry) {
	_, _ = fmt.Fprintf(deps.Stdout, "Entry to delete:\n")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", formatEntryLine(e))
}

// promptConfirmation asks the user to confirm deletion
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation() bool {
	_, _ = fmt.Fprint(deps.Stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
