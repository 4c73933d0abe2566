package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/store"
)

var addFlags struct {
	start    string
	end      string
	client   string
	project  string
	activity string
	tags     []string
	note     string
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add --start <time> --end <time> <description>",
	Short: "Add a time entry",
	Long: `Add a time entry to the month document its start date belongs to.

The entry is rejected if it overlaps an existing entry: two entries
conflict when their time ranges share any duration. Touching ranges
(one ends exactly when the other starts) are fine.

Examples:
  timevault add --start '2025-01-15 09:00' --end '2025-01-15 10:30' code review --client acme
  timevault add --start '2025-01-15 23:00' --end '2025-01-16 01:00' deploy --client acme --tags urgent
  timevault add --start '2025-01-15 13:00' --end '2025-01-15 14:00' standup --client acme --activity meetings`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addEntry(args)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addFlags.start, "start", "", "Start time (YYYY-MM-DD HH:mm)")
	addCmd.Flags().StringVar(&addFlags.end, "end", "", "End time (YYYY-MM-DD HH:mm)")
	addCmd.Flags().StringVar(&addFlags.client, "client", "", "Client name")
	addCmd.Flags().StringVar(&addFlags.project, "project", "", "Project name (mutually exclusive with --activity)")
	addCmd.Flags().StringVar(&addFlags.activity, "activity", "", "Activity name (mutually exclusive with --project)")
	addCmd.Flags().StringSliceVar(&addFlags.tags, "tags", nil, "Comma-separated tags")
	addCmd.Flags().StringVar(&addFlags.note, "note", "", "Linked note path")
}

// addEntry validates the flags and creates the entry through the store
func addEntry(args []string) {
	start, ok := parseInstantFlag("start", addFlags.start)
	if !ok {
		return
	}
	end, ok := parseInstantFlag("end", addFlags.end)
	if !ok {
		return
	}

	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Description cannot be empty")
		deps.Exit(1)
		return
	}

	s, _, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	created, err := s.Create(store.Request{
		Start:       start,
		End:         end,
		Description: description,
		Client:      addFlags.client,
		Project:     addFlags.project,
		Activity:    addFlags.activity,
		Tags:        addFlags.tags,
		LinkedNote:  addFlags.note,
	})
	if err != nil {
		reportStoreError(err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Added: %s\n", formatEntryLine(created))
	if created.SpansMidnight() {
		_, _ = fmt.Fprintf(deps.Stdout, "Note: entry spans midnight, ending %s\n", created.End.Format("2006-01-02"))
	}
}
