package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/store"
	"github.com/eivindw/timevault/internal/timeutil"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <date> <index>",
	Short: "Edit an existing entry",
	Long: `Edit an existing time entry, addressed by its day and the index shown
in list output (starting from 1).

Only the given flags change; everything else is left as it is. Moving
the start to another day moves the entry to that day's section, and to
another month's document if needed.

Examples:
  timevault edit 2025-01-15 2 --end '2025-01-15 11:00'
  timevault edit 2025-01-15 2 --description 'code review round two'
  timevault edit 2025-01-15 2 --start '2025-01-16 09:00' --end '2025-01-16 10:00'`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		editEntry(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("start", "", "New start time (YYYY-MM-DD HH:mm)")
	editCmd.Flags().String("end", "", "New end time (YYYY-MM-DD HH:mm)")
	editCmd.Flags().String("description", "", "New description")
	editCmd.Flags().String("client", "", "New client name")
	editCmd.Flags().String("project", "", "New project name")
	editCmd.Flags().String("activity", "", "New activity name")
	editCmd.Flags().StringSlice("tags", nil, "New comma-separated tags (replaces existing)")
	editCmd.Flags().String("note", "", "New linked note path")
}

// editEntry resolves the addressed entry and applies the flag changes
func editEntry(cmd *cobra.Command, args []string) {
	s, _, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	target, ok := resolveEntry(s, args[0], args[1])
	if !ok {
		return
	}

	changes, any, ok := changesFromFlags(cmd)
	if !ok {
		return
	}
	if !any {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  timevault edit <date> <index> --end '2025-01-15 11:00'")
		_, _ = fmt.Fprintln(deps.Stderr, "  timevault edit <date> <index> --description 'new text'")
		deps.Exit(1)
		return
	}

	updated, err := s.Update(target, changes)
	if err != nil {
		reportStoreError(err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", formatEntryLine(updated))
	if updated.DateKey() != target.DateKey() {
		_, _ = fmt.Fprintf(deps.Stdout, "Moved to %s\n", updated.DateKey())
	}
}

// changesFromFlags builds a store.Changes from whichever flags the user
// set. any reports whether anything was set at all; ok is false when a
// time flag failed to parse.
func changesFromFlags(cmd *cobra.Command) (changes store.Changes, any bool, ok bool) {
	if cmd.Flags().Changed("start") {
		value, _ := cmd.Flags().GetString("start")
		parsed, parseOK := parseInstantFlag("start", value)
		if !parseOK {
			return store.Changes{}, false, false
		}
		changes.Start = &parsed
		any = true
	}
	if cmd.Flags().Changed("end") {
		value, _ := cmd.Flags().GetString("end")
		parsed, parseOK := parseInstantFlag("end", value)
		if !parseOK {
			return store.Changes{}, false, false
		}
		changes.End = &parsed
		any = true
	}
	if cmd.Flags().Changed("description") {
		value, _ := cmd.Flags().GetString("description")
		changes.Description = &value
		any = true
	}
	if cmd.Flags().Changed("client") {
		value, _ := cmd.Flags().GetString("client")
		changes.Client = &value
		any = true
	}
	if cmd.Flags().Changed("project") {
		value, _ := cmd.Flags().GetString("project")
		changes.Project = &value
		any = true
	}
	if cmd.Flags().Changed("activity") {
		value, _ := cmd.Flags().GetString("activity")
		changes.Activity = &value
		any = true
	}
	if cmd.Flags().Changed("tags") {
		value, _ := cmd.Flags().GetStringSlice("tags")
		changes.Tags = &value
		any = true
	}
	if cmd.Flags().Changed("note") {
		value, _ := cmd.Flags().GetString("note")
		changes.LinkedNote = &value
		any = true
	}
	return changes, any, true
}

// resolveEntry turns a date argument and a 1-based index into the
// addressed entry. Errors are reported through deps and ok is false.
func resolveEntry(s *store.Store, dateArg, indexArg string) (entry.Entry, bool) {
	date, err := timeutil.ParseDate(dateArg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date %q\n", dateArg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use the format 'YYYY-MM-DD', e.g. 2025-01-15")
		deps.Exit(1)
		return entry.Entry{}, false
	}

	userIndex, err := strconv.Atoi(indexArg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid index '%s'. Index must be a number\n", indexArg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List entries with 'timevault list' to see available indices")
		deps.Exit(1)
		return entry.Entry{}, false
	}
	if userIndex < 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Index must be 1 or greater (got %d)\n", userIndex)
		deps.Exit(1)
		return entry.Entry{}, false
	}

	doc, err := s.Month(timeutil.PeriodKey(date))
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return entry.Entry{}, false
	}

	entries := doc.EntriesOn(date)
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entries found for %s\n", timeutil.FormatDate(date))
		deps.Exit(1)
		return entry.Entry{}, false
	}
	if userIndex > len(entries) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Index %d is out of range\n", userIndex)
		_, _ = fmt.Fprintf(deps.Stderr, "Valid range: 1-%d (%d %s on %s)\n",
			len(entries), len(entries), pluralize("entry", len(entries)), timeutil.FormatDate(date))
		deps.Exit(1)
		return entry.Entry{}, false
	}

	return entries[userIndex-1], true
}
