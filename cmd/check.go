package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/timeutil"
)

var checkFlags struct {
	start string
	end   string
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check --start <time> --end <time>",
	Short: "Check whether a time range would overlap existing entries",
	Long: `Check whether a candidate time range would conflict with an existing
entry, without writing anything.

Two ranges conflict when they share any duration. Touching ranges (one
ends exactly when the other starts) do not conflict.

Exits 0 when the range is free, 1 when it overlaps.

Example:
  timevault check --start '2025-01-15 09:00' --end '2025-01-15 10:00'`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		checkOverlap()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.start, "start", "", "Start time (YYYY-MM-DD HH:mm)")
	checkCmd.Flags().StringVar(&checkFlags.end, "end", "", "End time (YYYY-MM-DD HH:mm)")
}

// checkOverlap runs the overlap preflight and reports the result
func checkOverlap() {
	start, ok := parseInstantFlag("start", checkFlags.start)
	if !ok {
		return
	}
	end, ok := parseInstantFlag("end", checkFlags.end)
	if !ok {
		return
	}
	if !end.After(start) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: --end must be after --start")
		deps.Exit(1)
		return
	}

	s, _, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	conflicting, err := s.WouldOverlap(entry.Entry{Start: start, End: end})
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to check for overlaps: %v\n", err)
		deps.Exit(1)
		return
	}

	if conflicting == nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Free: %s - %s\n",
			timeutil.FormatInstant(start), timeutil.FormatInstant(end))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Conflict: overlaps %q (%s - %s)\n",
		conflicting.Description,
		timeutil.FormatInstant(conflicting.Start),
		timeutil.FormatInstant(conflicting.End))
	deps.Exit(1)
}
