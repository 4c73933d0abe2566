package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/report"
	"github.com/eivindw/timevault/internal/timeutil"
)

var reportFlags struct {
	day   string
	week  string
	month string
	by    string
}

var reportHeader = color.New(color.Bold)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize tracked time over a day, week or month",
	Long: `Summarize tracked time over a date range.

Totals use effective durations: an entry spanning midnight contributes
to each day only the part that falls on it, so per-day numbers always
add up to the range total.

Range selection (default: the current week):
  --day [date]       One day, today when no date is given
  --week [date]      The week containing the date, this week by default
  --month [month]    One month, the current one by default

Grouping:
  --by client        Break the total down by client
  --by project       Break the total down by project
  --by tag           Break the total down by tag

Examples:
  timevault report                        This week
  timevault report --day 2025-01-15       One specific day
  timevault report --month 2025-01        A whole month
  timevault report --week --by client     This week, grouped by client`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFlags.day, "day", "", "Report a single day (YYYY-MM-DD, empty means today)")
	reportCmd.Flags().StringVar(&reportFlags.week, "week", "", "Report a week (date inside it, empty means this week)")
	reportCmd.Flags().StringVar(&reportFlags.month, "month", "", "Report a month (YYYY-MM, empty means this month)")
	reportCmd.Flags().StringVar(&reportFlags.by, "by", "", "Group totals by 'client', 'project' or 'tag'")
	reportCmd.Flags().Lookup("day").NoOptDefVal = "today"
	reportCmd.Flags().Lookup("week").NoOptDefVal = "today"
	reportCmd.Flags().Lookup("month").NoOptDefVal = "current"
}

// runReport resolves the range from flags and renders the report
func runReport(cmd *cobra.Command) {
	if reportFlags.by != "" && reportFlags.by != "client" && reportFlags.by != "project" && reportFlags.by != "tag" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid --by value. Must be 'client', 'project' or 'tag'")
		deps.Exit(1)
		return
	}

	s, _, cfg, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	start, end, label, ok := reportRange(cmd, cfg.WeekStartDay)
	if !ok {
		return
	}

	entries, err := s.EntriesInRange(start, end)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return
	}

	summary := report.CalculateSummary(entries, start, end)

	_, _ = fmt.Fprintln(deps.Stdout, reportHeader.Sprintf("Report for %s", label))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s across %d %s on %d %s\n\n",
		formatDuration(summary.TotalMinutes),
		summary.EntryCount, pluralize("entry", summary.EntryCount),
		summary.DaysWithEntries, pluralize("day", summary.DaysWithEntries))

	if summary.EntryCount == 0 {
		return
	}

	switch reportFlags.by {
	case "client":
		printBreakdown("CLIENT", report.CalculateClientBreakdown(entries, start, end))
	case "project":
		printBreakdown("PROJECT", report.CalculateProjectBreakdown(entries, start, end))
	case "tag":
		printBreakdown("TAG", report.CalculateTagBreakdown(entries, start, end))
	default:
		printDayTotals(report.CalculateDayTotals(entries, start, end))
	}
}

// reportRange turns the range flags into a half-open [start, end) range
// and a human label. Exactly one range flag may be used.
func reportRange(cmd *cobra.Command, weekStartDay string) (start, end time.Time, label string, ok bool) {
	set := 0
	for _, name := range []string{"day", "week", "month"} {
		if cmd.Flags().Changed(name) {
			set++
		}
	}
	if set > 1 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Use only one of --day, --week or --month")
		deps.Exit(1)
		return time.Time{}, time.Time{}, "", false
	}

	now := time.Now()

	switch {
	case cmd.Flags().Changed("day"):
		date := now
		if reportFlags.day != "today" {
			parsed, err := timeutil.ParseDate(reportFlags.day)
			if err != nil {
				_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --day value %q\n", reportFlags.day)
				deps.Exit(1)
				return time.Time{}, time.Time{}, "", false
			}
			date = parsed
		}
		start = timeutil.StartOfDay(date)
		return start, start.AddDate(0, 0, 1), timeutil.FormatDate(date), true

	case cmd.Flags().Changed("month"):
		date := now
		if reportFlags.month != "current" {
			parsed, err := timeutil.ParsePeriod(reportFlags.month)
			if err != nil {
				_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --month value %q\n", reportFlags.month)
				deps.Exit(1)
				return time.Time{}, time.Time{}, "", false
			}
			date = parsed
		}
		start = timeutil.StartOfMonth(date)
		return start, start.AddDate(0, 1, 0), timeutil.PeriodKey(date), true

	default:
		date := now
		if cmd.Flags().Changed("week") && reportFlags.week != "today" {
			parsed, err := timeutil.ParseDate(reportFlags.week)
			if err != nil {
				_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --week value %q\n", reportFlags.week)
				deps.Exit(1)
				return time.Time{}, time.Time{}, "", false
			}
			date = parsed
		}
		start = timeutil.StartOfWeek(date, weekStartDay)
		end = start.AddDate(0, 0, 7)
		label = fmt.Sprintf("week of %s", timeutil.FormatDate(start))
		return start, end, label, true
	}
}

// printDayTotals renders the per-day table. Empty days are kept so a
// week always shows seven rows.
func printDayTotals(totals []report.DayTotal) {
	table := uitable.New()
	table.AddRow("DATE", "ENTRIES", "TIME")
	for _, dt := range totals {
		table.AddRow(dt.Date, fmt.Sprintf("%d", dt.EntryCount), formatDuration(dt.TotalMinutes))
	}
	_, _ = fmt.Fprintln(deps.Stdout, table)
}

// printBreakdown renders a grouped breakdown table.
func printBreakdown(heading string, breakdowns []report.Breakdown) {
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow(heading, "ENTRIES", "TIME")
	for _, b := range breakdowns {
		table.AddRow(b.Name, fmt.Sprintf("%d", b.EntryCount), formatDuration(b.TotalMinutes))
	}
	_, _ = fmt.Fprintln(deps.Stdout, table)
}
