package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/eivindw/timevault/internal/document"
	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/filter"
	"github.com/eivindw/timevault/internal/timeutil"
)

var listFlags struct {
	keyword string
	client  string
	project string
	tags    []string
}

var dayHeader = color.New(color.FgCyan, color.Bold)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [date|month]",
	Short: "List entries for a day or a month",
	Long: `List time entries for a single day or a whole month.

Without an argument, lists today. A YYYY-MM-DD argument lists that day;
a YYYY-MM argument lists the whole month grouped by day.

The index in front of each entry is its position within the day, used
by the edit and delete commands.

Examples:
  timevault list                      List today's entries
  timevault list 2025-01-15           List a specific day
  timevault list 2025-01              List a whole month
  timevault list 2025-01 --client acme --tags urgent`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		if len(arg) == len("2006-01") {
			listMonth(arg)
			return
		}
		listDay(arg)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFlags.keyword, "keyword", "", "Filter by description substring")
	listCmd.Flags().StringVar(&listFlags.client, "client", "", "Filter by client")
	listCmd.Flags().StringVar(&listFlags.project, "project", "", "Filter by project")
	listCmd.Flags().StringSliceVar(&listFlags.tags, "tags", nil, "Filter by tags (all must match)")
}

func listFilter() *filter.Filter {
	return filter.NewFilter(listFlags.keyword, listFlags.client, listFlags.project, listFlags.tags)
}

// listDay lists the entries of a single day. An empty dateArg means
// today.
func listDay(dateArg string) {
	date := time.Now()
	if dateArg != "" {
		parsed, err := timeutil.ParseDate(dateArg)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date %q\n", dateArg)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'YYYY-MM-DD' for a day or 'YYYY-MM' for a month")
			deps.Exit(1)
			return
		}
		date = parsed
	}

	doc, ok := loadMonth(timeutil.PeriodKey(date))
	if !ok {
		return
	}

	entries := filter.FilterEntries(doc.EntriesOn(date), listFilter())
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", timeutil.FormatDate(date))
		return
	}

	printDay(timeutil.FormatDate(date), entries)
}

// listMonth lists a whole month grouped by day.
func listMonth(periodArg string) {
	if _, err := timeutil.ParsePeriod(periodArg); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid month %q\n", periodArg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'YYYY-MM', e.g. 2025-01")
		deps.Exit(1)
		return
	}

	doc, ok := loadMonth(periodArg)
	if !ok {
		return
	}

	f := listFilter()
	totalMinutes := 0
	totalEntries := 0

	for _, dateKey := range sortedDateKeys(doc) {
		entries := filter.FilterEntries(doc.ByDate[dateKey], f)
		if len(entries) == 0 {
			continue
		}
		printDay(dateKey, entries)
		_, _ = fmt.Fprintln(deps.Stdout)

		totalEntries += len(entries)
		for _, e := range entries {
			totalMinutes += e.DurationMinutes
		}
	}

	if totalEntries == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s\n", periodArg)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Month total: %s across %d %s\n",
		formatDuration(totalMinutes), totalEntries, pluralize("entry", totalEntries))
}

// loadMonth opens the store and parses one month document, reporting
// failures through deps.
func loadMonth(period string) (*document.Document, bool) {
	s, _, _, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return nil, false
	}

	doc, err := s.Month(period)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return nil, false
	}
	return doc, true
}

// printDay prints one day's entries with 1-based indices and a total.
func printDay(dateKey string, entries []entry.Entry) {
	_, _ = fmt.Fprintln(deps.Stdout, dayHeader.Sprint(dateKey))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	maxIndexWidth := len(fmt.Sprintf("%d", len(entries)))
	totalMinutes := 0
	for i, e := range entries {
		_, _ = fmt.Fprintf(deps.Stdout, "[%*d] %s\n", maxIndexWidth, i+1, formatEntryLine(e))
		totalMinutes += e.DurationMinutes
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", formatDuration(totalMinutes))
}

// sortedDateKeys returns the document's date keys in ascending order.
// The keys sort lexicographically because they are zero-padded.
func sortedDateKeys(doc *document.Document) []string {
	keys := make([]string, 0, len(doc.ByDate))
	for key := range doc.ByDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
