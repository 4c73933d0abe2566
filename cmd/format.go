package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/store"
	"github.com/eivindw/timevault/internal/timeutil"
)

// formatDuration formats minutes as a human-readable string
func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// formatEntryLine formats one entry for list output: times, description
// and whatever metadata the entry carries.
func formatEntryLine(e entry.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s-%s  %s (%s)",
		e.Start.Format("15:04"),
		e.End.Format("15:04"),
		e.Description,
		formatDuration(e.DurationMinutes))

	if meta := formatMetadata(e); meta != "" {
		fmt.Fprintf(&b, " [%s]", meta)
	}
	return b.String()
}

// formatMetadata renders an entry's client, project, activity and tags
// as a compact bracket suffix, or "" when the entry has none.
func formatMetadata(e entry.Entry) string {
	var parts []string
	if e.Client != "" {
		parts = append(parts, "@"+e.Client)
	}
	if e.Project != "" {
		parts = append(parts, "+"+e.Project)
	}
	if e.Activity != "" {
		parts = append(parts, "~"+e.Activity)
	}
	for _, tag := range e.Tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

// reportStoreError prints a store error in a user-facing form and exits
// nonzero. Validation and conflict failures get dedicated messages; the
// rest fall through to a generic one.
func reportStoreError(err error) {
	var vErr *store.ValidationError
	var cErr *store.ConflictError

	switch {
	case errors.As(err, &vErr):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid %s: %s\n", vErr.Field, vErr.Reason)
	case errors.As(err, &cErr):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Entry overlaps an existing entry:")
		_, _ = fmt.Fprintf(deps.Stderr, "  %s - %s  %s\n",
			timeutil.FormatInstant(cErr.Existing.Start),
			timeutil.FormatInstant(cErr.Existing.End),
			cErr.Existing.Description)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Adjust the times or delete the conflicting entry first")
	case errors.Is(err, store.ErrNoSuchEntry):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Entry not found. The document may have changed since listing")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'timevault list' again to see current entries")
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	}
	deps.Exit(1)
}

// parseInstantFlag parses a required flag holding a "YYYY-MM-DD HH:mm"
// instant, reporting a usage error when it is missing or malformed.
// ok is false when the caller must stop.
func parseInstantFlag(name, value string) (time.Time, bool) {
	if value == "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: --%s is required\n", name)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Use the format 'YYYY-MM-DD HH:mm', e.g. --%s '2025-01-15 09:00'\n", name)
		deps.Exit(1)
		return time.Time{}, false
	}
	parsed, err := timeutil.ParseInstant(value)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --%s value %q\n", name, value)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Use the format 'YYYY-MM-DD HH:mm', e.g. --%s '2025-01-15 09:00'\n", name)
		deps.Exit(1)
		return time.Time{}, false
	}
	return parsed, true
}

// pluralize returns the singular or plural form of a word based on count
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") && len(word) > 1 && !strings.ContainsRune("aeiou", rune(word[len(word)-2])) {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}
