// Package report aggregates time entries over a date range. All totals
// use effective durations: an entry's minutes are clamped to the range,
// so an overnight entry contributes only the part inside it.
package report

import (
	"sort"
	"time"

	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/interval"
	"github.com/eivindw/timevault/internal/timeutil"
)

// Summary contains aggregated totals for a set of entries
type Summary struct {
	TotalMinutes         int
	AverageMinutesPerDay float64
	EntryCount           int
	DaysWithEntries      int
}

// DayTotal contains the total for a single day within a range
type DayTotal struct {
	Date         string
	TotalMinutes int
	EntryCount   int
}

// Breakdown contains totals for a single grouping key (client, project
// or tag)
type Breakdown struct {
	Name         string
	TotalMinutes int
	EntryCount   int
}

// CalculateSummary computes totals for entries within the given range.
// Entries that fall entirely outside the range are ignored.
func CalculateSummary(entries []entry.Entry, start, end time.Time) Summary {
	summary := Summary{}

	if len(entries) == 0 {
		return summary
	}

	daysWithEntries := make(map[string]bool)

	for _, e := range entries {
		if !interval.Overlaps(e.Start, e.End, start, end) {
			continue
		}

		summary.TotalMinutes += interval.EffectiveMinutes(e.Start, e.End, start, end)
		summary.EntryCount++
		daysWithEntries[e.DateKey()] = true
	}

	summary.DaysWithEntries = len(daysWithEntries)

	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays > 0 {
		summary.AverageMinutesPerDay = float64(summary.TotalMinutes) / float64(totalDays)
	}

	return summary
}

// CalculateDayTotals buckets entries into per-day totals across the
// range, oldest day first. Days without entries are included with zero
// totals so a week renders as seven rows. An overnight entry counts
// toward each day it touches, split at midnight.
func CalculateDayTotals(entries []entry.Entry, start, end time.Time) []DayTotal {
	var totals []DayTotal

	for day := timeutil.StartOfDay(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1)

		total := DayTotal{Date: timeutil.FormatDate(day)}
		for _, e := range entries {
			if !interval.Overlaps(e.Start, e.End, day, dayEnd) {
				continue
			}
			total.TotalMinutes += interval.EffectiveMinutes(e.Start, e.End, day, dayEnd)
			total.EntryCount++
		}
		totals = append(totals, total)
	}

	return totals
}

// CalculateClientBreakdown groups entries by client and returns the
// breakdown sorted by total minutes descending. Entries without a
// client are grouped under "(no client)".
func CalculateClientBreakdown(entries []entry.Entry, start, end time.Time) []Breakdown {
	return calculateBreakdown(entries, start, end, func(e entry.Entry) []string {
		if e.Client == "" {
			return []string{"(no client)"}
		}
		return []string{e.Client}
	})
}

// CalculateProjectBreakdown groups entries by project and returns the
// breakdown sorted by total minutes descending. Entries without a
// project are grouped under "(no project)".
func CalculateProjectBreakdown(entries []entry.Entry, start, end time.Time) []Breakdown {
	return calculateBreakdown(entries, start, end, func(e entry.Entry) []string {
		if e.Project == "" {
			return []string{"(no project)"}
		}
		return []string{e.Project}
	})
}

// CalculateTagBreakdown groups entries by tag and returns the breakdown
// sorted by total minutes descending. Entries with multiple tags
// contribute to each tag; entries without tags are grouped under
// "(no tags)".
func CalculateTagBreakdown(entries []entry.Entry, start, end time.Time) []Breakdown {
	return calculateBreakdown(entries, start, end, func(e entry.Entry) []string {
		if len(e.Tags) == 0 {
			return []string{"(no tags)"}
		}
		return e.Tags
	})
}

// calculateBreakdown accumulates effective minutes per grouping key.
// keysOf returns the keys an entry contributes to.
func calculateBreakdown(entries []entry.Entry, start, end time.Time, keysOf func(entry.Entry) []string) []Breakdown {
	if len(entries) == 0 {
		return []Breakdown{}
	}

	groups := make(map[string]*Breakdown)

	for _, e := range entries {
		if !interval.Overlaps(e.Start, e.End, start, end) {
			continue
		}
		minutes := interval.EffectiveMinutes(e.Start, e.End, start, end)

		for _, key := range keysOf(e) {
			if _, exists := groups[key]; !exists {
				groups[key] = &Breakdown{Name: key}
			}
			groups[key].TotalMinutes += minutes
			groups[key].EntryCount++
		}
	}

	var breakdowns []Breakdown
	for _, b := range groups {
		breakdowns = append(breakdowns, *b)
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].TotalMinutes != breakdowns[j].TotalMinutes {
			return breakdowns[i].TotalMinutes > breakdowns[j].TotalMinutes
		}
		return breakdowns[i].Name < breakdowns[j].Name
	})

	return breakdowns
}
