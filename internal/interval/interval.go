// Package interval implements the temporal algebra for time entries:
// overlap detection between two intervals and the effective duration of
// an interval inside a query window.
package interval

import (
	"math"
	"time"
)

// Overlaps reports whether two intervals intersect under half-open
// semantics: [aStart, aEnd) and [bStart, bEnd) overlap when
// aStart < bEnd and aEnd > bStart. Intervals that merely touch, one's
// end equal to the other's start, do not overlap. The check is
// symmetric; comparing an entry against itself is the caller's job to
// filter out.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// EffectiveMinutes computes the portion of [start, end] that lies inside
// [rangeStart, rangeEnd], rounded to whole minutes and never negative.
// Clamping both edges means a midnight-spanning entry contributes
// partial minutes to each calendar bucket it intersects; summing the
// results over adjacent buckets covering the whole interval yields the
// entry's total duration.
func EffectiveMinutes(start, end, rangeStart, rangeEnd time.Time) int {
	effStart := start
	if rangeStart.After(effStart) {
		effStart = rangeStart
	}
	effEnd := end
	if rangeEnd.Before(effEnd) {
		effEnd = rangeEnd
	}
	if !effEnd.After(effStart) {
		return 0
	}
	return int(math.Round(effEnd.Sub(effStart).Minutes()))
}
