// Package entry defines the time entry model and the line codecs that
// translate between entries and their plain-text representation.
package entry

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"time"

	"github.com/eivindw/timevault/internal/timeutil"
)

// Entry represents a single tracked interval of time embedded in a line of
// a month document. Start and End are full local date-time instants; End is
// strictly later than Start for any valid entry.
type Entry struct {
	Start       time.Time
	End         time.Time
	Description string

	// Classification dimensions. Client is required for billing; Project
	// and Activity are optional and mutually exclusive.
	Client     string
	Project    string
	Activity   string
	Tags       []string
	LinkedNote string

	// DurationMinutes is derived from Start and End, never set directly.
	DurationMinutes int

	// Position is the line index this entry was decoded from. It is only
	// meaningful relative to the exact document text it was parsed out of;
	// any structural edit invalidates it until the document is re-parsed.
	Position int
}

// Date returns the calendar date of the entry, derived from its start
// instant. A midnight-spanning entry belongs to the date it starts on.
func (e Entry) Date() time.Time {
	return timeutil.StartOfDay(e.Start)
}

// DateKey returns the entry's date formatted as "YYYY-MM-DD".
func (e Entry) DateKey() string {
	return timeutil.FormatDate(e.Start)
}

// Period returns the year-month period key of the document this entry
// belongs to.
func (e Entry) Period() string {
	return timeutil.PeriodKey(e.Start)
}

// Key returns a stable identifier for the entry derived from its start,
// end and description. Unlike Position it survives structural edits
// elsewhere in the document, so mutations locate entries by key after a
// fresh parse instead of trusting a remembered line number.
func (e Entry) Key() string {
	h := sha256.New()
	h.Write([]byte(timeutil.FormatInstant(e.Start)))
	h.Write([]byte{'|'})
	h.Write([]byte(timeutil.FormatInstant(e.End)))
	h.Write([]byte{'|'})
	h.Write([]byte(e.Description))
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// SpansMidnight reports whether the entry's start and end fall on
// different calendar dates.
func (e Entry) SpansMidnight() bool {
	return !timeutil.StartOfDay(e.Start).Equal(timeutil.StartOfDay(e.End))
}

// Minutes returns the rounded number of minutes between two instants.
func Minutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// WithDerived returns a copy of the entry with its derived fields
// recomputed from Start and End.
func (e Entry) WithDerived() Entry {
	e.DurationMinutes = Minutes(e.Start, e.End)
	return e
}
