package entry

import (
	"strings"

	"github.com/eivindw/timevault/internal/timeutil"
)

// TableCodec decodes the historical pipe-table row format:
//
//	| 2025-01-15 09:00 | 2025-01-15 10:30 | description |
//
// It exists for reading documents written before the inline-field grammar
// became canonical and is decode-only: new and rewritten lines always use
// InlineCodec. Header and separator rows fail the date-time parse and are
// skipped like any other non-entry line.
type TableCodec struct{}

// Decode parses a single table row. The first two cells must hold
// date-times in the canonical "YYYY-MM-DD HH:mm" format; the third cell,
// if present, becomes the description. Rows with fewer than two cells or
// unparsable instants are not entries.
func (TableCodec) Decode(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") {
		return Entry{}, false
	}

	cells := strings.Split(strings.Trim(trimmed, "|"), "|")
	if len(cells) < 2 {
		return Entry{}, false
	}

	start, err := timeutil.ParseInstant(strings.TrimSpace(cells[0]))
	if err != nil {
		return Entry{}, false
	}
	end, err := timeutil.ParseInstant(strings.TrimSpace(cells[1]))
	if err != nil {
		return Entry{}, false
	}

	e := Entry{Start: start, End: end}
	if len(cells) > 2 {
		e.Description = strings.TrimSpace(cells[2])
	}
	return e.WithDerived(), true
}
