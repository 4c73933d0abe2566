// Package document parses month documents into dated time entries and
// performs structural edits against the raw text: inserting entries in
// chronological order, replacing and deleting single lines. Lines that
// are neither date-section markers nor entry lines are inert and
// preserved verbatim by every edit.
package document

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/timeutil"
)

const (
	// SectionPrefix starts a date-section marker line ("## 2025-01-15").
	SectionPrefix = "## "
	// ListItemPrefix starts an entry line.
	ListItemPrefix = "- "
)

var (
	sectionPattern  = regexp.MustCompile(`^## (\d{4}-\d{2}-\d{2})\s*$`)
	listItemPattern = regexp.MustCompile(`^\s*- (.*)$`)
)

// ErrPositionOutOfRange is returned when a line position does not exist
// in the document text being edited.
var ErrPositionOutOfRange = errors.New("position out of range")

// Document is the parse result for one period: the ordered entries and
// the same entries bucketed by their own calendar date. Within a date
// bucket, insertion order equals chronological order of start for any
// document maintained through AddEntry.
type Document struct {
	Period  string
	Entries []entry.Entry
	ByDate  map[string][]entry.Entry
}

// EntriesOn returns the entries whose derived date equals the given day.
func (d *Document) EntriesOn(date time.Time) []entry.Entry {
	return d.ByDate[timeutil.FormatDate(date)]
}

// FindByKey locates an entry by its stable key. Returns false when no
// entry in the document has that key.
func (d *Document) FindByKey(key string) (entry.Entry, bool) {
	for _, e := range d.Entries {
		if e.Key() == key {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// Parser parses and edits month documents. The canonical inline-field
// codec is always active; additional decode-only codecs (e.g. the legacy
// table format) can be supplied for reading older documents.
type Parser struct {
	codec  entry.InlineCodec
	legacy []entry.Decoder
}

// NewParser creates a Parser. Legacy decoders, if any, are tried for
// lines that are not inline-field list items.
func NewParser(legacy ...entry.Decoder) *Parser {
	return &Parser{legacy: legacy}
}

// scanState is the immutable context threaded through the parse fold:
// the most recently seen date-section marker, if any. Each line folds
// the previous state into the next and optionally emits a decoded entry.
type scanState struct {
	section    time.Time
	hasSection bool
}

// foldLine advances the scan state over one line. Entries are only
// recognized after a date-section marker; the marker's date is carried
// as fallback context but the emitted entry is bucketed under its own
// derived date, which parse does not validate against the section.
func (p *Parser) foldLine(st scanState, pos int, line string) (scanState, entry.Entry, bool) {
	if m := sectionPattern.FindStringSubmatch(line); m != nil {
		if date, err := timeutil.ParseDate(m[1]); err == nil {
			return scanState{section: date, hasSection: true}, entry.Entry{}, false
		}
		return st, entry.Entry{}, false
	}
	if !st.hasSection {
		return st, entry.Entry{}, false
	}
	e, ok := p.decodeLine(line)
	if !ok {
		return st, entry.Entry{}, false
	}
	e.Position = pos
	return st, e, true
}

// decodeLine decodes one raw document line: inline-field list items via
// the canonical codec, anything else via the legacy decoders. Malformed
// or unrecognized lines are not entries; they never produce an error.
func (p *Parser) decodeLine(line string) (entry.Entry, bool) {
	if m := listItemPattern.FindStringSubmatch(line); m != nil {
		return p.codec.Decode(m[1])
	}
	for _, d := range p.legacy {
		if e, ok := d.Decode(line); ok {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// Parse scans the text top to bottom and collects every decodable entry.
// Unrecognized or malformed list items are skipped silently so plain
// notes can live between entries.
func (p *Parser) Parse(period, text string) *Document {
	doc := &Document{
		Period: period,
		ByDate: make(map[string][]entry.Entry),
	}

	st := scanState{}
	for i, line := range strings.Split(text, "\n") {
		var (
			e  entry.Entry
			ok bool
		)
		st, e, ok = p.foldLine(st, i, line)
		if !ok {
			continue
		}
		doc.Entries = append(doc.Entries, e)
		doc.ByDate[e.DateKey()] = append(doc.ByDate[e.DateKey()], e)
	}
	return doc
}

// AddEntry splices the encoded entry into the text, creating the
// entry's date section in date-sorted position if it does not exist and
// keeping entries within the section in non-decreasing start order. The
// updated text is returned; the input is never modified.
func (p *Parser) AddEntry(text string, e entry.Entry) string {
	e = e.WithDerived()
	dateKey := e.DateKey()
	encoded := ListItemPrefix + p.codec.Encode(e)

	if strings.TrimSpace(text) == "" {
		return SectionPrefix + dateKey + "\n" + encoded + "\n"
	}

	lines := strings.Split(text, "\n")

	sectionIdx := -1
	laterSectionIdx := -1
	for i, line := range lines {
		m := sectionPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[1] == dateKey {
			sectionIdx = i
			break
		}
		if m[1] > dateKey && laterSectionIdx == -1 {
			laterSectionIdx = i
		}
	}

	if sectionIdx == -1 {
		return joinLines(p.insertSection(lines, laterSectionIdx, dateKey, encoded))
	}

	// Scan forward through the section for the first entry starting
	// later than the new one; splice immediately before it, or after the
	// last entry line when none is later.
	insertAt := -1
	lastEntryLine := sectionIdx
	for i := sectionIdx + 1; i < len(lines); i++ {
		if sectionPattern.MatchString(lines[i]) {
			break
		}
		cand, ok := p.decodeLine(lines[i])
		if !ok {
			continue
		}
		if cand.Start.After(e.Start) {
			insertAt = i
			break
		}
		lastEntryLine = i
	}
	if insertAt == -1 {
		insertAt = lastEntryLine + 1
	}

	return joinLines(splice(lines, insertAt, encoded))
}

// insertSection places a brand-new date section either before the first
// later-dated section or at the end of the document.
func (p *Parser) insertSection(lines []string, beforeIdx int, dateKey, encoded string) []string {
	header := SectionPrefix + dateKey
	if beforeIdx >= 0 {
		return splice(lines, beforeIdx, header, encoded, "")
	}

	out := append([]string(nil), lines...)
	// Re-add the trailing newline after appending.
	trailing := len(out) > 0 && out[len(out)-1] == ""
	if trailing {
		out = out[:len(out)-1]
	}
	if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
		out = append(out, "")
	}
	out = append(out, header, encoded)
	if trailing {
		out = append(out, "")
	}
	return out
}

// UpdateEntry replaces the single line at position with the encoded
// entry. It does not re-sort: an update that moves start far enough to
// violate chronological order within its section leaves the order
// unrepaired.
func (p *Parser) UpdateEntry(text string, position int, e entry.Entry) (string, error) {
	lines := strings.Split(text, "\n")
	if position < 0 || position >= len(lines) {
		return "", ErrPositionOutOfRange
	}
	out := append([]string(nil), lines...)
	out[position] = ListItemPrefix + p.codec.Encode(e.WithDerived())
	return joinLines(out), nil
}

// DeleteEntry removes the line at position.
func (p *Parser) DeleteEntry(text string, position int) (string, error) {
	lines := strings.Split(text, "\n")
	if position < 0 || position >= len(lines) {
		return "", ErrPositionOutOfRange
	}
	out := append([]string(nil), lines[:position]...)
	out = append(out, lines[position+1:]...)
	return joinLines(out), nil
}

// splice returns a copy of lines with the given lines inserted at idx.
func splice(lines []string, idx int, insert ...string) []string {
	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:idx]...)
	out = append(out, insert...)
	out = append(out, lines[idx:]...)
	return out
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
