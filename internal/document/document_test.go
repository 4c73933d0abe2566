package document

import (
	"strings"
	"testing"
	"time"

	"github.com/eivindw/timevault/internal/entry"
)

func localTime(d, h, m int) time.Time {
	return time.Date(2025, time.January, d, h, m, 0, 0, time.Local)
}

func testEntry(d, h, m, endH, endM int, desc string) entry.Entry {
	return entry.Entry{
		Start:       localTime(d, h, m),
		End:         localTime(d, endH, endM),
		Description: desc,
	}.WithDerived()
}

const sampleDoc = `# January log

## 2025-01-15
- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:30] standup [client:: acme]
- not an entry, just a note
- [start:: 2025-01-15 14:00] [end:: 2025-01-15 15:00] review [client:: acme]

## 2025-01-16
- [start:: 2025-01-16 08:00] [end:: 2025-01-16 09:00] planning [client:: globex]
`

func TestParse(t *testing.T) {
	p := NewParser()
	doc := p.Parse("2025-01", sampleDoc)

	if len(doc.Entries) != 3 {
		t.Fatalf("parsed %d entries, expected 3", len(doc.Entries))
	}

	descriptions := []string{"standup", "review", "planning"}
	for i, expected := range descriptions {
		if doc.Entries[i].Description != expected {
			t.Errorf("Entries[%d].Description = %q, expected %q", i, doc.Entries[i].Description, expected)
		}
	}

	if got := len(doc.ByDate["2025-01-15"]); got != 2 {
		t.Errorf("ByDate[2025-01-15] has %d entries, expected 2", got)
	}
	if got := len(doc.ByDate["2025-01-16"]); got != 1 {
		t.Errorf("ByDate[2025-01-16] has %d entries, expected 1", got)
	}
}

func TestParsePositions(t *testing.T) {
	p := NewParser()
	doc := p.Parse("2025-01", sampleDoc)

	lines := strings.Split(sampleDoc, "\n")
	for _, e := range doc.Entries {
		decoded, ok := p.decodeLine(lines[e.Position])
		if !ok {
			t.Fatalf("Position %d does not point at an entry line: %q", e.Position, lines[e.Position])
		}
		if decoded.Description != e.Description {
			t.Errorf("line at Position %d decodes to %q, expected %q", e.Position, decoded.Description, e.Description)
		}
	}
}

func TestParseSkipsMalformedItems(t *testing.T) {
	text := "## 2025-01-15\n" +
		"- [start:: 2025-01-15 09:00] morning work without end token\n" +
		"- [start:: 2025-01-15 10:00] [end:: 2025-01-15 11:00] real entry\n"

	doc := NewParser().Parse("2025-01", text)
	if len(doc.Entries) != 1 {
		t.Fatalf("parsed %d entries, expected 1 (malformed item skipped)", len(doc.Entries))
	}
	if doc.Entries[0].Description != "real entry" {
		t.Errorf("Description = %q, expected %q", doc.Entries[0].Description, "real entry")
	}
}

func TestParseIgnoresItemsBeforeFirstSection(t *testing.T) {
	text := "- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] orphan\n" +
		"## 2025-01-15\n" +
		"- [start:: 2025-01-15 11:00] [end:: 2025-01-15 12:00] sectioned\n"

	doc := NewParser().Parse("2025-01", text)
	if len(doc.Entries) != 1 || doc.Entries[0].Description != "sectioned" {
		t.Fatalf("expected only the sectioned entry, got %+v", doc.Entries)
	}
}

func TestParseAcceptsEntryUnderWrongSection(t *testing.T) {
	// The section marker is fallback context only; the entry is bucketed
	// under its own derived date.
	text := "## 2025-01-20\n" +
		"- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] misfiled\n"

	doc := NewParser().Parse("2025-01", text)
	if len(doc.Entries) != 1 {
		t.Fatalf("parsed %d entries, expected 1", len(doc.Entries))
	}
	if got := len(doc.ByDate["2025-01-15"]); got != 1 {
		t.Errorf("ByDate[2025-01-15] has %d entries, expected 1", got)
	}
	if got := len(doc.ByDate["2025-01-20"]); got != 0 {
		t.Errorf("ByDate[2025-01-20] has %d entries, expected 0", got)
	}
}

func TestParseWithLegacyCodec(t *testing.T) {
	text := "## 2025-01-15\n" +
		"| Start | End | Description |\n" +
		"| --- | --- | --- |\n" +
		"| 2025-01-15 09:00 | 2025-01-15 10:30 | table era entry |\n" +
		"- [start:: 2025-01-15 14:00] [end:: 2025-01-15 15:00] inline era entry\n"

	doc := NewParser(entry.TableCodec{}).Parse("2025-01", text)
	if len(doc.Entries) != 2 {
		t.Fatalf("parsed %d entries, expected 2", len(doc.Entries))
	}
	if doc.Entries[0].Description != "table era entry" {
		t.Errorf("Entries[0].Description = %q, expected %q", doc.Entries[0].Description, "table era entry")
	}

	// Without the legacy decoder the table row is inert.
	doc = NewParser().Parse("2025-01", text)
	if len(doc.Entries) != 1 {
		t.Errorf("parsed %d entries without legacy codec, expected 1", len(doc.Entries))
	}
}

func TestAddEntryKeepsChronologicalOrder(t *testing.T) {
	p := NewParser()
	text := "## 2025-01-15\n" +
		"- [start:: 2025-01-15 09:00] [end:: 2025-01-15 09:30] first\n" +
		"- [start:: 2025-01-15 14:00] [end:: 2025-01-15 14:30] third\n"

	updated := p.AddEntry(text, testEntry(15, 11, 0, 11, 30, "second"))

	doc := p.Parse("2025-01", updated)
	var starts []string
	for _, e := range doc.ByDate["2025-01-15"] {
		starts = append(starts, e.Start.Format("15:04"))
	}
	expected := []string{"09:00", "11:00", "14:00"}
	if len(starts) != len(expected) {
		t.Fatalf("got %d entries, expected %d", len(starts), len(expected))
	}
	for i := range expected {
		if starts[i] != expected[i] {
			t.Errorf("entry %d starts at %s, expected %s", i, starts[i], expected[i])
		}
	}
}

func TestAddEntryAppendsWhenLatest(t *testing.T) {
	p := NewParser()
	text := "## 2025-01-15\n" +
		"- [start:: 2025-01-15 09:00] [end:: 2025-01-15 09:30] first\n"

	updated := p.AddEntry(text, testEntry(15, 16, 0, 17, 0, "latest"))

	doc := p.Parse("2025-01", updated)
	entries := doc.ByDate["2025-01-15"]
	if len(entries) != 2 {
		t.Fatalf("got %d entries, expected 2", len(entries))
	}
	if entries[1].Description != "latest" {
		t.Errorf("last entry is %q, expected %q", entries[1].Description, "latest")
	}
}

func TestAddEntryIntoEmptyDocument(t *testing.T) {
	p := NewParser()
	updated := p.AddEntry("", testEntry(15, 9, 0, 10, 0, "first ever"))

	doc := p.Parse("2025-01", updated)
	if len(doc.Entries) != 1 {
		t.Fatalf("parsed %d entries, expected 1", len(doc.Entries))
	}
	if !strings.HasPrefix(updated, "## 2025-01-15\n") {
		t.Errorf("document does not start with the date section: %q", updated)
	}
}

func TestAddEntryCreatesSectionInSortedPosition(t *testing.T) {
	p := NewParser()
	text := "## 2025-01-10\n" +
		"- [start:: 2025-01-10 09:00] [end:: 2025-01-10 10:00] early\n" +
		"\n" +
		"## 2025-01-20\n" +
		"- [start:: 2025-01-20 09:00] [end:: 2025-01-20 10:00] late\n"

	updated := p.AddEntry(text, testEntry(15, 9, 0, 10, 0, "middle"))

	idx10 := strings.Index(updated, "## 2025-01-10")
	idx15 := strings.Index(updated, "## 2025-01-15")
	idx20 := strings.Index(updated, "## 2025-01-20")
	if idx10 == -1 || idx15 == -1 || idx20 == -1 {
		t.Fatalf("missing section markers in:\n%s", updated)
	}
	if !(idx10 < idx15 && idx15 < idx20) {
		t.Errorf("sections out of order in:\n%s", updated)
	}

	doc := p.Parse("2025-01", updated)
	if len(doc.Entries) != 3 {
		t.Errorf("parsed %d entries, expected 3", len(doc.Entries))
	}
}

func TestAddEntryAppendsSectionAtEnd(t *testing.T) {
	p := NewParser()
	text := "## 2025-01-10\n" +
		"- [start:: 2025-01-10 09:00] [end:: 2025-01-10 10:00] early\n"

	updated := p.AddEntry(text, testEntry(25, 9, 0, 10, 0, "new day"))

	doc := p.Parse("2025-01", updated)
	if len(doc.Entries) != 2 {
		t.Fatalf("parsed %d entries, expected 2:\n%s", len(doc.Entries), updated)
	}
	if doc.Entries[1].Description != "new day" {
		t.Errorf("last entry is %q, expected %q", doc.Entries[1].Description, "new day")
	}
}

func TestAddEntryPreservesInertLines(t *testing.T) {
	p := NewParser()
	updated := p.AddEntry(sampleDoc, testEntry(15, 11, 0, 12, 0, "inserted"))

	for _, inert := range []string{"# January log", "- not an entry, just a note"} {
		if !strings.Contains(updated, inert) {
			t.Errorf("inert line %q lost during AddEntry", inert)
		}
	}
}

func TestUpdateEntry(t *testing.T) {
	p := NewParser()
	doc := p.Parse("2025-01", sampleDoc)
	target := doc.Entries[1] // "review"

	changed := target
	changed.Description = "code review"
	changed.End = localTime(15, 16, 0)

	updated, err := p.UpdateEntry(sampleDoc, target.Position, changed)
	if err != nil {
		t.Fatalf("UpdateEntry returned error: %v", err)
	}

	reparsed := p.Parse("2025-01", updated)
	if len(reparsed.Entries) != 3 {
		t.Fatalf("parsed %d entries after update, expected 3", len(reparsed.Entries))
	}
	if reparsed.Entries[1].Description != "code review" {
		t.Errorf("Description = %q, expected %q", reparsed.Entries[1].Description, "code review")
	}
	if reparsed.Entries[1].DurationMinutes != 120 {
		t.Errorf("DurationMinutes = %d, expected 120", reparsed.Entries[1].DurationMinutes)
	}
}

func TestUpdateEntryDoesNotResort(t *testing.T) {
	p := NewParser()
	doc := p.Parse("2025-01", sampleDoc)
	target := doc.Entries[0] // "standup" at 09:00

	// Move it after the 14:00 entry; order is documented as unrepaired.
	changed := target
	changed.Start = localTime(15, 18, 0)
	changed.End = localTime(15, 19, 0)

	updated, err := p.UpdateEntry(sampleDoc, target.Position, changed)
	if err != nil {
		t.Fatalf("UpdateEntry returned error: %v", err)
	}

	reparsed := p.Parse("2025-01", updated)
	day := reparsed.ByDate["2025-01-15"]
	if len(day) != 2 {
		t.Fatalf("got %d entries, expected 2", len(day))
	}
	if day[0].Start.Format("15:04") != "18:00" {
		t.Errorf("first entry starts at %s, expected the out-of-order 18:00", day[0].Start.Format("15:04"))
	}
}

func TestDeleteEntry(t *testing.T) {
	p := NewParser()
	doc := p.Parse("2025-01", sampleDoc)
	target := doc.Entries[0] // "standup"

	updated, err := p.DeleteEntry(sampleDoc, target.Position)
	if err != nil {
		t.Fatalf("DeleteEntry returned error: %v", err)
	}

	if strings.Contains(updated, "standup") {
		t.Error("deleted entry's description still present in document")
	}

	reparsed := p.Parse("2025-01", updated)
	if len(reparsed.Entries) != 2 {
		t.Fatalf("parsed %d entries after delete, expected 2", len(reparsed.Entries))
	}
	// The remaining entries are unaffected.
	if reparsed.Entries[0].Description != "review" {
		t.Errorf("Entries[0].Description = %q, expected %q", reparsed.Entries[0].Description, "review")
	}
}

func TestEditPositionOutOfRange(t *testing.T) {
	p := NewParser()

	if _, err := p.UpdateEntry("one line", 5, testEntry(15, 9, 0, 10, 0, "x")); err != ErrPositionOutOfRange {
		t.Errorf("UpdateEntry error = %v, expected ErrPositionOutOfRange", err)
	}
	if _, err := p.DeleteEntry("one line", -1); err != ErrPositionOutOfRange {
		t.Errorf("DeleteEntry error = %v, expected ErrPositionOutOfRange", err)
	}
}

func TestFindByKey(t *testing.T) {
	p := NewParser()
	doc := p.Parse("2025-01", sampleDoc)

	for _, e := range doc.Entries {
		found, ok := doc.FindByKey(e.Key())
		if !ok {
			t.Fatalf("FindByKey(%q) found nothing", e.Key())
		}
		if found.Position != e.Position {
			t.Errorf("FindByKey(%q).Position = %d, expected %d", e.Key(), found.Position, e.Position)
		}
	}

	if _, ok := doc.FindByKey("nope"); ok {
		t.Error("FindByKey with unknown key reported a match")
	}
}
