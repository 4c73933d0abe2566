package entry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eivindw/timevault/internal/timeutil"
)

// Decoder turns one textual line (already stripped of its list-item
// marker) into an Entry, or reports that the line is not an entry.
// Decoding is tolerant: malformed optional content never produces an
// error, it simply leaves the corresponding field unset.
type Decoder interface {
	Decode(line string) (Entry, bool)
}

// inlineFieldPattern matches bracketed [key:: value] tokens. The key is
// matched case-insensitively; the value is all text up to the next ']'.
var inlineFieldPattern = regexp.MustCompile(`\[([A-Za-z]+)::([^\]]*)\]`)

// wikilinkPattern matches a double-bracketed [[path]] reference token.
var wikilinkPattern = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// whitespacePattern collapses runs of whitespace left behind by token removal.
var whitespacePattern = regexp.MustCompile(`\s+`)

// InlineCodec is the canonical line codec. It reads and writes the
// bracketed inline-field grammar:
//
//	[start:: 2025-01-15 09:00] [end:: 2025-01-15 10:30] description [client:: acme] [tags:: a, b] [[note]]
//
// Required tokens are start and end; everything else is optional.
type InlineCodec struct{}

// Decode scans the line for inline-field tokens and at most one wikilink,
// removes them, and treats the remaining trimmed text as the description.
// It returns false when the start or end token is absent or does not
// match the "YYYY-MM-DD HH:mm" pattern, so callers can skip plain notes
// and other non-entry list items without error.
func (InlineCodec) Decode(line string) (Entry, bool) {
	var e Entry

	// The wikilink is extracted first so that a path containing "::"
	// cannot be misread as an inline field.
	rest := line
	if m := wikilinkPattern.FindStringSubmatch(rest); m != nil {
		e.LinkedNote = strings.TrimSpace(m[1])
		rest = strings.Replace(rest, m[0], " ", 1)
	}

	var haveStart, haveEnd bool
	for _, m := range inlineFieldPattern.FindAllStringSubmatch(rest, -1) {
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "start":
			t, err := timeutil.ParseInstant(value)
			if err != nil {
				return Entry{}, false
			}
			e.Start = t
			haveStart = true
		case "end":
			t, err := timeutil.ParseInstant(value)
			if err != nil {
				return Entry{}, false
			}
			e.End = t
			haveEnd = true
		case "client":
			e.Client = value
		case "project":
			e.Project = value
		case "activity":
			e.Activity = value
		case "tags":
			e.Tags = splitTags(value)
		}
		// Unknown keys are removed from the description but otherwise
		// ignored.
	}
	if !haveStart || !haveEnd {
		return Entry{}, false
	}

	rest = inlineFieldPattern.ReplaceAllString(rest, " ")
	e.Description = strings.TrimSpace(whitespacePattern.ReplaceAllString(rest, " "))

	return e.WithDerived(), true
}

// Encode renders an entry in canonical token order: start, end,
// description, client, project, activity, tags, wikilink. Unset optional
// fields are omitted entirely, so Decode(Encode(e)) reproduces e's
// semantic fields exactly.
func (InlineCodec) Encode(e Entry) string {
	parts := []string{
		fmt.Sprintf("[start:: %s]", timeutil.FormatInstant(e.Start)),
		fmt.Sprintf("[end:: %s]", timeutil.FormatInstant(e.End)),
	}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Client != "" {
		parts = append(parts, fmt.Sprintf("[client:: %s]", e.Client))
	}
	if e.Project != "" {
		parts = append(parts, fmt.Sprintf("[project:: %s]", e.Project))
	}
	if e.Activity != "" {
		parts = append(parts, fmt.Sprintf("[activity:: %s]", e.Activity))
	}
	if len(e.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("[tags:: %s]", strings.Join(e.Tags, ", ")))
	}
	if e.LinkedNote != "" {
		parts = append(parts, fmt.Sprintf("[[%s]]", e.LinkedNote))
	}
	return strings.Join(parts, " ")
}

// splitTags splits a comma-separated tag list, trimming each tag and
// dropping empties.
func splitTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
