package store

import (
	"errors"
	"fmt"

	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/timeutil"
)

// ErrNoSuchEntry is returned when an entry's key no longer resolves to a
// line in its document, e.g. after the document changed externally.
var ErrNoSuchEntry = errors.New("no such entry")

// ValidationError reports a rejected create or update, naming the
// offending field. Nothing is written when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports an overlap with an existing entry. It carries
// the conflicting entry so callers can display its identity and time
// range.
type ConflictError struct {
	Existing entry.Entry
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps existing entry %q (%s - %s)",
		e.Existing.Description,
		timeutil.FormatInstant(e.Existing.Start),
		timeutil.FormatInstant(e.Existing.End))
}
