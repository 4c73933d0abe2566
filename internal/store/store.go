// Package store orchestrates time entry mutations against a document
// store collaborator: it validates requests, recomputes derived fields,
// rejects overlapping entries before any write, splices the document
// text through the document package, and maintains a per-period parse
// cache. Every mutation is a full read-modify-write round trip over one
// period's text.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/eivindw/timevault/internal/document"
	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/interval"
	"github.com/eivindw/timevault/internal/timeutil"
)

// DocumentStore is the collaborator that owns the backing text of each
// period. found is false when no document exists for the period, which
// the store treats as an empty document rather than an error.
type DocumentStore interface {
	ReadText(period string) (text string, found bool, err error)
	WriteText(period string, text string) error
	EnsureContainerExists() error
}

// Request describes a new entry to create. Date and duration are
// derived from Start and End, never supplied.
type Request struct {
	Start       time.Time
	End         time.Time
	Description string
	Client      string
	Project     string
	Activity    string
	Tags        []string
	LinkedNote  string
}

// Changes describes a partial update. Nil fields are left unchanged.
type Changes struct {
	Start       *time.Time
	End         *time.Time
	Description *string
	Client      *string
	Project     *string
	Activity    *string
	Tags        *[]string
	LinkedNote  *string
}

// EntryMinutes pairs an entry with the portion of its duration that
// falls inside a query window.
type EntryMinutes struct {
	Entry   entry.Entry
	Minutes int
}

// Store is the entry store. Mutating operations on the same period are
// serialized through a per-period mutex; reads may run unsynchronized
// against whatever text the collaborator currently holds.
type Store struct {
	docs   DocumentStore
	parser *document.Parser

	mu    sync.Mutex
	cache map[string]*document.Document
	locks map[string]*sync.Mutex
}

// New creates a Store over the given collaborator. The parser reads the
// canonical inline-field grammar and, decode-only, the legacy table
// format.
func New(docs DocumentStore) *Store {
	return &Store{
		docs:   docs,
		parser: document.NewParser(entry.TableCodec{}),
		cache:  make(map[string]*document.Document),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Create validates the request, rejects it on overlap with an existing
// entry, splices the new line into the period document and writes the
// document back. The returned entry carries the recomputed derived
// fields. No partial write happens on any failure.
func (s *Store) Create(req Request) (entry.Entry, error) {
	e, err := entryFromRequest(req)
	if err != nil {
		return entry.Entry{}, err
	}

	if err := s.docs.EnsureContainerExists(); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to prepare document container: %w", err)
	}

	unlock := s.lockPeriods(conflictPeriods(e))
	defer unlock()

	texts := newTextLoader(s.docs)
	if err := s.checkConflict(texts, e, ""); err != nil {
		return entry.Entry{}, err
	}

	text, err := texts.load(e.Period())
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.docs.WriteText(e.Period(), s.parser.AddEntry(text, e)); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to write document: %w", err)
	}
	s.Invalidate(e.Period())
	return e, nil
}

// Update merges changes into a copy of old, recomputes derived fields,
// and re-validates non-overlap against other entries on the possibly new
// date, excluding the edited entry itself. A date change is performed as
// delete-then-add so the entry lands in the right section in order; a
// same-date edit replaces the line in place.
func (s *Store) Update(old entry.Entry, changes Changes) (entry.Entry, error) {
	merged, err := applyChanges(old, changes)
	if err != nil {
		return entry.Entry{}, err
	}

	srcPeriod := old.Period()
	dstPeriod := merged.Period()
	unlock := s.lockPeriods(append(conflictPeriods(merged), srcPeriod))
	defer unlock()

	texts := newTextLoader(s.docs)
	srcText, err := texts.load(srcPeriod)
	if err != nil {
		return entry.Entry{}, err
	}

	located, ok := s.parser.Parse(srcPeriod, srcText).FindByKey(old.Key())
	if !ok {
		return entry.Entry{}, ErrNoSuchEntry
	}

	if err := s.checkConflict(texts, merged, old.Key()); err != nil {
		return entry.Entry{}, err
	}

	if old.DateKey() == merged.DateKey() {
		updated, err := s.parser.UpdateEntry(srcText, located.Position, merged)
		if err != nil {
			return entry.Entry{}, err
		}
		if err := s.docs.WriteText(srcPeriod, updated); err != nil {
			return entry.Entry{}, fmt.Errorf("failed to write document: %w", err)
		}
		s.Invalidate(srcPeriod)
		return merged, nil
	}

	deleted, err := s.parser.DeleteEntry(srcText, located.Position)
	if err != nil {
		return entry.Entry{}, err
	}

	if srcPeriod == dstPeriod {
		if err := s.docs.WriteText(srcPeriod, s.parser.AddEntry(deleted, merged)); err != nil {
			return entry.Entry{}, fmt.Errorf("failed to write document: %w", err)
		}
		s.Invalidate(srcPeriod)
		return merged, nil
	}

	// Two independent round trips when the entry moves between periods.
	if err := s.docs.WriteText(srcPeriod, deleted); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to write source document: %w", err)
	}
	s.Invalidate(srcPeriod)

	dstText, _, err := s.docs.ReadText(dstPeriod)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to read target document: %w", err)
	}
	if err := s.docs.WriteText(dstPeriod, s.parser.AddEntry(dstText, merged)); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to write target document: %w", err)
	}
	s.Invalidate(dstPeriod)
	return merged, nil
}

// Delete removes the entry's line from its document. The entry is
// located by its stable key; ErrNoSuchEntry is returned when the
// document no longer contains it.
func (s *Store) Delete(e entry.Entry) error {
	period := e.Period()
	unlock := s.lockPeriods([]string{period})
	defer unlock()

	text, _, err := s.docs.ReadText(period)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	located, ok := s.parser.Parse(period, text).FindByKey(e.Key())
	if !ok {
		return ErrNoSuchEntry
	}

	updated, err := s.parser.DeleteEntry(text, located.Position)
	if err != nil {
		return err
	}
	if err := s.docs.WriteText(period, updated); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	s.Invalidate(period)
	return nil
}

// Month returns the parsed document for a period, from cache when
// available. A missing document parses as empty.
func (s *Store) Month(period string) (*document.Document, error) {
	s.mu.Lock()
	if doc, ok := s.cache[period]; ok {
		s.mu.Unlock()
		return doc, nil
	}
	s.mu.Unlock()

	text, _, err := s.docs.ReadText(period)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc := s.parser.Parse(period, text)

	s.mu.Lock()
	s.cache[period] = doc
	s.mu.Unlock()
	return doc, nil
}

// Invalidate drops the cached parse for a period. It is called after
// every successful write and on external-change notifications; the next
// read re-parses.
func (s *Store) Invalidate(period string) {
	s.mu.Lock()
	delete(s.cache, period)
	s.mu.Unlock()
}

// InvalidateAll drops every cached parse.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]*document.Document)
	s.mu.Unlock()
}

// WouldOverlap reports the first existing entry the candidate would
// conflict with, or nil. Entries sharing the candidate's key are
// excluded, so an edited entry never conflicts with itself.
func (s *Store) WouldOverlap(candidate entry.Entry) (*entry.Entry, error) {
	candidate = candidate.WithDerived()
	texts := newTextLoader(s.docs)
	err := s.checkConflict(texts, candidate, candidate.Key())
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return &conflict.Existing, nil
	}
	return nil, err
}

// EntriesInRange returns every entry whose interval intersects the
// query window [start, end], across all periods the window touches.
func (s *Store) EntriesInRange(start, end time.Time) ([]entry.Entry, error) {
	var entries []entry.Entry
	for _, period := range timeutil.PeriodsInRange(start, end) {
		doc, err := s.Month(period)
		if err != nil {
			return nil, err
		}
		for _, e := range doc.Entries {
			if interval.Overlaps(e.Start, e.End, start, end) {
				entries = append(entries, e)
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries, nil
}

// EffectiveDurations returns, for a query window, each intersecting
// entry paired with the portion of its duration inside the window. This
// is the report-facing surface: a midnight-spanning entry contributes
// its clamped minutes to each bucket the caller queries.
func (s *Store) EffectiveDurations(start, end time.Time) ([]EntryMinutes, error) {
	entries, err := s.EntriesInRange(start, end)
	if err != nil {
		return nil, err
	}
	result := make([]EntryMinutes, 0, len(entries))
	for _, e := range entries {
		minutes := interval.EffectiveMinutes(e.Start, e.End, start, end)
		if minutes > 0 {
			result = append(result, EntryMinutes{Entry: e, Minutes: minutes})
		}
	}
	return result, nil
}

// checkConflict tests the candidate against existing entries bucketed on
// both the candidate's start date and the date its interval reaches
// into. The reference behavior checked the start date only; checking the
// end date as well closes the gap for midnight-spanning candidates.
func (s *Store) checkConflict(texts *textLoader, candidate entry.Entry, excludeKey string) error {
	for _, day := range conflictDays(candidate) {
		period := timeutil.PeriodKey(day)
		text, err := texts.load(period)
		if err != nil {
			return err
		}
		doc := s.parser.Parse(period, text)
		for _, other := range doc.EntriesOn(day) {
			if excludeKey != "" && other.Key() == excludeKey {
				continue
			}
			if interval.Overlaps(candidate.Start, candidate.End, other.Start, other.End) {
				return &ConflictError{Existing: other}
			}
		}
	}
	return nil
}

// conflictDays returns the calendar dates whose buckets must be checked
// for overlap: the start date, and the last date the half-open interval
// reaches into when that differs.
func conflictDays(e entry.Entry) []time.Time {
	startDay := timeutil.StartOfDay(e.Start)
	lastDay := timeutil.StartOfDay(e.End.Add(-time.Nanosecond))
	if lastDay.Equal(startDay) {
		return []time.Time{startDay}
	}
	return []time.Time{startDay, lastDay}
}

// conflictPeriods returns the period keys covering conflictDays.
func conflictPeriods(e entry.Entry) []string {
	var periods []string
	for _, day := range conflictDays(e) {
		periods = append(periods, timeutil.PeriodKey(day))
	}
	return periods
}

// lockPeriods acquires the per-period mutexes for the given periods in
// sorted order (deduplicated) and returns the matching unlock function.
// Sorting keeps two cross-period operations from deadlocking.
func (s *Store) lockPeriods(periods []string) func() {
	uniq := make([]string, 0, len(periods))
	seen := make(map[string]bool, len(periods))
	for _, p := range periods {
		if !seen[p] {
			seen[p] = true
			uniq = append(uniq, p)
		}
	}
	sort.Strings(uniq)

	locks := make([]*sync.Mutex, 0, len(uniq))
	s.mu.Lock()
	for _, p := range uniq {
		if s.locks[p] == nil {
			s.locks[p] = &sync.Mutex{}
		}
		locks = append(locks, s.locks[p])
	}
	s.mu.Unlock()

	for _, l := range locks {
		l.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// entryFromRequest validates a create request and materializes the
// entry with derived fields computed.
func entryFromRequest(req Request) (entry.Entry, error) {
	e := entry.Entry{
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
		Client:      req.Client,
		Project:     req.Project,
		Activity:    req.Activity,
		Tags:        req.Tags,
		LinkedNote:  req.LinkedNote,
	}
	if err := validate(e); err != nil {
		return entry.Entry{}, err
	}
	return e.WithDerived(), nil
}

// applyChanges merges a partial update into a copy of the entry and
// re-validates the result.
func applyChanges(e entry.Entry, c Changes) (entry.Entry, error) {
	if c.Start != nil {
		e.Start = *c.Start
	}
	if c.End != nil {
		e.End = *c.End
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.Client != nil {
		e.Client = *c.Client
	}
	if c.Project != nil {
		e.Project = *c.Project
	}
	if c.Activity != nil {
		e.Activity = *c.Activity
	}
	if c.Tags != nil {
		e.Tags = *c.Tags
	}
	if c.LinkedNote != nil {
		e.LinkedNote = *c.LinkedNote
	}
	if err := validate(e); err != nil {
		return entry.Entry{}, err
	}
	return e.WithDerived(), nil
}

// validate enforces the write-time invariants: required fields present,
// project and activity mutually exclusive, end strictly later than start.
func validate(e entry.Entry) error {
	if e.Start.IsZero() {
		return &ValidationError{Field: "start", Reason: "is required"}
	}
	if e.End.IsZero() {
		return &ValidationError{Field: "end", Reason: "is required"}
	}
	if !e.End.After(e.Start) {
		return &ValidationError{Field: "end", Reason: "must be later than start"}
	}
	if e.Description == "" {
		return &ValidationError{Field: "description", Reason: "cannot be empty"}
	}
	if e.Client == "" {
		return &ValidationError{Field: "client", Reason: "is required"}
	}
	if e.Project != "" && e.Activity != "" {
		return &ValidationError{Field: "activity", Reason: "project and activity are mutually exclusive"}
	}
	return nil
}

// textLoader reads each period's text at most once per operation, so
// the conflict check and the splice see the same document state.
type textLoader struct {
	docs  DocumentStore
	texts map[string]string
}

func newTextLoader(docs DocumentStore) *textLoader {
	return &textLoader{docs: docs, texts: make(map[string]string)}
}

func (l *textLoader) load(period string) (string, error) {
	if text, ok := l.texts[period]; ok {
		return text, nil
	}
	text, _, err := l.docs.ReadText(period)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	l.texts[period] = text
	return text, nil
}
