package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/store"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		minutes  int
		expected string
	}{
		{"30 minutes", 30, "30m"},
		{"1 hour", 60, "1h"},
		{"1 hour 30 minutes", 90, "1h 30m"},
		{"2 hours", 120, "2h"},
		{"2 hours 15 minutes", 135, "2h 15m"},
		{"24 hours", 1440, "24h"},
		{"zero", 0, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatDuration(tt.minutes)
			if result != tt.expected {
				t.Errorf("formatDuration(%d) = %q, expected %q", tt.minutes, result, tt.expected)
			}
		})
	}
}

func TestFormatEntryLine(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		entry    entry.Entry
		expected string
	}{
		{
			name: "bare entry",
			entry: entry.Entry{
				Start:           start,
				End:             start.Add(90 * time.Minute),
				Description:     "code review",
				DurationMinutes: 90,
			},
			expected: "09:00-10:30  code review (1h 30m)",
		},
		{
			name: "full metadata",
			entry: entry.Entry{
				Start:           start,
				End:             start.Add(time.Hour),
				Description:     "feature work",
				Client:          "acme",
				Project:         "website",
				Tags:            []string{"dev", "urgent"},
				DurationMinutes: 60,
			},
			expected: "09:00-10:00  feature work (1h) [@acme +website #dev #urgent]",
		},
		{
			name: "activity entry",
			entry: entry.Entry{
				Start:           start,
				End:             start.Add(time.Hour),
				Description:     "standup",
				Client:          "acme",
				Activity:        "meetings",
				DurationMinutes: 60,
			},
			expected: "09:00-10:00  standup (1h) [@acme ~meetings]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatEntryLine(tt.entry)
			if result != tt.expected {
				t.Errorf("formatEntryLine() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestReportStoreError(t *testing.T) {
	start := time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation error",
			err:      &store.ValidationError{Field: "client", Reason: "is required"},
			expected: "Invalid client: is required",
		},
		{
			name: "conflict error",
			err: &store.ConflictError{Existing: entry.Entry{
				Start:       start,
				End:         start.Add(time.Hour),
				Description: "existing work",
			}},
			expected: "overlaps an existing entry",
		},
		{
			name:     "missing entry",
			err:      store.ErrNoSuchEntry,
			expected: "Entry not found",
		},
		{
			name:     "generic error",
			err:      errors.New("disk on fire"),
			expected: "disk on fire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTest(t)

			reportStoreError(tt.err)

			if !env.exited || env.exitCode != 1 {
				t.Error("reportStoreError should exit 1")
			}
			if !strings.Contains(env.stderr.String(), tt.expected) {
				t.Errorf("Stderr missing %q, got: %s", tt.expected, env.stderr.String())
			}
		})
	}
}

func TestParseInstantFlag(t *testing.T) {
	t.Run("valid instant", func(t *testing.T) {
		setupTest(t)

		parsed, ok := parseInstantFlag("start", "2025-01-15 09:00")
		if !ok {
			t.Fatal("parseInstantFlag rejected a valid instant")
		}
		if parsed.Hour() != 9 || parsed.Day() != 15 {
			t.Errorf("parsed = %v, expected 2025-01-15 09:00", parsed)
		}
	})

	t.Run("missing value", func(t *testing.T) {
		env := setupTest(t)

		_, ok := parseInstantFlag("start", "")
		if ok {
			t.Error("parseInstantFlag accepted an empty value")
		}
		if !strings.Contains(env.stderr.String(), "--start is required") {
			t.Errorf("Stderr missing message, got: %s", env.stderr.String())
		}
	})

	t.Run("malformed value", func(t *testing.T) {
		env := setupTest(t)

		_, ok := parseInstantFlag("end", "next tuesday")
		if ok {
			t.Error("parseInstantFlag accepted a malformed value")
		}
		if !strings.Contains(env.stderr.String(), "Invalid --end value") {
			t.Errorf("Stderr missing message, got: %s", env.stderr.String())
		}
	})
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		word     string
		count    int
		expected string
	}{
		{"entry", 1, "entry"},
		{"entry", 2, "entries"},
		{"day", 1, "day"},
		{"day", 3, "days"},
	}

	for _, tt := range tests {
		if got := pluralize(tt.word, tt.count); got != tt.expected {
			t.Errorf("pluralize(%q, %d) = %q, expected %q", tt.word, tt.count, got, tt.expected)
		}
	}
}
