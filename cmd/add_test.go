package cmd

import (
	"strings"
	"testing"
)

func resetAddFlags() {
	addFlags.start = ""
	addFlags.end = ""
	addFlags.client = ""
	addFlags.project = ""
	addFlags.activity = ""
	addFlags.tags = nil
	addFlags.note = ""
}

func TestAddEntry_Success(t *testing.T) {
	env := setupTest(t)
	defer resetAddFlags()

	addFlags.start = "2025-01-15 09:00"
	addFlags.end = "2025-01-15 10:30"
	addFlags.client = "acme"
	addEntry([]string{"code", "review"})

	if env.exited {
		t.Fatalf("addEntry exited with code %d, stderr: %s", env.exitCode, env.stderr.String())
	}

	output := env.stdout.String()
	if !strings.Contains(output, "Added:") {
		t.Errorf("Output missing 'Added:', got: %s", output)
	}
	if !strings.Contains(output, "code review") {
		t.Errorf("Output missing description, got: %s", output)
	}
	if !strings.Contains(output, "1h 30m") {
		t.Errorf("Output missing duration, got: %s", output)
	}

	text := env.readDocument(t, "2025-01")
	if !strings.Contains(text, "## 2025-01-15") {
		t.Errorf("Document missing day section, got: %s", text)
	}
	if !strings.Contains(text, "[start:: 2025-01-15 09:00]") {
		t.Errorf("Document missing start field, got: %s", text)
	}
	if !strings.Contains(text, "[client:: acme]") {
		t.Errorf("Document missing client field, got: %s", text)
	}
}

func TestAddEntry_MidnightSpanNote(t *testing.T) {
	env := setupTest(t)
	defer resetAddFlags()

	addFlags.start = "2025-01-15 23:00"
	addFlags.end = "2025-01-16 01:00"
	addFlags.client = "acme"
	addEntry([]string{"deploy"})

	if env.exited {
		t.Fatalf("addEntry exited, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "spans midnight") {
		t.Errorf("Output missing midnight note, got: %s", env.stdout.String())
	}

	// The entry lives in its start date's section.
	text := env.readDocument(t, "2025-01")
	if !strings.Contains(text, "## 2025-01-15") {
		t.Errorf("Document missing start-day section, got: %s", text)
	}
}

func TestAddEntry_ValidationFailure(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		args     []string
		expected string
	}{
		{
			name: "end before start",
			setup: func() {
				addFlags.start = "2025-01-15 10:00"
				addFlags.end = "2025-01-15 09:00"
				addFlags.client = "acme"
			},
			args:     []string{"work"},
			expected: "Invalid end",
		},
		{
			name: "missing client",
			setup: func() {
				addFlags.start = "2025-01-15 09:00"
				addFlags.end = "2025-01-15 10:00"
			},
			args:     []string{"work"},
			expected: "Invalid client",
		},
		{
			name: "project and activity together",
			setup: func() {
				addFlags.start = "2025-01-15 09:00"
				addFlags.end = "2025-01-15 10:00"
				addFlags.client = "acme"
				addFlags.project = "website"
				addFlags.activity = "meetings"
			},
			args:     []string{"work"},
			expected: "Invalid activity",
		},
		{
			name: "malformed start",
			setup: func() {
				addFlags.start = "tomorrow"
				addFlags.end = "2025-01-15 10:00"
			},
			args:     []string{"work"},
			expected: "Invalid --start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTest(t)
			resetAddFlags()
			defer resetAddFlags()

			tt.setup()
			addEntry(tt.args)

			if !env.exited || env.exitCode != 1 {
				t.Error("addEntry should exit 1 on validation failure")
			}
			if !strings.Contains(env.stderr.String(), tt.expected) {
				t.Errorf("Stderr missing %q, got: %s", tt.expected, env.stderr.String())
			}
		})
	}
}

func TestAddEntry_OverlapRejected(t *testing.T) {
	env := setupTest(t)
	defer resetAddFlags()

	env.seedDocument(t, "2025-01",
		"## 2025-01-15\n- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] existing work [client:: acme]\n")

	addFlags.start = "2025-01-15 09:30"
	addFlags.end = "2025-01-15 10:30"
	addFlags.client = "acme"
	addEntry([]string{"conflicting", "work"})

	if !env.exited || env.exitCode != 1 {
		t.Error("addEntry should exit 1 on overlap")
	}
	stderr := env.stderr.String()
	if !strings.Contains(stderr, "overlaps an existing entry") {
		t.Errorf("Stderr missing overlap message, got: %s", stderr)
	}
	if !strings.Contains(stderr, "existing work") {
		t.Errorf("Stderr should name the conflicting entry, got: %s", stderr)
	}

	// Nothing was written.
	text := env.readDocument(t, "2025-01")
	if strings.Contains(text, "conflicting work") {
		t.Error("Rejected entry must not be written to the document")
	}
}

func TestAddEntry_TouchingEntriesAllowed(t *testing.T) {
	env := setupTest(t)
	defer resetAddFlags()

	env.seedDocument(t, "2025-01",
		"## 2025-01-15\n- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] first [client:: acme]\n")

	addFlags.start = "2025-01-15 10:00"
	addFlags.end = "2025-01-15 11:00"
	addFlags.client = "acme"
	addEntry([]string{"second"})

	if env.exited {
		t.Fatalf("touching entries should not conflict, stderr: %s", env.stderr.String())
	}

	text := env.readDocument(t, "2025-01")
	if !strings.Contains(text, "second") {
		t.Errorf("Document missing new entry, got: %s", text)
	}
}

func TestAddEntry_EmptyDescription(t *testing.T) {
	env := setupTest(t)
	defer resetAddFlags()

	addFlags.start = "2025-01-15 09:00"
	addFlags.end = "2025-01-15 10:00"
	addFlags.client = "acme"
	addEntry([]string{"   "})

	if !env.exited || env.exitCode != 1 {
		t.Error("addEntry should exit 1 for empty description")
	}
	if !strings.Contains(env.stderr.String(), "Description cannot be empty") {
		t.Errorf("Stderr missing message, got: %s", env.stderr.String())
	}
}
