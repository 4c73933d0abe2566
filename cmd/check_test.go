package cmd

import (
	"strings"
	"testing"
)

func resetCheckFlags() {
	checkFlags.start = ""
	checkFlags.end = ""
}

func TestCheckOverlap_Free(t *testing.T) {
	env := setupTest(t)
	defer resetCheckFlags()
	env.seedDocument(t, "2025-01",
		"## 2025-01-15\n- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] work [client:: acme]\n")

	checkFlags.start = "2025-01-15 10:00"
	checkFlags.end = "2025-01-15 11:00"
	checkOverlap()

	if env.exited {
		t.Fatalf("checkOverlap exited, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Free: 2025-01-15 10:00 - 2025-01-15 11:00") {
		t.Errorf("Output missing free message, got: %s", env.stdout.String())
	}
}

func TestCheckOverlap_Conflict(t *testing.T) {
	env := setupTest(t)
	defer resetCheckFlags()
	env.seedDocument(t, "2025-01",
		"## 2025-01-15\n- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] work [client:: acme]\n")

	checkFlags.start = "2025-01-15 09:30"
	checkFlags.end = "2025-01-15 10:30"
	checkOverlap()

	if !env.exited || env.exitCode != 1 {
		t.Error("checkOverlap should exit 1 on conflict")
	}
	output := env.stdout.String()
	if !strings.Contains(output, "Conflict:") || !strings.Contains(output, "work") {
		t.Errorf("Output missing conflict details, got: %s", output)
	}
}

func TestCheckOverlap_EndDateBucket(t *testing.T) {
	env := setupTest(t)
	defer resetCheckFlags()

	// Overnight entry recorded on the 15th; the candidate is on the 16th.
	env.seedDocument(t, "2025-01",
		"## 2025-01-15\n- [start:: 2025-01-15 23:00] [end:: 2025-01-16 02:00] night shift [client:: acme]\n")

	checkFlags.start = "2025-01-16 01:00"
	checkFlags.end = "2025-01-16 03:00"
	checkOverlap()

	if !env.exited || env.exitCode != 1 {
		t.Error("checkOverlap should find conflicts recorded under the previous day")
	}
	if !strings.Contains(env.stdout.String(), "night shift") {
		t.Errorf("Output missing conflicting entry, got: %s", env.stdout.String())
	}
}

func TestCheckOverlap_EndNotAfterStart(t *testing.T) {
	env := setupTest(t)
	defer resetCheckFlags()

	checkFlags.start = "2025-01-15 10:00"
	checkFlags.end = "2025-01-15 10:00"
	checkOverlap()

	if !env.exited || env.exitCode != 1 {
		t.Error("checkOverlap should exit 1 when end is not after start")
	}
	if !strings.Contains(env.stderr.String(), "--end must be after --start") {
		t.Errorf("Stderr missing message, got: %s", env.stderr.String())
	}
}

func TestCheckOverlap_MissingFlags(t *testing.T) {
	env := setupTest(t)
	defer resetCheckFlags()

	checkOverlap()

	if !env.exited || env.exitCode != 1 {
		t.Error("checkOverlap should exit 1 when flags are missing")
	}
	if !strings.Contains(env.stderr.String(), "--start is required") {
		t.Errorf("Stderr missing message, got: %s", env.stderr.String())
	}
}
