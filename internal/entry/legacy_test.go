package entry

import (
	"testing"
	"time"
)

func TestTableCodecDecode(t *testing.T) {
	codec := TableCodec{}

	tests := []struct {
		name     string
		line     string
		expected Entry
	}{
		{
			name: "full row",
			line: "| 2025-01-15 09:00 | 2025-01-15 10:30 | sprint planning |",
			expected: Entry{
				Start:           localTime(2025, time.January, 15, 9, 0),
				End:             localTime(2025, time.January, 15, 10, 30),
				Description:     "sprint planning",
				DurationMinutes: 90,
			},
		},
		{
			name: "row without description cell",
			line: "| 2025-01-15 09:00 | 2025-01-15 09:30 |",
			expected: Entry{
				Start:           localTime(2025, time.January, 15, 9, 0),
				End:             localTime(2025, time.January, 15, 9, 30),
				DurationMinutes: 30,
			},
		},
		{
			name: "leading whitespace",
			line: "  | 2025-01-15 22:00 | 2025-01-16 02:00 | night shift |",
			expected: Entry{
				Start:           localTime(2025, time.January, 15, 22, 0),
				End:             localTime(2025, time.January, 16, 2, 0),
				Description:     "night shift",
				DurationMinutes: 240,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := codec.Decode(tt.line)
			if !ok {
				t.Fatalf("Decode(%q) rejected a valid table row", tt.line)
			}
			assertEntriesEqual(t, got, tt.expected)
		})
	}
}

func TestTableCodecDecodeRejects(t *testing.T) {
	codec := TableCodec{}

	tests := []struct {
		name string
		line string
	}{
		{"header row", "| Start | End | Description |"},
		{"separator row", "| --- | --- | --- |"},
		{"not a table row", "- [start:: 2025-01-15 09:00] [end:: 2025-01-15 10:00] x"},
		{"single cell", "| 2025-01-15 09:00 |"},
		{"unterminated row", "| 2025-01-15 09:00 | 2025-01-15 10:00"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := codec.Decode(tt.line); ok {
				t.Errorf("Decode(%q) = %+v, expected not-an-entry", tt.line, got)
			}
		})
	}
}
