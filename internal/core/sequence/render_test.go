package sequence

import (
	"testing"
	"time"
)

func TestRender_AllPlaceholders(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  Config
		seq  int64
		want string
	}{
		{
			name: "prefix year month seq",
			cfg:  Config{Prefix: "FACT", Format: "{PREFIX}-{YYYY}{MM}-{SEQ}"},
			seq:  7,
			want: "FACT-202503-0007",
		},
		{
			name: "short year and day",
			cfg:  Config{Prefix: "PV", Format: "{PREFIX}/{YY}{MM}{DD}/{SEQ}"},
			seq:  42,
			want: "PV/250315/0042",
		},
		{
			name: "seq only",
			cfg:  Config{Prefix: "X", Format: "{SEQ}"},
			seq:  1,
			want: "0001",
		},
		{
			name: "seq wider than padding",
			cfg:  Config{Prefix: "ORD", Format: "{PREFIX}-{SEQ}"},
			seq:  123456,
			want: "ORD-123456",
		},
		{
			name: "unknown placeholder left verbatim",
			cfg:  Config{Prefix: "INV", Format: "{PREFIX}-{QQ}-{SEQ}"},
			seq:  3,
			want: "INV-{QQ}-0003",
		},
		{
			name: "literal text around placeholders",
			cfg:  Config{Prefix: "INV", Format: "no placeholders except {SEQ} here"},
			seq:  9,
			want: "no placeholders except 0009 here",
		},
		{
			name: "dangling open brace",
			cfg:  Config{Prefix: "INV", Format: "{SEQ}-{"},
			seq:  5,
			want: "0005-{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.cfg, tt.seq, now)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

// A prefix containing placeholder text must land in the output verbatim.
// Sequential replace calls would re-match it; the single-pass scan must not.
func TestRender_PathologicalPrefix(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	cfg := Config{Prefix: "{SEQ}", Format: "{PREFIX}-{SEQ}"}
	got := Render(cfg, 12, now)
	if got != "{SEQ}-0012" {
		t.Errorf("Render() = %q, want %q", got, "{SEQ}-0012")
	}

	cfg = Config{Prefix: "A{YYYY}B", Format: "{PREFIX}{SEQ}"}
	got = Render(cfg, 1, now)
	if got != "A{YYYY}B0001" {
		t.Errorf("Render() = %q, want %q", got, "A{YYYY}B0001")
	}
}

func TestRender_PlaceholderSubstitutedOncePerOccurrence(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	cfg := Config{Prefix: "R", Format: "{YYYY}-{YYYY}-{SEQ}"}

	if got := Render(cfg, 8, now); got != "2024-2024-0008" {
		t.Errorf("Render() = %q, want %q", got, "2024-2024-0008")
	}
}
