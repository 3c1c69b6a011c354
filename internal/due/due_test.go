package due

import (
	"errors"
	"testing"
	"time"

	"pm-cli/internal/model"
)

// Monday 2024-06-10.
var monday = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func TestResolveExplicitDate(t *testing.T) {
	t.Parallel()
	got, err := Resolve("2024-12-31", monday)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "2024-12-31" {
		t.Fatalf("got %s, want 2024-12-31", got)
	}

	// Same literal regardless of now.
	later := monday.AddDate(3, 2, 1)
	got2, err := Resolve("2024-12-31", later)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got2 != got {
		t.Fatalf("literal date depends on now: %s vs %s", got, got2)
	}
}

func TestResolveRelatives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want model.Date
	}{
		{"today", "2024-06-10"},
		{"Tomorrow", "2024-06-11"},
		{"yesterday", "2024-06-09"},
		{"in 3d", "2024-06-13"},
		{"in 2w", "2024-06-24"},
		{"in 1m", "2024-07-10"},
		{"friday", "2024-06-14"},
		{"this friday", "2024-06-14"},
		{"next friday", "2024-06-14"},
		{"monday", "2024-06-10"},      // today counts for the bare form
		{"next monday", "2024-06-17"}, // "next" is strictly after now
		{"end of week", "2024-06-16"},
		{"eow", "2024-06-16"},
		{"end of month", "2024-06-30"},
		{"this weekend", "2024-06-15"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.in, monday)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestResolveWeekendOnSunday(t *testing.T) {
	t.Parallel()
	sunday := time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)
	got, err := Resolve("weekend", sunday)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "2024-06-16" {
		t.Fatalf("weekend on a Sunday should stay today, got %s", got)
	}
}

func TestResolveFallbackFormats(t *testing.T) {
	t.Parallel()
	got, err := Resolve("Dec 31, 2026", monday)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "2026-12-31" {
		t.Fatalf("got %s, want 2026-12-31", got)
	}
}

func TestResolveUnparseable(t *testing.T) {
	t.Parallel()
	_, err := Resolve("whenever", monday)
	var ue UnparseableDateError
	if !errors.As(err, &ue) {
		t.Fatalf("want UnparseableDateError, got %v", err)
	}
	if ue.Input != "whenever" {
		t.Fatalf("error should carry the input, got %q", ue.Input)
	}
}

func TestWeekBounds(t *testing.T) {
	t.Parallel()
	start, end := WeekBounds("2024-06-12") // a Wednesday
	if start != "2024-06-10" || end != "2024-06-16" {
		t.Fatalf("WeekBounds = %s..%s, want 2024-06-10..2024-06-16", start, end)
	}
	// Sunday still belongs to the week that started the previous Monday.
	start, end = WeekBounds("2024-06-16")
	if start != "2024-06-10" || end != "2024-06-16" {
		t.Fatalf("WeekBounds(sunday) = %s..%s", start, end)
	}
}

func TestFormatRelative(t *testing.T) {
	t.Parallel()
	today := model.Date("2024-06-10")
	tests := []struct {
		d    model.Date
		want string
	}{
		{"", "-"},
		{"2024-06-10", "today"},
		{"2024-06-11", "tomorrow"},
		{"2024-06-13", "in 3d"},
		{"2024-06-08", "2d late"},
	}
	for _, tt := range tests {
		if got := FormatRelative(tt.d, today); got != tt.want {
			t.Errorf("FormatRelative(%q) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
