package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pm-cli/internal/model"
)

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	parent := uint64(1)
	items := []model.Item{
		{
			ID: 1, Title: "Tracker, v2", Kind: model.KindProduct, Status: model.StatusOpen,
			Project: "pm", Tags: []string{"core", "q3"}, Due: "2024-07-01",
			CreatedAt: now, UpdatedAt: now, Description: "multi\nline",
		},
		{
			ID: 2, Title: "Importer", Kind: model.KindEpic, Status: model.StatusDone,
			Parent: &parent, Priority: model.PriorityMustHave,
			Urgency: model.UrgencyUrgentImportant, ProcessStage: model.StageTesting,
			CreatedAt: now, UpdatedAt: now,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("round-trip mismatch (-wrote +read):\n%s", diff)
	}
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	t.Parallel()
	_, err := ReadCSV(strings.NewReader("Name,Things\nfoo,bar\n"))
	if err == nil {
		t.Fatal("wrong header should fail")
	}
}

func TestReadCSVRejectsEmptyTitle(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []model.Item{{ID: 1, Kind: model.KindTask, Status: model.StatusOpen}}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(&buf); err == nil {
		t.Fatal("empty title should fail on read")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	if got := Truncate("short", 14); got != "short" {
		t.Fatalf("got %q", got)
	}
	got := Truncate("a very long project name", 10)
	if len([]rune(got)) > 10 {
		t.Fatalf("not truncated: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("missing ellipsis: %q", got)
	}
}
