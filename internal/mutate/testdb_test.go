package mutate

import (
	"testing"
	"time"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// seedTree builds Product 1 > Epic 2 > Task 3 > Subtask 4, plus Milestone 5
// under the product.
func seedTree(t *testing.T) *store.DB {
	t.Helper()
	db := &store.DB{Version: store.Version, NextID: 1}
	mustAttach(t, db, model.Item{Title: "Tracker", Kind: model.KindProduct}, "")
	mustAttach(t, db, model.Item{Title: "Importer", Kind: model.KindEpic}, "1")
	mustAttach(t, db, model.Item{Title: "Parse CSV", Kind: model.KindTask}, "2")
	mustAttach(t, db, model.Item{Title: "Quote fields", Kind: model.KindSubtask}, "3")
	mustAttach(t, db, model.Item{Title: "v1 ship", Kind: model.KindMilestone}, "1")
	return db
}

func mustAttach(t *testing.T, db *store.DB, it model.Item, parentRef string) uint64 {
	t.Helper()
	id, err := Attach(db, it, parentRef, testNow)
	if err != nil {
		t.Fatalf("Attach(%q): %v", it.Title, err)
	}
	return id
}

func kindOf(t *testing.T, db *store.DB, id uint64) model.Kind {
	t.Helper()
	it, ok := db.FindItem(id)
	if !ok {
		t.Fatalf("item %d missing", id)
	}
	return it.Kind
}

func parentOf(t *testing.T, db *store.DB, id uint64) *uint64 {
	t.Helper()
	it, ok := db.FindItem(id)
	if !ok {
		t.Fatalf("item %d missing", id)
	}
	return it.Parent
}
