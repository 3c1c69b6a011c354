package mutate

import (
	"errors"
	"strings"
	"testing"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

func TestAttachAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	id := mustAttach(t, db, model.Item{Title: "Another epic", Kind: model.KindEpic}, "1")
	if id != 6 {
		t.Fatalf("id = %d, want 6", id)
	}
	it, _ := db.FindItem(id)
	if it.Status != model.StatusOpen {
		t.Fatalf("default status = %s, want open", it.Status)
	}
	if it.CreatedAt != testNow || it.UpdatedAt != testNow {
		t.Fatal("timestamps not stamped")
	}
}

func TestAttachRejectsInvalidEdge(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	_, err := Attach(db, model.Item{Title: "x", Kind: model.KindTask}, "1", testNow)
	var he InvalidHierarchyError
	if !errors.As(err, &he) {
		t.Fatalf("Task under Product should fail, got %v", err)
	}
	if he.Parent != model.KindProduct || he.Child != model.KindTask {
		t.Fatalf("error context wrong: %+v", he)
	}
	// Nothing was inserted on failure.
	if len(db.Items) != 5 {
		t.Fatalf("failed attach mutated the store: %d items", len(db.Items))
	}
}

func TestAttachMilestoneAnywhere(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if _, err := Attach(db, model.Item{Title: "mid", Kind: model.KindMilestone}, "4", testNow); err != nil {
		t.Fatalf("milestone under subtask should attach: %v", err)
	}
	if _, err := Attach(db, model.Item{Title: "root-ms", Kind: model.KindMilestone}, "", testNow); err != nil {
		t.Fatalf("root milestone: %v", err)
	}
}

func TestAttachByTitleRef(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	id := mustAttach(t, db, model.Item{Title: "Write tests", Kind: model.KindTask}, "importer")
	if p := parentOf(t, db, id); p == nil || *p != 2 {
		t.Fatalf("title ref should resolve case-insensitively, parent = %v", p)
	}
}

func TestAttachRequiresTitle(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if _, err := Attach(db, model.Item{Kind: model.KindTask}, "", testNow); err == nil {
		t.Fatal("empty title should fail")
	}
}

func TestAttachNormalizesTags(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	id := mustAttach(t, db, model.Item{
		Title: "tagged", Kind: model.KindEpic, Tags: []string{"UI, ui", "Deep Work"},
	}, "1")
	it, _ := db.FindItem(id)
	if len(it.Tags) != 2 || it.Tags[0] != "deep-work" || it.Tags[1] != "ui" {
		t.Fatalf("tags = %v", it.Tags)
	}
}

func TestResolveRef(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	mustAttach(t, db, model.Item{Title: "Parse CSV", Kind: model.KindTask}, "2")

	if id, err := ResolveRef(db, "3"); err != nil || id != 3 {
		t.Fatalf("numeric ref: %d, %v", id, err)
	}
	var nf404 NotFoundError
	if _, err := ResolveRef(db, "999"); !errors.As(err, &nf404) {
		t.Fatalf("unknown id should be NotFound, got %v", err)
	}
	var ae AmbiguousRefError
	if _, err := ResolveRef(db, "parse csv"); !errors.As(err, &ae) {
		t.Fatalf("duplicate title should be ambiguous, got %v", err)
	}
	if len(ae.IDs) != 2 {
		t.Fatalf("ambiguity should list the candidate ids, got %v", ae.IDs)
	}
	var nf NotFoundError
	if _, err := ResolveRef(db, "no such thing"); !errors.As(err, &nf) {
		t.Fatalf("missing title should be NotFound, got %v", err)
	}
}

func TestReparent(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	mustAttach(t, db, model.Item{Title: "Exporter", Kind: model.KindEpic}, "1") // id 6
	mustAttach(t, db, model.Item{Title: "Stream rows", Kind: model.KindTask}, "6")

	if err := Reparent(db, 3, "6", false, testNow); err != nil {
		t.Fatalf("Reparent: %v", err)
	}
	if p := parentOf(t, db, 3); p == nil || *p != 6 {
		t.Fatalf("parent = %v, want 6", p)
	}

	// Detach to root.
	if err := Reparent(db, 3, "", true, testNow); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if parentOf(t, db, 3) != nil {
		t.Fatal("detach should clear the parent")
	}
}

func TestReparentRequiresTargetOrDetach(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	err := Reparent(db, 3, "", false, testNow)
	if err == nil || !strings.Contains(err.Error(), "--under") {
		t.Fatalf("missing target should name the flags, got %v", err)
	}
	if p := parentOf(t, db, 3); p == nil || *p != 2 {
		t.Fatal("failed reparent mutated the item")
	}
}

func TestReparentRejectsCycles(t *testing.T) {
	t.Parallel()
	db := &store.DB{NextID: 1}
	a := mustAttach(t, db, model.Item{Title: "a", Kind: model.KindSubtask}, "")
	b := mustAttach(t, db, model.Item{Title: "b", Kind: model.KindSubtask}, "1")
	c := mustAttach(t, db, model.Item{Title: "c", Kind: model.KindSubtask}, "2")

	var ce CycleError
	if err := Reparent(db, a, "3", false, testNow); !errors.As(err, &ce) {
		t.Fatalf("descendant as parent should be a cycle, got %v", err)
	}
	if err := Reparent(db, b, "2", false, testNow); !errors.As(err, &ce) {
		t.Fatalf("self as parent should be a cycle, got %v", err)
	}
	_ = c
}
