package mutate

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"pm-cli/internal/model"
)

func strp(s string) *string { return &s }

func TestUpdateFields(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	later := testNow.Add(2 * time.Hour)

	d := model.Date("2024-07-01")
	pr := model.PriorityNiceToHave
	req := UpdateRequest{
		Title:    strp("Parse CSV files"),
		Project:  strp("importer"),
		Due:      &d,
		Priority: &pr,
		AddTags:  []string{"parser", "IO"},
	}
	if err := Update(db, 3, req, later); err != nil {
		t.Fatalf("Update: %v", err)
	}

	it, _ := db.FindItem(3)
	if it.Title != "Parse CSV files" || it.Project != "importer" || it.Due != d || it.Priority != pr {
		t.Fatalf("item = %+v", it)
	}
	if !reflect.DeepEqual(it.Tags, []string{"io", "parser"}) {
		t.Fatalf("tags = %v", it.Tags)
	}
	if !it.UpdatedAt.Equal(later) {
		t.Fatal("UpdatedAt not stamped")
	}
	if !it.CreatedAt.Equal(testNow) {
		t.Fatal("CreatedAt must not change")
	}
}

func TestUpdateClearDueAndTags(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	d := model.Date("2024-07-01")
	if err := Update(db, 3, UpdateRequest{Due: &d, AddTags: []string{"a", "b"}}, testNow); err != nil {
		t.Fatal(err)
	}
	if err := Update(db, 3, UpdateRequest{ClearDue: true, RemoveTags: []string{"a"}}, testNow); err != nil {
		t.Fatal(err)
	}
	it, _ := db.FindItem(3)
	if !it.Due.IsZero() {
		t.Fatalf("due = %s, want cleared", it.Due)
	}
	if !reflect.DeepEqual(it.Tags, []string{"b"}) {
		t.Fatalf("tags = %v", it.Tags)
	}
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if err := Update(db, 3, UpdateRequest{Title: strp("")}, testNow); err == nil {
		t.Fatal("empty title should fail")
	}
}

func TestUpdateKindRevalidatesBothEdges(t *testing.T) {
	t.Parallel()
	db := seedTree(t)

	// Epic 2 sits under Product 1 and holds Task 3: switching its kind to
	// Task breaks both the parent edge and the child edge.
	k := model.KindTask
	err := Update(db, 2, UpdateRequest{Kind: &k}, testNow)
	var he InvalidHierarchyError
	if !errors.As(err, &he) {
		t.Fatalf("want InvalidHierarchyError, got %v", err)
	}
	if kindOf(t, db, 2) != model.KindEpic {
		t.Fatal("failed update changed the kind")
	}
}

func TestUpdateKindAndParentTogether(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	mustAttach(t, db, model.Item{Title: "Exporter", Kind: model.KindEpic}, "1") // id 6

	// Move the childless subtask under the new epic as a task.
	k := model.KindTask
	if err := Update(db, 4, UpdateRequest{Kind: &k, ParentRef: strp("6")}, testNow); err != nil {
		t.Fatalf("Update: %v", err)
	}
	it, _ := db.FindItem(4)
	if it.Kind != model.KindTask || it.Parent == nil || *it.Parent != 6 {
		t.Fatalf("item = %+v", it)
	}
}

func TestUpdateParentCycle(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	var ce CycleError
	if err := Update(db, 2, UpdateRequest{ParentRef: strp("4")}, testNow); !errors.As(err, &ce) {
		t.Fatalf("reparenting under a descendant should be a cycle, got %v", err)
	}
}

func TestUpdateDetach(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	if err := Update(db, 5, UpdateRequest{ClearParent: true}, testNow); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if parentOf(t, db, 5) != nil {
		t.Fatal("milestone should be detached")
	}
}
