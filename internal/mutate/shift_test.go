package mutate

import (
	"errors"
	"strings"
	"testing"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

func TestPromoteTaskToEpic(t *testing.T) {
	t.Parallel()
	db := seedTree(t)

	// A childless task under Epic 2 under Product 1: promoting makes it an
	// Epic under the product.
	id := mustAttach(t, db, model.Item{Title: "Write tests", Kind: model.KindTask}, "2")
	if err := Promote(db, id, testNow); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if k := kindOf(t, db, id); k != model.KindEpic {
		t.Fatalf("kind = %s, want epic", k)
	}
	if p := parentOf(t, db, id); p == nil || *p != 1 {
		t.Fatalf("parent = %v, want 1 (the grandparent)", p)
	}
}

func TestPromoteBlockedByChildren(t *testing.T) {
	t.Parallel()
	db := seedTree(t)

	// Task 3 has Subtask 4; promoting 3 to Epic would leave an
	// Epic > Subtask edge.
	err := Promote(db, 3, testNow)
	var pe InvalidPromotionError
	if !errors.As(err, &pe) {
		t.Fatalf("want InvalidPromotionError, got %v", err)
	}
	if k := kindOf(t, db, 3); k != model.KindTask {
		t.Fatalf("failed promote changed the kind to %s", k)
	}
}

func TestPromoteProductFails(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	var pe InvalidPromotionError
	if err := Promote(db, 1, testNow); !errors.As(err, &pe) {
		t.Fatalf("product promote should fail, got %v", err)
	}
}

func TestPromoteMilestoneFails(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	var pe InvalidPromotionError
	if err := Promote(db, 5, testNow); !errors.As(err, &pe) {
		t.Fatalf("milestone promote should fail, got %v", err)
	}
	// Milestones are not on the ladder at all, so "top of the ladder" would
	// be the wrong explanation.
	if !strings.Contains(pe.Reason, "outside the ladder") {
		t.Fatalf("reason = %q", pe.Reason)
	}
}

func TestPromoteRootShiftsKindInPlace(t *testing.T) {
	t.Parallel()
	db := &store.DB{NextID: 1}
	id := mustAttach(t, db, model.Item{Title: "floating epic", Kind: model.KindEpic}, "")
	if err := Promote(db, id, testNow); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if k := kindOf(t, db, id); k != model.KindProduct {
		t.Fatalf("kind = %s, want product", k)
	}
	if parentOf(t, db, id) != nil {
		t.Fatal("root item should stay at root")
	}
}

func TestPromoteEpicUnderRootProduct(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	// Epic 2's parent is root Product 1: promoting 2 makes it a root
	// Product. Its Task child blocks that (Product > Task is invalid), so
	// use a childless epic.
	id := mustAttach(t, db, model.Item{Title: "bare epic", Kind: model.KindEpic}, "1")
	if err := Promote(db, id, testNow); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	if k := kindOf(t, db, id); k != model.KindProduct {
		t.Fatalf("kind = %s, want product", k)
	}
	if parentOf(t, db, id) != nil {
		t.Fatal("promoted item should now be a root")
	}
}

func TestDemoteRequiresTarget(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	var de InvalidDemotionError
	if err := Demote(db, 2, "", testNow); !errors.As(err, &de) {
		t.Fatalf("demote without target should fail, got %v", err)
	}
}

func TestDemoteEpicToTask(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	mustAttach(t, db, model.Item{Title: "Exporter", Kind: model.KindEpic}, "1") // id 6

	// Epic 2 has a Task child, so it cannot become a Task itself.
	var de InvalidDemotionError
	if err := Demote(db, 2, "6", testNow); !errors.As(err, &de) {
		t.Fatalf("demote with incompatible children should fail, got %v", err)
	}

	// A childless epic demotes fine.
	id := mustAttach(t, db, model.Item{Title: "small epic", Kind: model.KindEpic}, "1")
	if err := Demote(db, id, "6", testNow); err != nil {
		t.Fatalf("Demote: %v", err)
	}
	if k := kindOf(t, db, id); k != model.KindTask {
		t.Fatalf("kind = %s, want task", k)
	}
	if p := parentOf(t, db, id); p == nil || *p != 6 {
		t.Fatalf("parent = %v, want 6", p)
	}
}

func TestDemoteSubtaskRenests(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	sib := mustAttach(t, db, model.Item{Title: "Escape quotes", Kind: model.KindSubtask}, "3")

	if err := Demote(db, 4, refString(sib), testNow); err != nil {
		t.Fatalf("Demote: %v", err)
	}
	if k := kindOf(t, db, 4); k != model.KindSubtask {
		t.Fatalf("kind = %s, subtasks stay subtasks", k)
	}
	if p := parentOf(t, db, 4); p == nil || *p != sib {
		t.Fatalf("parent = %v, want %d", p, sib)
	}
}

func TestDemoteRejectsDescendantTarget(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	child := mustAttach(t, db, model.Item{Title: "nested", Kind: model.KindSubtask}, "4")

	var ce CycleError
	if err := Demote(db, 4, refString(child), testNow); !errors.As(err, &ce) {
		t.Fatalf("demoting under a descendant should be a cycle, got %v", err)
	}
	var de InvalidDemotionError
	if err := Demote(db, 5, "1", testNow); !errors.As(err, &de) {
		t.Fatalf("milestone demote should fail, got %v", err)
	}
}

func TestDemoteRejectsIncompatibleTarget(t *testing.T) {
	t.Parallel()
	db := seedTree(t)
	// Demoting Task 3 makes it a Subtask; the milestone cannot hold one.
	var de InvalidDemotionError
	if err := Demote(db, 3, "5", testNow); !errors.As(err, &de) {
		t.Fatalf("subtask under milestone should fail, got %v", err)
	}
}
