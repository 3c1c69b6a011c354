package mutate

import (
	"time"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// Delete removes an item. Without cascade it refuses when descendants exist;
// with cascade the item and its whole subtree go in one step. The removal is
// all-or-nothing: every check happens before the store changes.
func Delete(db *store.DB, id uint64, cascade bool) ([]uint64, error) {
	if _, ok := db.FindItem(id); !ok {
		return nil, NotFoundError{Kind: "item", Ref: refString(id)}
	}

	descendants := db.Descendants(id)
	if !cascade && len(descendants) > 0 {
		return nil, HasChildrenError{ItemID: id, Count: len(descendants)}
	}

	removed := append([]uint64{id}, descendants...)
	ids := make(map[uint64]bool, len(removed))
	for _, r := range removed {
		ids[r] = true
	}
	db.RemoveItems(ids)
	return removed, nil
}

// Complete marks an item Done; with recurse every descendant is marked too.
// No validation ties a parent's status to its children's.
func Complete(db *store.DB, id uint64, recurse bool, now time.Time) ([]uint64, error) {
	return setStatus(db, id, recurse, model.StatusDone, now)
}

// Reopen sets an item back to Open.
func Reopen(db *store.DB, id uint64, now time.Time) error {
	_, err := setStatus(db, id, false, model.StatusOpen, now)
	return err
}

func setStatus(db *store.DB, id uint64, recurse bool, status model.Status, now time.Time) ([]uint64, error) {
	if _, ok := db.FindItem(id); !ok {
		return nil, NotFoundError{Kind: "item", Ref: refString(id)}
	}

	targets := []uint64{id}
	if recurse {
		targets = append(targets, db.Descendants(id)...)
	}
	for _, tid := range targets {
		if t, ok := db.FindItem(tid); ok {
			t.Status = status
			t.UpdatedAt = now
		}
	}
	return targets, nil
}
