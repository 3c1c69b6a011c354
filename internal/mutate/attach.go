package mutate

import (
	"errors"
	"strconv"
	"time"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// Attach validates and inserts a new item. parentRef may be empty (root item),
// an id, or a unique title. All checks run before the store is touched, so a
// failed attach leaves the graph untouched. Returns the assigned id.
func Attach(db *store.DB, it model.Item, parentRef string, now time.Time) (uint64, error) {
	if it.Title == "" {
		return 0, errors.New("title is required")
	}
	if it.Status == "" {
		it.Status = model.StatusOpen
	}

	if parentRef != "" {
		pid, err := ResolveRef(db, parentRef)
		if err != nil {
			return 0, err
		}
		parent, _ := db.FindItem(pid)
		if !model.ValidChild(parent.Kind, it.Kind) {
			return 0, InvalidHierarchyError{Parent: parent.Kind, Child: it.Kind}
		}
		it.Parent = &pid
	}

	it.Tags = model.SplitTags(it.Tags)
	it.ID = db.AllocateID()
	it.CreatedAt = now
	it.UpdatedAt = now
	db.Items = append(db.Items, it)
	return it.ID, nil
}

// Reparent moves an item under a new parent, or detaches it to root when
// detach is set. Re-validates the edge and rejects ancestor cycles.
func Reparent(db *store.DB, id uint64, parentRef string, detach bool, now time.Time) error {
	it, ok := db.FindItem(id)
	if !ok {
		return NotFoundError{Kind: "item", Ref: refString(id)}
	}

	if detach {
		it.Parent = nil
		it.UpdatedAt = now
		return nil
	}
	if parentRef == "" {
		return errors.New("give --under <parent> or --detach")
	}

	pid, err := ResolveRef(db, parentRef)
	if err != nil {
		return err
	}
	if pid == id {
		return CycleError{ItemID: id, ParentID: pid}
	}
	parent, _ := db.FindItem(pid)
	if !model.ValidChild(parent.Kind, it.Kind) {
		return InvalidHierarchyError{Parent: parent.Kind, Child: it.Kind}
	}
	// The new parent must not sit below the item.
	for _, anc := range db.Ancestors(pid) {
		if anc == id {
			return CycleError{ItemID: id, ParentID: pid}
		}
	}

	it.Parent = &pid
	it.UpdatedAt = now
	return nil
}

func refString(id uint64) string {
	return strconv.FormatUint(id, 10)
}
