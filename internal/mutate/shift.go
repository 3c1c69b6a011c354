package mutate

import (
	"time"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// Promote shifts an item one level up the kind ladder, re-parenting it under
// its former grandparent. An item whose parent is a root may only promote to
// Product (there is no level left to hang anything else on). Milestones and
// Products cannot be promoted.
func Promote(db *store.DB, id uint64, now time.Time) error {
	it, ok := db.FindItem(id)
	if !ok {
		return NotFoundError{Kind: "item", Ref: refString(id)}
	}

	newKind, ok := it.Kind.Above()
	if !ok {
		reason := "already at the top of the ladder"
		if it.Kind == model.KindMilestone {
			reason = "milestones sit outside the ladder"
		}
		return InvalidPromotionError{ItemID: id, Kind: it.Kind, Reason: reason}
	}
	if child, bad := incompatibleChild(db, id, newKind); bad {
		return InvalidPromotionError{ItemID: id, Kind: it.Kind,
			Reason: "its " + child.Label() + " children cannot nest under a " + newKind.Label()}
	}

	if it.Parent == nil {
		// Root items shift kind in place.
		it.Kind = newKind
		it.UpdatedAt = now
		return nil
	}

	parent, _ := db.FindItem(*it.Parent)
	if parent.Parent == nil {
		if newKind != model.KindProduct {
			return InvalidPromotionError{ItemID: id, Kind: it.Kind,
				Reason: "no grandparent to attach to and only Products may live at the root after a promote"}
		}
		it.Kind = newKind
		it.Parent = nil
		it.UpdatedAt = now
		return nil
	}

	grandparent, _ := db.FindItem(*parent.Parent)
	if !model.ValidChild(grandparent.Kind, newKind) {
		return InvalidPromotionError{ItemID: id, Kind: it.Kind,
			Reason: "a " + newKind.Label() + " cannot nest under the " + grandparent.Kind.Label() + " above it"}
	}

	gp := grandparent.ID
	it.Kind = newKind
	it.Parent = &gp
	it.UpdatedAt = now
	return nil
}

// Demote shifts an item one level down the ladder under an explicitly chosen
// new parent (a Subtask re-nests under another Subtask). The target is a
// required input, not an inferred default.
func Demote(db *store.DB, id uint64, targetRef string, now time.Time) error {
	it, ok := db.FindItem(id)
	if !ok {
		return NotFoundError{Kind: "item", Ref: refString(id)}
	}

	newKind, ok := it.Kind.Below()
	if !ok {
		return InvalidDemotionError{ItemID: id, Kind: it.Kind, Reason: "milestones sit outside the ladder"}
	}
	if targetRef == "" {
		return InvalidDemotionError{ItemID: id, Kind: it.Kind, Reason: "a new parent is required"}
	}
	if child, bad := incompatibleChild(db, id, newKind); bad {
		return InvalidDemotionError{ItemID: id, Kind: it.Kind,
			Reason: "its " + child.Label() + " children cannot nest under a " + newKind.Label()}
	}

	pid, err := ResolveRef(db, targetRef)
	if err != nil {
		return err
	}
	if pid == id {
		return CycleError{ItemID: id, ParentID: pid}
	}
	target, _ := db.FindItem(pid)
	if !model.ValidChild(target.Kind, newKind) {
		return InvalidDemotionError{ItemID: id, Kind: it.Kind,
			Reason: "a " + newKind.Label() + " cannot nest under a " + target.Kind.Label()}
	}
	for _, desc := range db.Descendants(id) {
		if desc == pid {
			return CycleError{ItemID: id, ParentID: pid}
		}
	}

	it.Kind = newKind
	it.Parent = &pid
	it.UpdatedAt = now
	return nil
}
