package mutate

import (
	"errors"
	"sort"
	"time"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// UpdateRequest carries the fields to change; nil pointers mean "leave as is".
type UpdateRequest struct {
	Title        *string
	Summary      *string
	Description  *string
	UserStory    *string
	Requirements *string
	IssueLink    *string
	PRLink       *string
	Project      *string
	Due          *model.Date
	ClearDue     bool
	ParentRef    *string
	ClearParent  bool
	Kind         *model.Kind
	Status       *model.Status
	Priority     *model.Priority
	Urgency      *model.Urgency
	ProcessStage *model.ProcessStage
	AddTags      []string
	RemoveTags   []string
}

// Update mutates an item in place. The final (parent, kind) edge is validated
// before any field changes, including the edges down to the item's existing
// children, so the graph never passes through an invalid state.
func Update(db *store.DB, id uint64, req UpdateRequest, now time.Time) error {
	it, ok := db.FindItem(id)
	if !ok {
		return NotFoundError{Kind: "item", Ref: refString(id)}
	}
	if req.Title != nil && *req.Title == "" {
		return errors.New("title cannot be empty")
	}

	finalKind := it.Kind
	if req.Kind != nil {
		finalKind = *req.Kind
	}

	finalParent := it.Parent
	if req.ClearParent {
		finalParent = nil
	}
	if req.ParentRef != nil {
		pid, err := ResolveRef(db, *req.ParentRef)
		if err != nil {
			return err
		}
		if pid == id {
			return CycleError{ItemID: id, ParentID: pid}
		}
		for _, anc := range db.Ancestors(pid) {
			if anc == id {
				return CycleError{ItemID: id, ParentID: pid}
			}
		}
		finalParent = &pid
	}

	if finalParent != nil {
		parent, ok := db.FindItem(*finalParent)
		if !ok {
			return NotFoundError{Kind: "item", Ref: refString(*finalParent)}
		}
		if !model.ValidChild(parent.Kind, finalKind) {
			return InvalidHierarchyError{Parent: parent.Kind, Child: finalKind}
		}
	}
	if finalKind != it.Kind {
		if child, ok := incompatibleChild(db, id, finalKind); ok {
			return InvalidHierarchyError{Parent: finalKind, Child: child}
		}
	}

	if req.Title != nil {
		it.Title = *req.Title
	}
	if req.Summary != nil {
		it.Summary = *req.Summary
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.UserStory != nil {
		it.UserStory = *req.UserStory
	}
	if req.Requirements != nil {
		it.Requirements = *req.Requirements
	}
	if req.IssueLink != nil {
		it.IssueLink = *req.IssueLink
	}
	if req.PRLink != nil {
		it.PRLink = *req.PRLink
	}
	if req.Project != nil {
		it.Project = *req.Project
	}
	if req.ClearDue {
		it.Due = ""
	}
	if req.Due != nil {
		it.Due = *req.Due
	}
	if req.Status != nil {
		it.Status = *req.Status
	}
	if req.Priority != nil {
		it.Priority = *req.Priority
	}
	if req.Urgency != nil {
		it.Urgency = *req.Urgency
	}
	if req.ProcessStage != nil {
		it.ProcessStage = *req.ProcessStage
	}
	it.Kind = finalKind
	it.Parent = finalParent

	if len(req.AddTags) > 0 || len(req.RemoveTags) > 0 {
		set := map[string]bool{}
		for _, t := range it.Tags {
			set[t] = true
		}
		for _, t := range model.SplitTags(req.AddTags) {
			set[t] = true
		}
		for _, t := range model.SplitTags(req.RemoveTags) {
			delete(set, t)
		}
		tags := make([]string, 0, len(set))
		for t := range set {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		it.Tags = tags
	}

	it.UpdatedAt = now
	return nil
}

// incompatibleChild returns the kind of the first direct child that could not
// nest under newKind. Milestone children nest anywhere.
func incompatibleChild(db *store.DB, id uint64, newKind model.Kind) (model.Kind, bool) {
	for _, it := range db.Items {
		if it.Parent != nil && *it.Parent == id && !model.ValidChild(newKind, it.Kind) {
			return it.Kind, true
		}
	}
	return "", false
}
