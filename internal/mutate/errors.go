package mutate

import (
	"fmt"
	"strings"

	"pm-cli/internal/model"
)

type NotFoundError struct {
	Kind string // "item" or "template"
	Ref  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// AmbiguousRefError reports a title that matches more than one item. The ids
// are included so the caller can present them instead of guessing.
type AmbiguousRefError struct {
	Ref string
	IDs []uint64
}

func (e AmbiguousRefError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("multiple items titled %q (ids %s); use an id", e.Ref, strings.Join(ids, ", "))
}

type InvalidHierarchyError struct {
	Parent model.Kind
	Child  model.Kind
}

func (e InvalidHierarchyError) Error() string {
	return fmt.Sprintf("%s cannot be a child of %s (valid: Product > Epic > Task > Subtask)",
		e.Child.Label(), e.Parent.Label())
}

type CycleError struct {
	ItemID   uint64
	ParentID uint64
}

func (e CycleError) Error() string {
	return fmt.Sprintf("making %d a child of %d would create a cycle", e.ItemID, e.ParentID)
}

type InvalidPromotionError struct {
	ItemID uint64
	Kind   model.Kind
	Reason string
}

func (e InvalidPromotionError) Error() string {
	return fmt.Sprintf("cannot promote %s %d: %s", e.Kind.Label(), e.ItemID, e.Reason)
}

type InvalidDemotionError struct {
	ItemID uint64
	Kind   model.Kind
	Reason string
}

func (e InvalidDemotionError) Error() string {
	return fmt.Sprintf("cannot demote %s %d: %s", e.Kind.Label(), e.ItemID, e.Reason)
}

type HasChildrenError struct {
	ItemID uint64
	Count  int
}

func (e HasChildrenError) Error() string {
	return fmt.Sprintf("item %d has %d descendant(s); use cascade to delete all", e.ItemID, e.Count)
}

type DuplicateNameError struct {
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("template %q already exists", e.Name)
}
