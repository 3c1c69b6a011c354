package mutate

import (
	"errors"
	"time"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// Selector picks items for a bulk operation. Exactly one field must be set.
type Selector struct {
	Tag     string
	Project string
	Status  model.Status
}

func (s Selector) validate() error {
	n := 0
	if s.Tag != "" {
		n++
	}
	if s.Project != "" {
		n++
	}
	if s.Status != "" {
		n++
	}
	if n != 1 {
		return errors.New("exactly one of tag, project, or status must be given")
	}
	return nil
}

func (s Selector) matches(it model.Item) bool {
	switch {
	case s.Tag != "":
		return it.HasTag(s.Tag)
	case s.Project != "":
		return it.Project == s.Project
	case s.Status != "":
		return it.Status == s.Status
	}
	return false
}

// Outcome is the per-item result of a bulk operation. Note carries non-error
// context (e.g. an item already removed by an earlier cascade in the batch).
type Outcome struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
	Err   error  `json:"-"`
}

// BulkComplete marks every matching item Done. The matching set is computed
// once up front, then the single-item operation runs per member, so mutations
// inside the batch never change which items were selected.
func BulkComplete(db *store.DB, sel Selector, now time.Time) ([]Outcome, error) {
	matched, err := selectItems(db, sel)
	if err != nil {
		return nil, err
	}
	out := make([]Outcome, 0, len(matched))
	for _, m := range matched {
		o := Outcome{ID: m.ID, Title: m.Title}
		if _, err := Complete(db, m.ID, false, now); err != nil {
			o.Err = err
		}
		out = append(out, o)
	}
	return out, nil
}

// BulkDelete deletes every matching item. A member already removed by an
// earlier cascade within the batch is reported as skipped, not failed.
func BulkDelete(db *store.DB, sel Selector, cascade bool) ([]Outcome, error) {
	matched, err := selectItems(db, sel)
	if err != nil {
		return nil, err
	}
	out := make([]Outcome, 0, len(matched))
	for _, m := range matched {
		o := Outcome{ID: m.ID, Title: m.Title}
		if _, ok := db.FindItem(m.ID); !ok {
			o.Note = "already removed by an earlier cascade"
			out = append(out, o)
			continue
		}
		if _, err := Delete(db, m.ID, cascade); err != nil {
			o.Err = err
		}
		out = append(out, o)
	}
	return out, nil
}

func selectItems(db *store.DB, sel Selector) ([]model.Item, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}
	var matched []model.Item
	for _, it := range db.Items {
		if sel.matches(it) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}
