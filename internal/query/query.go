// Package query is the read-only view layer over the item store: filtering,
// sorting, limiting, and tree reconstruction. Nothing here mutates items.
package query

import (
	"fmt"
	"sort"
	"strings"

	"pm-cli/internal/due"
	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// Bucket is a named relative due-date window.
type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketThisWeek Bucket = "this-week"
	BucketOverdue  Bucket = "overdue"
	BucketNone     Bucket = "none"
)

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(strings.ToLower(strings.TrimSpace(s))) {
	case BucketToday:
		return BucketToday, nil
	case BucketThisWeek:
		return BucketThisWeek, nil
	case BucketOverdue:
		return BucketOverdue, nil
	case BucketNone:
		return BucketNone, nil
	}
	return "", fmt.Errorf("invalid due filter: %q (expected today|this-week|overdue|none)", s)
}

type SortKey string

const (
	SortID       SortKey = "id"
	SortDue      SortKey = "due"
	SortPriority SortKey = "priority"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortID, "":
		return SortID, nil
	case SortDue:
		return SortDue, nil
	case SortPriority:
		return SortPriority, nil
	}
	return "", fmt.Errorf("invalid sort key: %q (expected id|due|priority)", s)
}

// Filter is a conjunction of optional predicates. Zero values mean "no
// constraint". Unless All is set or Status explicitly asks for them, Done
// items are excluded.
type Filter struct {
	All     bool
	Status  model.Status
	Kind    model.Kind
	Project string
	Tags    []string // any-of
	Due     Bucket
}

func (f Filter) matches(it model.Item, today model.Date) bool {
	if !f.All && f.Status == "" && it.Status == model.StatusDone {
		return false
	}
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	if f.Kind != "" && it.Kind != f.Kind {
		return false
	}
	if f.Project != "" && it.Project != f.Project {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, t := range f.Tags {
			if it.HasTag(t) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	switch f.Due {
	case BucketToday:
		if it.Due != today {
			return false
		}
	case BucketThisWeek:
		if it.Due.IsZero() {
			return false
		}
		start, end := due.WeekBounds(today)
		if it.Due.Before(start) || it.Due.After(end) {
			return false
		}
	case BucketOverdue:
		if it.Due.IsZero() || !it.Due.Before(today) || it.Status == model.StatusDone {
			return false
		}
	case BucketNone:
		if !it.Due.IsZero() {
			return false
		}
	}
	return true
}

// Items returns the filtered, sorted, limited view. limit <= 0 means no limit;
// the limit truncates after sorting, so it never changes eligibility.
func Items(db *store.DB, f Filter, key SortKey, limit int, today model.Date) []model.Item {
	var out []model.Item
	for _, it := range db.Items {
		if f.matches(it, today) {
			out = append(out, it)
		}
	}
	Sort(out, key)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Sort orders items in place. Due sorts ascending with absent dates last;
// priority sorts MustHave < NiceToHave < CutFirst < unset. Ties fall back to
// id, and id order is the default.
func Sort(items []model.Item, key SortKey) {
	switch key {
	case SortDue:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			switch {
			case a.Due.IsZero() && b.Due.IsZero():
				return a.ID < b.ID
			case a.Due.IsZero():
				return false
			case b.Due.IsZero():
				return true
			case a.Due != b.Due:
				return a.Due.Before(b.Due)
			}
			return a.ID < b.ID
		})
	case SortPriority:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
				return pa < pb
			}
			return a.ID < b.ID
		})
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}
}

func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityMustHave:
		return 0
	case model.PriorityNiceToHave:
		return 1
	case model.PriorityCutFirst:
		return 2
	}
	return 3
}

// Node is one row of a rendered tree.
type Node struct {
	Item  model.Item `json:"item"`
	Depth int        `json:"depth"`
}

// Tree reconstructs parent/child nesting restricted to the given (already
// filtered and sorted) set. An item nests under its parent only when the
// parent made it into the set; otherwise it renders as a root. Filters shape
// visibility, not structural truth.
func Tree(items []model.Item) []Node {
	inSet := make(map[uint64]bool, len(items))
	for _, it := range items {
		inSet[it.ID] = true
	}

	childOrder := map[uint64][]model.Item{}
	var roots []model.Item
	for _, it := range items {
		if it.Parent != nil && inSet[*it.Parent] {
			childOrder[*it.Parent] = append(childOrder[*it.Parent], it)
		} else {
			roots = append(roots, it)
		}
	}

	out := make([]Node, 0, len(items))
	var walk func(it model.Item, depth int)
	walk = func(it model.Item, depth int) {
		out = append(out, Node{Item: it, Depth: depth})
		for _, c := range childOrder[it.ID] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	return out
}

// Flat wraps items as depth-0 nodes so list and tree output share a renderer.
func Flat(items []model.Item) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = Node{Item: it}
	}
	return out
}
