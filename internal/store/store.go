// Package store owns the in-memory item graph and its on-disk JSON snapshot.
// One process reads the whole file, mutates the graph in memory, and writes it
// back; there is no partial load and no cross-process coordination.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/natefinch/atomic"

	"pm-cli/internal/model"
)

const Version = 1

// DB is the whole persisted state: every item plus the saved templates.
// NextID is a high-water mark so ids are never reused after deletion.
type DB struct {
	Version   int              `json:"version"`
	NextID    uint64           `json:"nextId"`
	Items     []model.Item     `json:"items"`
	Templates []model.Template `json:"templates,omitempty"`
}

// CorruptStoreError reports a store file that exists but cannot be trusted:
// unreadable, unparsable, or structurally invalid (duplicate ids, dangling
// parent references).
type CorruptStoreError struct {
	Path   string
	Reason string
	Err    error
}

func (e CorruptStoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt store %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt store %s: %s", e.Path, e.Reason)
}

func (e CorruptStoreError) Unwrap() error { return e.Err }

type Store struct {
	Path string
}

// Load reads the snapshot. A missing file yields an empty DB; anything the
// process cannot fully validate fails with CorruptStoreError rather than
// proceeding on a broken graph.
func (s Store) Load() (*DB, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DB{Version: Version, NextID: 1}, nil
		}
		return nil, CorruptStoreError{Path: s.Path, Reason: "read failed", Err: err}
	}

	var db DB
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, CorruptStoreError{Path: s.Path, Reason: "invalid JSON", Err: err}
	}
	if err := db.validate(); err != nil {
		return nil, CorruptStoreError{Path: s.Path, Reason: err.Error()}
	}

	if db.Version == 0 {
		db.Version = Version
	}
	// Ids stay monotonic even if the file was written by an older build that
	// did not persist the high-water mark.
	for _, it := range db.Items {
		if it.ID >= db.NextID {
			db.NextID = it.ID + 1
		}
	}
	if db.NextID == 0 {
		db.NextID = 1
	}
	return &db, nil
}

// Save writes the snapshot atomically (temp file + rename).
func (s Store) Save(db *DB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return atomic.WriteFile(s.Path, bytes.NewReader(data))
}

func (db *DB) validate() error {
	kinds := make(map[uint64]model.Kind, len(db.Items))
	for _, it := range db.Items {
		if _, dup := kinds[it.ID]; dup {
			return fmt.Errorf("duplicate item id %d", it.ID)
		}
		kinds[it.ID] = it.Kind
	}
	parents := make(map[uint64]uint64, len(db.Items))
	for _, it := range db.Items {
		if it.Parent == nil {
			continue
		}
		p := *it.Parent
		pk, ok := kinds[p]
		if !ok {
			return fmt.Errorf("item %d references missing parent %d", it.ID, p)
		}
		if !model.ValidChild(pk, it.Kind) {
			return fmt.Errorf("item %d (%s) cannot nest under item %d (%s)", it.ID, it.Kind, p, pk)
		}
		parents[it.ID] = p
	}
	// Every parent chain must terminate at a root; a chain longer than the
	// item count can only mean a cycle.
	for _, it := range db.Items {
		cur, steps := it.ID, 0
		for {
			p, ok := parents[cur]
			if !ok {
				break
			}
			steps++
			if p == it.ID || steps > len(db.Items) {
				return fmt.Errorf("parent cycle involving item %d", it.ID)
			}
			cur = p
		}
	}
	return nil
}

// AllocateID hands out the next item id. Ids are never reused.
func (db *DB) AllocateID() uint64 {
	if db.NextID == 0 {
		db.NextID = 1
	}
	id := db.NextID
	db.NextID++
	return id
}

func (db *DB) FindItem(id uint64) (*model.Item, bool) {
	for i := range db.Items {
		if db.Items[i].ID == id {
			return &db.Items[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTemplate(name string) (*model.Template, bool) {
	for i := range db.Templates {
		if db.Templates[i].Name == name {
			return &db.Templates[i], true
		}
	}
	return nil, false
}

// ChildrenMap maps parent id to child ids, children sorted ascending.
func (db *DB) ChildrenMap() map[uint64][]uint64 {
	m := map[uint64][]uint64{}
	for _, it := range db.Items {
		if it.Parent != nil {
			m[*it.Parent] = append(m[*it.Parent], it.ID)
		}
	}
	for _, ids := range m {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return m
}

// Descendants returns the transitive children of id, depth-first with each
// parent before its children. id itself is not included.
func (db *DB) Descendants(id uint64) []uint64 {
	children := db.ChildrenMap()
	var out []uint64
	seen := map[uint64]bool{id: true}
	var walk func(uint64)
	walk = func(cur uint64) {
		for _, c := range children[cur] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			walk(c)
		}
	}
	walk(id)
	return out
}

// Ancestors returns the parent chain of id, nearest first.
func (db *DB) Ancestors(id uint64) []uint64 {
	var out []uint64
	seen := map[uint64]bool{}
	cur, ok := db.FindItem(id)
	for ok && cur.Parent != nil {
		p := *cur.Parent
		if seen[p] {
			break
		}
		seen[p] = true
		out = append(out, p)
		cur, ok = db.FindItem(p)
	}
	return out
}

// RemoveItems deletes the given ids and clears any parent pointer that would
// dangle afterwards, so invariant checks hold after bulk removals too.
func (db *DB) RemoveItems(ids map[uint64]bool) {
	kept := db.Items[:0]
	for _, it := range db.Items {
		if !ids[it.ID] {
			kept = append(kept, it)
		}
	}
	db.Items = kept
	for i := range db.Items {
		if p := db.Items[i].Parent; p != nil && ids[*p] {
			db.Items[i].Parent = nil
		}
	}
}

// Projects returns the distinct non-empty project labels, sorted.
func (db *DB) Projects() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range db.Items {
		p := strings.TrimSpace(it.Project)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// TagCounts returns each distinct tag with its usage count, sorted by tag.
func (db *DB) TagCounts() []TagCount {
	counts := map[string]int{}
	for _, it := range db.Items {
		for _, t := range it.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
