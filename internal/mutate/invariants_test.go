package mutate

import (
	"fmt"
	"math/rand"
	"testing"

	"pm-cli/internal/model"
	"pm-cli/internal/store"
)

// TestRandomOperationsKeepInvariants drives the engine with random
// attach/reparent/promote/demote/delete sequences. Individual operations may
// legitimately fail; the graph must stay valid either way: no dangling
// parents, no cycles, no invalid kind edges, no reused ids.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	t.Parallel()

	kinds := []model.Kind{
		model.KindProduct, model.KindEpic, model.KindTask,
		model.KindSubtask, model.KindMilestone,
	}

	for seed := int64(0); seed < 20; seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewSource(seed))
			db := &store.DB{Version: store.Version, NextID: 1}
			issued := map[uint64]bool{}

			randomRef := func() string {
				if len(db.Items) == 0 {
					return ""
				}
				return refString(db.Items[rng.Intn(len(db.Items))].ID)
			}

			for step := 0; step < 300; step++ {
				switch rng.Intn(6) {
				case 0, 1: // attach, biased so the graph grows
					it := model.Item{
						Title: fmt.Sprintf("item-%d-%d", seed, step),
						Kind:  kinds[rng.Intn(len(kinds))],
					}
					id, err := Attach(db, it, randomRef(), testNow)
					if err == nil {
						if issued[id] {
							t.Fatalf("step %d: id %d reused", step, id)
						}
						issued[id] = true
					}
				case 2:
					if len(db.Items) > 0 {
						id := db.Items[rng.Intn(len(db.Items))].ID
						_ = Reparent(db, id, randomRef(), rng.Intn(4) == 0, testNow)
					}
				case 3:
					if len(db.Items) > 0 {
						_ = Promote(db, db.Items[rng.Intn(len(db.Items))].ID, testNow)
					}
				case 4:
					if len(db.Items) > 0 {
						_ = Demote(db, db.Items[rng.Intn(len(db.Items))].ID, randomRef(), testNow)
					}
				case 5:
					if len(db.Items) > 0 {
						_, _ = Delete(db, db.Items[rng.Intn(len(db.Items))].ID, rng.Intn(2) == 0)
					}
				}
				checkInvariants(t, db, step)
			}
		})
	}
}

func checkInvariants(t *testing.T, db *store.DB, step int) {
	t.Helper()
	byID := map[uint64]model.Item{}
	for _, it := range db.Items {
		if _, dup := byID[it.ID]; dup {
			t.Fatalf("step %d: duplicate id %d", step, it.ID)
		}
		byID[it.ID] = it
	}
	for _, it := range db.Items {
		if it.Parent == nil {
			continue
		}
		parent, ok := byID[*it.Parent]
		if !ok {
			t.Fatalf("step %d: item %d has dangling parent %d", step, it.ID, *it.Parent)
		}
		if !model.ValidChild(parent.Kind, it.Kind) {
			t.Fatalf("step %d: invalid edge %s %d > %s %d",
				step, parent.Kind, parent.ID, it.Kind, it.ID)
		}
		// Walk to the root; revisiting the start means a cycle.
		seen := map[uint64]bool{it.ID: true}
		cur := it
		for cur.Parent != nil {
			p := byID[*cur.Parent]
			if seen[p.ID] {
				t.Fatalf("step %d: cycle through item %d", step, it.ID)
			}
			seen[p.ID] = true
			cur = p
		}
	}
}
