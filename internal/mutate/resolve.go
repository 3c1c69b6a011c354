package mutate

import (
	"strconv"
	"strings"

	"pm-cli/internal/store"
)

// ResolveRef turns an "id or title" reference into an item id. Numeric input
// is always treated as an id; otherwise the title must match exactly one item
// (case-insensitive). Ambiguity is reported, never guessed.
func ResolveRef(db *store.DB, ref string) (uint64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, NotFoundError{Kind: "item", Ref: ref}
	}

	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if _, ok := db.FindItem(id); !ok {
			return 0, NotFoundError{Kind: "item", Ref: ref}
		}
		return id, nil
	}

	var matches []uint64
	for _, it := range db.Items {
		if strings.EqualFold(it.Title, ref) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return 0, NotFoundError{Kind: "item", Ref: ref}
	case 1:
		return matches[0], nil
	default:
		return 0, AmbiguousRefError{Ref: ref, IDs: matches}
	}
}
