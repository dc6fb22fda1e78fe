package places

import (
	"github.com/dabidoe/hotspots-backend-go/internal/models"
)

// Merge combines existing and incoming place lists into one deduplicated,
// order-preserving list capped at max entries.
//
// A later entry for an already-seen ID overwrites that entry's data but not
// its position: stale fields get refreshed on re-fetch while the list order
// does not churn. Truncation happens after the full merge, so once the cap
// is reached genuinely new entries are dropped rather than evicting older
// ones. Output is deterministic for identical inputs.
func Merge(existing, incoming []models.Place, max int) []models.Place {
	merged := make([]models.Place, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, lists := range [][]models.Place{existing, incoming} {
		for _, p := range lists {
			if i, ok := index[p.ID]; ok {
				merged[i] = p
				continue
			}
			index[p.ID] = len(merged)
			merged = append(merged, p)
		}
	}

	if max >= 0 && len(merged) > max {
		merged = merged[:max]
	}
	return merged
}

// MergeAll folds multiple incoming lists into one capped, deduplicated list
// in the order the lists are given. Category lists are always passed in
// their fixed declared order, so the merged result is independent of the
// completion order of the underlying fetches.
func MergeAll(lists [][]models.Place, max int) []models.Place {
	merged := []models.Place{}
	for _, list := range lists {
		merged = Merge(merged, list, -1)
	}
	if max >= 0 && len(merged) > max {
		merged = merged[:max]
	}
	return merged
}
