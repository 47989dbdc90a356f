// Package rank orders public capsule listings.
package rank

import (
	"sort"

	"Capsule/internal/domain"
)

// Trending sorts in place by like count, highest first. The sort is stable:
// ties keep their incoming (recency) order.
func Trending(capsules []domain.Capsule) {
	sort.SliceStable(capsules, func(i, j int) bool {
		return capsules[i].LikeCount > capsules[j].LikeCount
	})
}

// Latest sorts in place by creation time, newest first.
func Latest(capsules []domain.Capsule) {
	sort.SliceStable(capsules, func(i, j int) bool {
		return capsules[i].CreatedAt.After(capsules[j].CreatedAt)
	})
}
