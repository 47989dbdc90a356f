package rank

import (
	"testing"
	"time"

	dom "Capsule/internal/domain"

	"github.com/google/uuid"
)

func TestTrending(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	capsules := []dom.Capsule{
		{ID: a, LikeCount: 3},
		{ID: b, LikeCount: 7},
		{ID: c, LikeCount: 3},
	}

	Trending(capsules)

	want := []uuid.UUID{b, a, c} // descending, stable on the a/c tie
	for i, id := range want {
		if capsules[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, capsules[i].ID, id)
		}
	}
}

func TestLatest(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old, mid, newest := uuid.New(), uuid.New(), uuid.New()
	capsules := []dom.Capsule{
		{ID: mid, CreatedAt: base.Add(time.Hour)},
		{ID: old, CreatedAt: base},
		{ID: newest, CreatedAt: base.Add(2 * time.Hour)},
	}

	Latest(capsules)

	want := []uuid.UUID{newest, mid, old}
	for i, id := range want {
		if capsules[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, capsules[i].ID, id)
		}
	}
}
