package search

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

func TestRank_OrdersByMatchQuality(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Title: "The Matrix Reloaded"},
		{ID: 2, Title: "Matrix"},
		{ID: 3, Title: "Matrix Resurrections"},
		{ID: 4, Title: "Unrelated"},
	}

	got := Rank(movies, "Matrix")
	want := []int{2, 3, 1, 4}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
}

func TestRank_StableForEqualScores(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Title: "Alien Covenant"},
		{ID: 2, Title: "Alien Romulus"},
	}
	got := Rank(movies, "alien")
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("order = %v, want [1 2]", ids(got))
	}
}

func TestRank_EmptyTerm(t *testing.T) {
	movies := []domain.Movie{{ID: 2}, {ID: 1}}
	if got := Rank(movies, " "); got[0].ID != 2 {
		t.Fatalf("empty term reordered results")
	}
}

func ids(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}
