package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// Rank reorders server results so closer title matches come first. The
// sort is stable, so equal scores keep the API's popularity order.
func Rank(movies []domain.Movie, term string) []domain.Movie {
	if len(movies) == 0 {
		return movies
	}

	query := strings.ToLower(strings.TrimSpace(term))
	if query == "" {
		return movies
	}

	type ranked struct {
		movie domain.Movie
		score int
	}
	items := make([]ranked, len(movies))
	for i, m := range movies {
		items[i] = ranked{movie: m, score: matchScore(strings.ToLower(m.DisplayTitle("")), query)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score < items[j].score
	})

	out := make([]domain.Movie, len(items))
	for i, r := range items {
		out[i] = r.movie
	}
	return out
}

// matchScore returns a ranking score; lower is better
func matchScore(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	case fuzzy.Match(query, title):
		return 75
	default:
		return 100 + fuzzy.LevenshteinDistance(query, title)
	}
}
