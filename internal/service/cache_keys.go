package service

import (
	"strconv"
	"strings"
)

// Request cache keys. A key identifies one query; two requests with
// the same key share a cached response.
const (
	// KeyTrending is the cache key for the weekly trending list
	KeyTrending = "trending"

	// PrefixNowPlaying is the prefix for now playing pages (now-playing:{page})
	PrefixNowPlaying = "now-playing:"

	// PrefixSearch is the prefix for search results (search:{term})
	PrefixSearch = "search:"

	// PrefixMovieDetail is the prefix for movie details (movie-detail:{id})
	PrefixMovieDetail = "movie-detail:"
)

func nowPlayingKey(page int) string { return PrefixNowPlaying + strconv.Itoa(page) }
func movieDetailKey(id int) string  { return PrefixMovieDetail + strconv.Itoa(id) }

func searchKey(term string) string {
	return PrefixSearch + strings.ToLower(strings.TrimSpace(term))
}

// ListCachePrefixes returns the prefixes dropped by a list refresh. Movie
// details are kept since they rarely change within a session.
func ListCachePrefixes() []string {
	return []string{KeyTrending, PrefixNowPlaying, PrefixSearch}
}
