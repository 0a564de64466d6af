// Package favorites is the persisted list of saved movies.
//
// The store is the only writer of its storage key. It is hydrated once in
// New and every Toggle re-serializes the full list before returning.
package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/notify"
	"github.com/sahilm/fuzzy"
)

const (
	// StorageKey is the key the list is persisted under
	StorageKey = "favorites"

	// NoticeKey identifies the add acknowledgment
	NoticeKey = "favorite-success"

	// AddedMessage is the acknowledgment text shown after an add
	AddedMessage = "Success Add to Favorites"
)

// Acknowledger receives the one-time notice emitted when a movie is added.
type Acknowledger interface {
	Success(key, message string) notify.Notice
}

// Store is an ordered set of movies keyed by ID.
type Store struct {
	storage domain.KeyValueStore
	ack     Acknowledger
	logger  *slog.Logger

	mu     sync.RWMutex
	movies []domain.Movie
	index  map[int]int // movie ID -> position in movies
}

// New hydrates a Store from storage. Missing or corrupt data yields an empty
// list; the failure is logged and never returned. ack may be nil.
func New(storage domain.KeyValueStore, ack Acknowledger, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage: storage,
		ack:     ack,
		logger:  logger,
		index:   make(map[int]int),
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	if s.storage == nil {
		return
	}

	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		s.logger.Warn("failed to read favorites, starting empty", "error", err)
		return
	}
	if !ok || len(raw) == 0 {
		return
	}

	var movies []domain.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		s.logger.Warn("corrupt favorites data, starting empty", "error", err, "bytes", len(raw))
		return
	}

	// Duplicate IDs in stored data: first wins
	for _, m := range movies {
		if _, dup := s.index[m.ID]; dup {
			continue
		}
		s.index[m.ID] = len(s.movies)
		s.movies = append(s.movies, m)
	}
	s.logger.Debug("hydrated favorites", "count", len(s.movies))
}

// List returns the favorites in insertion order
func (s *Store) List() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// Contains reports whether a movie with id is saved
func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Toggle removes the movie if present, otherwise appends it and emits the
// add acknowledgment. Removal is silent. The full list is persisted before
// returning; a persistence error is returned but the in-memory change stays.
func (s *Store) Toggle(movie domain.Movie) (added bool, err error) {
	s.mu.Lock()
	if pos, ok := s.index[movie.ID]; ok {
		s.removeAt(pos)
	} else {
		s.index[movie.ID] = len(s.movies)
		s.movies = append(s.movies, movie)
		added = true
	}
	err = s.persistLocked()
	s.mu.Unlock()

	if added && s.ack != nil {
		s.ack.Success(NoticeKey, AddedMessage)
	}

	s.logger.Debug("toggled favorite", "id", movie.ID, "added", added)
	if err != nil {
		return added, fmt.Errorf("failed to save favorites: %w", err)
	}
	return added, nil
}

// Clear removes every favorite and persists the empty list
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies = nil
	s.index = make(map[int]int)
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// removeAt must be called with mu held
func (s *Store) removeAt(pos int) {
	delete(s.index, s.movies[pos].ID)
	s.movies = append(s.movies[:pos], s.movies[pos+1:]...)
	for i := pos; i < len(s.movies); i++ {
		s.index[s.movies[i].ID] = i
	}
}

// persistLocked must be called with mu held
func (s *Store) persistLocked() error {
	if s.storage == nil {
		return nil
	}
	movies := s.movies
	if movies == nil {
		movies = []domain.Movie{}
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return err
	}
	return s.storage.Put(StorageKey, data)
}

// Match is a favorite matched by Filter
type Match struct {
	Movie          domain.Movie
	MatchedIndexes []int
}

// titleSource implements fuzzy.Source over display titles
type titleSource []string

func (t titleSource) String(i int) string { return t[i] }
func (t titleSource) Len() int            { return len(t) }

// Filter fuzzy-matches favorites by display title. An empty query returns
// every favorite in insertion order.
func (s *Store) Filter(query string) []Match {
	movies := s.List()

	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(movies))
		for i, m := range movies {
			out[i] = Match{Movie: m}
		}
		return out
	}

	titles := make(titleSource, len(movies))
	for i, m := range movies {
		titles[i] = strings.ToLower(m.DisplayTitle(""))
	}

	results := fuzzy.FindFrom(strings.ToLower(query), titles)
	out := make([]Match, len(results))
	for i, r := range results {
		out[i] = Match{Movie: movies[r.Index], MatchedIndexes: r.MatchedIndexes}
	}
	return out
}
