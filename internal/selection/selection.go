// Package selection holds the currently highlighted movie shared by the hero,
// trending carousel and new release grid.
package selection

import (
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Store holds at most one selected movie. The zero value is not usable; use New.
type Store struct {
	mu        sync.RWMutex
	current   *domain.Movie
	observers map[int]func(*domain.Movie)
	order     []int
	nextID    int
}

// New creates an empty selection store
func New() *Store {
	return &Store{observers: make(map[int]func(*domain.Movie))}
}

// Select replaces the selection unconditionally. nil clears it.
func (s *Store) Select(movie *domain.Movie) {
	s.mu.Lock()
	if movie != nil {
		m := *movie
		s.current = &m
	} else {
		s.current = nil
	}
	current := s.current
	observers := s.snapshotObservers()
	s.mu.Unlock()

	for _, fn := range observers {
		fn(current)
	}
}

// SelectIfEmpty selects movie only when nothing is selected. Returns true
// if the selection changed.
func (s *Store) SelectIfEmpty(movie *domain.Movie) bool {
	s.mu.RLock()
	empty := s.current == nil
	s.mu.RUnlock()

	if !empty || movie == nil {
		return false
	}
	s.Select(movie)
	return true
}

// Current returns a copy of the present selection
func (s *Store) Current() (*domain.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, false
	}
	m := *s.current
	return &m, true
}

// IsSelected reports whether the movie with id is the current selection
func (s *Store) IsSelected(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.ID == id
}

// Subscribe registers fn to be called after every Select, in subscription
// order. The returned func removes the observer.
func (s *Store) Subscribe(fn func(*domain.Movie)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// snapshotObservers must be called with mu held
func (s *Store) snapshotObservers() []func(*domain.Movie) {
	fns := make([]func(*domain.Movie), 0, len(s.observers))
	live := s.order[:0]
	for _, id := range s.order {
		if fn, ok := s.observers[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	s.order = live
	return fns
}
