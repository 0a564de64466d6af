package search

import (
	"github.com/mmcdole/marquee/internal/domain"
)

// Phase is the externally visible state of the search overlay
type Phase int

const (
	// PhaseIdle means no query has been committed; nothing is rendered
	PhaseIdle Phase = iota
	// PhaseLoading means a query is in flight
	PhaseLoading
	// PhaseResults means the latest query returned at least one movie
	PhaseResults
	// PhaseNotFound means the latest query returned nothing
	PhaseNotFound
	// PhaseFailed means the latest query failed
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseResults:
		return "results"
	case PhaseNotFound:
		return "not found"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Query identifies one issued search. Gen increases with every commit so a
// response can be matched to the commit that requested it.
type Query struct {
	Term string
	Gen  uint64
}

// Session tracks the committed search term and the results applied for it.
// Responses for any query other than the latest are discarded.
type Session struct {
	gen     uint64
	term    string
	phase   Phase
	results []domain.Movie
	err     error
}

// NewSession returns an idle session
func NewSession() *Session {
	return &Session{}
}

// Commit records a debounced term. An empty term returns the session to
// idle and issues no query; otherwise the returned Query must be run.
func (s *Session) Commit(term string) (Query, bool) {
	s.gen++
	s.term = term
	s.results = nil
	s.err = nil

	if term == "" {
		s.phase = PhaseIdle
		return Query{}, false
	}
	s.phase = PhaseLoading
	return Query{Term: term, Gen: s.gen}, true
}

// Apply records the outcome of q. It returns false, changing nothing, when
// q is not the latest committed query.
func (s *Session) Apply(q Query, results []domain.Movie, err error) bool {
	if q.Gen != s.gen || q.Term != s.term || s.phase != PhaseLoading {
		return false
	}

	switch {
	case err != nil:
		s.phase = PhaseFailed
		s.err = err
	case len(results) == 0:
		s.phase = PhaseNotFound
	default:
		s.phase = PhaseResults
		s.results = results
	}
	return true
}

// Clear invalidates any in-flight query and returns to idle
func (s *Session) Clear() {
	s.gen++
	s.term = ""
	s.phase = PhaseIdle
	s.results = nil
	s.err = nil
}

// Phase returns the current phase
func (s *Session) Phase() Phase { return s.phase }

// Term returns the committed term
func (s *Session) Term() string { return s.term }

// Results returns the applied results
func (s *Session) Results() []domain.Movie { return s.results }

// Err returns the failure of the latest query, if any
func (s *Session) Err() error { return s.err }

// HasQuery reports whether a non-empty term is committed
func (s *Session) HasQuery() bool { return s.term != "" }

// NotFound reports whether the "not found" state should render: a
// non-empty committed term whose query finished with zero results.
func (s *Session) NotFound() bool { return s.phase == PhaseNotFound }
