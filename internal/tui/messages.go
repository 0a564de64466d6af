package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// Message types for the TUI

// Error contexts, used to route ErrMsg to the component that failed
const (
	ContextTrending   = "loading trending movies"
	ContextNowPlaying = "loading new releases"
)

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TrendingLoadedMsg signals that the trending list has been loaded
type TrendingLoadedMsg struct {
	Movies []domain.Movie
}

// NowPlayingLoadedMsg signals that a page of new releases has been loaded
type NowPlayingLoadedMsg struct {
	Page domain.Page
}

// DetailLoadedMsg signals that a movie detail has been loaded
type DetailLoadedMsg struct {
	Detail *domain.MovieDetail
}

// DetailFailedMsg signals that a movie detail could not be loaded
type DetailFailedMsg struct {
	MovieID int
	Err     error
}

// SelectionChangedMsg signals that the selection store changed
type SelectionChangedMsg struct{}

// SearchTickMsg delivers a debounce ticket after its quiet period
type SearchTickMsg struct {
	Ticket search.Ticket
}

// SearchResultsMsg carries the outcome of one issued query
type SearchResultsMsg struct {
	Query   search.Query
	Results []domain.Movie
	Err     error
}

// TrailerOpenedMsg signals that a trailer was handed to the browser
type TrailerOpenedMsg struct {
	MovieID int
}

// TrailerFailedMsg signals that a trailer could not be opened
type TrailerFailedMsg struct {
	MovieID int
	Err     error
}

// NoticeExpiredMsg asks to dismiss the notice with ID
type NoticeExpiredMsg struct {
	ID string
}
