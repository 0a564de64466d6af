package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations

// LoadTrendingCmd loads this week's trending movies
func LoadTrendingCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		movies, err := svc.Trending(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: ContextTrending}
		}
		return TrendingLoadedMsg{Movies: movies}
	}
}

// LoadNowPlayingCmd loads one page of new releases
func LoadNowPlayingCmd(svc *service.CatalogService, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := svc.NowPlaying(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: ContextNowPlaying}
		}
		return NowPlayingLoadedMsg{Page: result}
	}
}

// LoadDetailCmd loads full details (videos and cast) for a movie
func LoadDetailCmd(svc *service.CatalogService, movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := svc.MovieDetail(ctx, movieID)
		if err != nil {
			return DetailFailedMsg{MovieID: movieID, Err: err}
		}
		return DetailLoadedMsg{Detail: detail}
	}
}

// SearchCmd runs one committed query
func SearchCmd(svc *service.CatalogService, q search.Query) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		results, err := svc.Search(ctx, q.Term)
		return SearchResultsMsg{Query: q, Results: results, Err: err}
	}
}

// OpenTrailerCmd opens a movie's trailer in the browser
func OpenTrailerCmd(svc *service.TrailerService, movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := svc.Open(ctx, movieID); err != nil {
			return TrailerFailedMsg{MovieID: movieID, Err: err}
		}
		return TrailerOpenedMsg{MovieID: movieID}
	}
}

// DebounceCmd delivers ticket back after its quiet period
func DebounceCmd(ticket search.Ticket) tea.Cmd {
	return tea.Tick(ticket.Delay, func(time.Time) tea.Msg {
		return SearchTickMsg{Ticket: ticket}
	})
}

// DismissNoticeCmd asks to dismiss notice id after delay
func DismissNoticeCmd(id string, delay time.Duration) tea.Cmd {
	if delay < 0 {
		delay = 0
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{ID: id}
	})
}

// WaitForSelectionCmd blocks until the selection store reports a change
func WaitForSelectionCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return SelectionChangedMsg{}
	}
}
