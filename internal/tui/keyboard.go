package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The search overlay owns the keyboard while visible
	if m.overlay.IsVisible() {
		return m.handleSearchKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	// The favorites list consumes its navigation and filter keys first
	if m.view == ViewFavorites {
		var cmd tea.Cmd
		var handled bool
		m.favList, cmd, handled = m.favList.Update(msg)
		if handled {
			return m, cmd
		}
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.debouncer.Cancel()
		m.session.Clear()
		cmd := m.overlay.Show()
		return m, cmd

	case key.Matches(msg, Keys.Favorites):
		m.favList.Reset()
		m.pushView(ViewFavorites)
		return m, nil

	case key.Matches(msg, Keys.Back):
		m.popView()
		return m, nil

	case key.Matches(msg, Keys.ToggleFavorite):
		if movie := m.focusedMovie(); movie != nil {
			cmd := m.toggleFavorite(*movie)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, Keys.Trailer):
		cmd := m.openTrailer()
		return m, cmd

	case key.Matches(msg, Keys.Enter):
		if movie := m.focusedMovie(); movie != nil && m.view != ViewDetail {
			cmd := m.openDetail(*movie)
			return m, cmd
		}
		return m, nil
	}

	switch m.view {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleHomeKey handles movement between and within the home page rows
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	moved := false

	switch {
	case key.Matches(msg, Keys.SwitchFocus):
		if m.focus == focusTrending {
			m.setFocus(focusNewRelease)
		} else {
			m.setFocus(focusTrending)
		}
		moved = true

	case key.Matches(msg, Keys.Left):
		if m.focus == focusTrending {
			moved = m.trending.MoveLeft()
		} else {
			moved = m.releases.MoveLeft()
		}

	case key.Matches(msg, Keys.Right):
		if m.focus == focusTrending {
			moved = m.trending.MoveRight()
		} else {
			moved = m.releases.MoveRight()
		}

	case key.Matches(msg, Keys.Up):
		if m.focus == focusNewRelease {
			if m.releases.AtTopRow() {
				m.setFocus(focusTrending)
				moved = true
			} else {
				moved = m.releases.MoveUp()
			}
		}

	case key.Matches(msg, Keys.Down):
		if m.focus == focusTrending {
			if m.releases.VisibleCount() > 0 {
				m.setFocus(focusNewRelease)
				moved = true
			}
		} else {
			moved = m.releases.MoveDown()
		}

	case key.Matches(msg, Keys.Home):
		if m.focus == focusTrending {
			moved = m.trending.MoveToStart()
		} else {
			moved = m.releases.MoveToStart()
		}

	case key.Matches(msg, Keys.End):
		if m.focus == focusTrending {
			moved = m.trending.MoveToEnd()
		} else {
			moved = m.releases.MoveToEnd()
		}

	case key.Matches(msg, Keys.LoadMore):
		cmd := m.loadMoreReleases()
		return m, cmd

	case key.Matches(msg, Keys.Refresh):
		m.catalog.RefreshLists()
		m.trending.SetLoading()
		m.releases.SetLoading()
		m.loadingMore = false
		return m, tea.Batch(LoadTrendingCmd(m.catalog), LoadNowPlayingCmd(m.catalog, 1))
	}

	if moved {
		if movie := m.focusedMovie(); movie != nil {
			m.selection.Select(movie)
		}
	}
	return m, nil
}

// handleSearchKey routes keys to the search overlay
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.session.Results()

	var cmd tea.Cmd
	var action components.SearchAction
	m.overlay, cmd, action = m.overlay.Update(msg, len(results))

	switch action {
	case components.SearchChanged:
		ticket := m.debouncer.Schedule(m.overlay.Value())
		return m, tea.Batch(cmd, DebounceCmd(ticket))

	case components.SearchSelect:
		cursor := m.overlay.Cursor()
		if cursor < 0 || cursor >= len(results) {
			return m, cmd
		}
		movie := results[cursor]
		m.closeSearch()
		m.selection.Select(&movie)
		detailCmd := m.openDetail(movie)
		return m, tea.Batch(cmd, detailCmd)

	case components.SearchClose:
		m.closeSearch()
		return m, nil
	}
	return m, cmd
}

// closeSearch hides the overlay and discards raw, committed and applied state
func (m *Model) closeSearch() {
	m.debouncer.Cancel()
	m.session.Clear()
	m.overlay.Hide()
}

func (m *Model) setFocus(f homeFocus) {
	m.focus = f
	m.trending.SetFocused(f == focusTrending)
	m.releases.SetFocused(f == focusNewRelease)
}

// focusedMovie returns the movie the page's actions apply to
func (m Model) focusedMovie() *domain.Movie {
	switch m.view {
	case ViewDetail:
		return m.detail.Movie()
	case ViewFavorites:
		return m.favList.Selected()
	default:
		if m.focus == focusNewRelease {
			if sel := m.releases.Selected(); sel != nil {
				return sel
			}
		}
		if sel := m.trending.Selected(); sel != nil {
			return sel
		}
		movie, _ := m.selection.Current()
		return movie
	}
}

// openDetail shows the detail page for movie, loading it if needed
func (m *Model) openDetail(movie domain.Movie) tea.Cmd {
	cmd := m.detail.Load(movie.ID)
	m.detail.SetFavorite(m.favorites.Contains(movie.ID))
	m.pushView(ViewDetail)

	if detail, ok := m.catalog.CachedMovieDetail(movie.ID); ok {
		m.applyDetail(detail)
		return nil
	}
	return tea.Batch(cmd, LoadDetailCmd(m.catalog, movie.ID))
}

// toggleFavorite flips movie's favorite state and refreshes dependents
func (m *Model) toggleFavorite(movie domain.Movie) tea.Cmd {
	added, err := m.favorites.Toggle(movie)
	if err != nil {
		m.logger.Error("failed to save favorites", "id", movie.ID, "error", err)
		m.notifier.Error(noticeKeyFavoriteError, "Could not save favorites")
	} else {
		m.logger.Debug("toggled favorite", "id", movie.ID, "added", added)
	}

	if m.detail.MovieID() == movie.ID {
		m.detail.SetFavorite(m.favorites.Contains(movie.ID))
	}
	if m.view == ViewFavorites {
		m.favList.Refresh()
	}
	return m.scheduleNoticeDismiss()
}

// openTrailer opens the trailer for the focused movie. On the home and
// detail pages a known missing trailer is a disabled action.
func (m *Model) openTrailer() tea.Cmd {
	movie := m.focusedMovie()
	if movie == nil {
		return nil
	}

	switch m.view {
	case ViewHome:
		if m.hero.MovieID() == movie.ID && m.hero.Trailer() == components.TrailerMissing {
			return nil
		}
	case ViewDetail:
		if d := m.detail.Loaded(); d != nil && d.TrailerURL() == "" {
			return nil
		}
	}
	return OpenTrailerCmd(m.trailers, movie.ID)
}

// loadMoreReleases reveals more of the grid, fetching the next page when
// every loaded movie is already shown
func (m *Model) loadMoreReleases() tea.Cmd {
	if m.releases.CanLoadMore() {
		m.releases.LoadMore()
		return nil
	}
	if m.releases.Exhausted() || m.loadingMore {
		return nil
	}
	m.loadingMore = true
	m.releases.SetLoading()
	return LoadNowPlayingCmd(m.catalog, m.releasePage+1)
}
