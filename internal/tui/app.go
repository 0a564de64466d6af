package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/notify"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/selection"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// View identifies the page being shown
type View int

const (
	ViewHome View = iota
	ViewDetail
	ViewFavorites
)

// homeFocus identifies the focused row on the home page
type homeFocus int

const (
	focusTrending homeFocus = iota
	focusNewRelease
)

// Notice keys for notices raised by the TUI itself
const (
	noticeKeyTrailer       = "trailer"
	noticeKeyFavoriteError = "favorite-error"
	noticeKeyLoadError     = "load-error"
)

// Layout heights
const (
	HeaderHeight   = 2
	FooterHeight   = 1
	HeroHeight     = 11
	CarouselHeight = components.CellHeight + 2
)

// Deps holds the services and stores the TUI drives
type Deps struct {
	Catalog   *service.CatalogService
	Trailers  *service.TrailerService
	Selection *selection.Store
	Favorites *favorites.Store
	Notifier  *notify.Notifier
	Images    tmdb.Images
	UI        config.UIConfig
	Logger    *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services and stores
	catalog   *service.CatalogService
	trailers  *service.TrailerService
	selection *selection.Store
	favorites *favorites.Store
	notifier  *notify.Notifier
	images    tmdb.Images
	logger    *slog.Logger

	// Search state
	debouncer *search.Debouncer
	session   *search.Session

	// Selection store subscription
	observer    *SelectionObserver
	unsubscribe func()

	// UI Components
	hero     components.Hero
	trending components.Carousel
	releases components.Grid
	detail   components.Detail
	favList  components.FavoritesList
	overlay  components.SearchOverlay
	help     help.Model

	// Navigation
	view     View
	history  []View
	focus    homeFocus
	showHelp bool

	// Paging state for new releases
	releasePage int
	loadingMore bool

	// Dimensions
	Width  int
	Height int
	Ready  bool

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	observer := NewSelectionObserver()
	unsubscribe := deps.Selection.Subscribe(func(*domain.Movie) {
		observer.OnSelect()
	})

	h := help.New()
	h.ShowAll = true

	m := Model{
		catalog:     deps.Catalog,
		trailers:    deps.Trailers,
		selection:   deps.Selection,
		favorites:   deps.Favorites,
		notifier:    deps.Notifier,
		images:      deps.Images,
		logger:      logger,
		debouncer:   search.NewDebouncer(deps.UI.Debounce),
		session:     search.NewSession(),
		observer:    observer,
		unsubscribe: unsubscribe,
		hero:        components.NewHero(),
		trending:    components.NewCarousel("Trending Now"),
		releases:    components.NewGrid("New Release", deps.UI.InitialNewReleases, deps.UI.NewReleaseStep),
		detail:      components.NewDetail(deps.Images),
		favList:     components.NewFavoritesList(deps.Favorites.Filter),
		overlay:     components.NewSearchOverlay(),
		help:        h,
		view:        ViewHome,
		focus:       focusTrending,
		releasePage: 1,
		now:         time.Now,
	}
	m.trending.SetFocused(true)
	return m
}

// Close releases the selection subscription
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadTrendingCmd(m.catalog),
		LoadNowPlayingCmd(m.catalog, 1),
		WaitForSelectionCmd(m.observer.Changes()),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.overlay.IsVisible() && m.session.Phase() == search.PhaseLoading {
			var cmd tea.Cmd
			m.overlay, cmd, _ = m.overlay.Update(msg, 0)
			cmds = append(cmds, cmd)
		}
		if m.detail.IsLoading() {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case TrendingLoadedMsg:
		m.trending.SetMovies(msg.Movies)
		m.seedSelection(msg.Movies)
		m.logger.Debug("trending loaded", "count", len(msg.Movies))
		return m, nil

	case NowPlayingLoadedMsg:
		return m.handleNowPlaying(msg.Page)

	case ErrMsg:
		return m.handleLoadError(msg)

	case SelectionChangedMsg:
		cmd := m.syncHero()
		return m, tea.Batch(cmd, WaitForSelectionCmd(m.observer.Changes()))

	case DetailLoadedMsg:
		m.applyDetail(msg.Detail)
		return m, nil

	case DetailFailedMsg:
		if m.hero.MovieID() == msg.MovieID {
			m.hero.SetTrailer(components.TrailerMissing)
		}
		m.detail.SetError(msg.MovieID, msg.Err)
		m.logger.Warn("movie detail failed", "id", msg.MovieID, "error", msg.Err)
		return m, nil

	case SearchTickMsg:
		return m.handleSearchTick(msg.Ticket)

	case SearchResultsMsg:
		if !m.session.Apply(msg.Query, msg.Results, msg.Err) {
			m.logger.Debug("discarded stale search results", "query", msg.Query.Term, "gen", msg.Query.Gen)
			return m, nil
		}
		m.overlay.ResetCursor()
		return m, nil

	case TrailerOpenedMsg:
		m.logger.Debug("trailer opened", "id", msg.MovieID)
		return m, nil

	case TrailerFailedMsg:
		kind := notify.KindError
		if errors.Is(msg.Err, domain.ErrNoTrailer) {
			kind = notify.KindInfo
		}
		m.notifier.Push(kind, noticeKeyTrailer, service.NoticeText(msg.Err))
		return m, m.scheduleNoticeDismiss()

	case NoticeExpiredMsg:
		m.notifier.Dismiss(msg.ID)
		return m, nil
	}

	// Pass anything else (cursor blink) to the focused input
	if m.overlay.IsVisible() {
		var cmd tea.Cmd
		m.overlay, cmd, _ = m.overlay.Update(msg, len(m.session.Results()))
		return m, cmd
	}
	if m.view == ViewFavorites && m.favList.IsFiltering() {
		var cmd tea.Cmd
		m.favList, cmd, _ = m.favList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// seedSelection selects the first movie of a freshly loaded list when
// nothing is selected yet
func (m *Model) seedSelection(movies []domain.Movie) {
	if len(movies) == 0 {
		return
	}
	first := movies[0]
	m.selection.SelectIfEmpty(&first)
}

func (m Model) handleNowPlaying(page domain.Page) (tea.Model, tea.Cmd) {
	if page.Number <= 1 {
		m.releases.SetMovies(page.Movies)
		m.releasePage = 1
		m.seedSelection(page.Movies)
	} else {
		added := m.releases.AppendMovies(page.Movies)
		m.releasePage = page.Number
		if m.loadingMore {
			m.releases.LoadMore()
		}
		m.logger.Debug("appended new releases", "page", page.Number, "added", added)
	}
	m.loadingMore = false
	m.releases.SetMorePages(page.HasMore())
	return m, nil
}

func (m Model) handleLoadError(msg ErrMsg) (tea.Model, tea.Cmd) {
	m.logger.Error("load failed", "context", msg.Context, "error", msg.Err)

	switch msg.Context {
	case ContextTrending:
		m.trending.SetError(msg.Err)
	case ContextNowPlaying:
		m.releases.SetError(msg.Err)
		m.loadingMore = false
	}

	m.notifier.Error(noticeKeyLoadError, msg.Error())
	return m, m.scheduleNoticeDismiss()
}

// syncHero points the hero at the current selection and fetches its detail
// when the trailer state is not known yet
func (m *Model) syncHero() tea.Cmd {
	movie, ok := m.selection.Current()
	if !ok {
		m.hero.SetMovie(nil, "")
		return nil
	}

	m.hero.SetMovie(movie, m.images.BackdropURL(movie.ImagePath()))
	if m.hero.Trailer() != components.TrailerUnknown {
		return nil
	}
	if detail, ok := m.catalog.CachedMovieDetail(movie.ID); ok {
		m.applyDetail(detail)
		return nil
	}
	return LoadDetailCmd(m.catalog, movie.ID)
}

// applyDetail feeds a loaded detail to the hero and the detail page
func (m *Model) applyDetail(detail *domain.MovieDetail) {
	if detail == nil {
		return
	}
	if m.hero.MovieID() == detail.ID {
		if detail.TrailerURL() != "" {
			m.hero.SetTrailer(components.TrailerAvailable)
		} else {
			m.hero.SetTrailer(components.TrailerMissing)
		}
	}
	if m.detail.SetDetail(detail) {
		m.detail.SetFavorite(m.favorites.Contains(detail.ID))
	}
}

func (m Model) handleSearchTick(ticket search.Ticket) (tea.Model, tea.Cmd) {
	term, ok := m.debouncer.Fire(ticket)
	if !ok || !m.overlay.IsVisible() {
		return m, nil
	}

	q, issue := m.session.Commit(term)
	m.overlay.ResetCursor()
	if !issue {
		return m, nil
	}
	m.logger.Debug("search committed", "query", q.Term, "gen", q.Gen)
	return m, tea.Batch(SearchCmd(m.catalog, q), m.overlay.SpinnerTick())
}

// scheduleNoticeDismiss starts the dismiss timer for the visible notice
func (m Model) scheduleNoticeDismiss() tea.Cmd {
	now := m.now()
	n, ok := m.notifier.Current(now)
	if !ok {
		return nil
	}
	return DismissNoticeCmd(n.ID, n.Expires.Sub(now))
}

// updateLayout recalculates component sizes
func (m *Model) updateLayout() {
	m.hero.SetSize(m.Width)
	m.trending.SetSize(m.Width)

	gridHeight := m.Height - HeaderHeight - FooterHeight - HeroHeight - CarouselHeight
	m.releases.SetSize(m.Width, gridHeight)

	bodyHeight := m.Height - HeaderHeight - FooterHeight
	m.detail.SetSize(m.Width, bodyHeight)
	m.favList.SetSize(m.Width, bodyHeight)
	m.overlay.SetSize(m.Width, m.Height)
	m.help.Width = m.Width
}

// pushView navigates to v, remembering the current view for esc
func (m *Model) pushView(v View) {
	if m.view == v {
		return
	}
	m.history = append(m.history, m.view)
	m.view = v
}

// popView returns to the previous view. Returns false on the home page.
func (m *Model) popView() bool {
	if len(m.history) == 0 {
		if m.view == ViewHome {
			return false
		}
		m.view = ViewHome
		return true
	}
	m.view = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return true
}

// CurrentView returns the page being shown
func (m Model) CurrentView() View {
	return m.view
}
