package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Default paging for the grid
const (
	DefaultInitialVisible = 15
	DefaultLoadStep       = 10
)

// Grid shows a growing window of movies laid out in rows. Only the first
// visible movies are shown; LoadMore reveals the next step.
type Grid struct {
	title  string
	movies []domain.Movie
	ids    map[int]struct{}

	initial int
	step    int
	visible int

	// Selection
	cursor int
	offset int // first rendered row

	// Dimensions
	width   int
	height  int
	focused bool

	loading   bool
	err       error
	morePages bool // the source has pages not yet fetched
}

// NewGrid creates a grid that reveals initial movies, then step more per load
func NewGrid(title string, initial, step int) Grid {
	if initial <= 0 {
		initial = DefaultInitialVisible
	}
	if step <= 0 {
		step = DefaultLoadStep
	}
	return Grid{
		title:   title,
		initial: initial,
		step:    step,
		ids:     make(map[int]struct{}),
		loading: true,
	}
}

// SetMovies replaces the content and resets paging
func (g *Grid) SetMovies(movies []domain.Movie) {
	g.movies = nil
	g.ids = make(map[int]struct{}, len(movies))
	g.appendUnique(movies)
	g.visible = min(g.initial, len(g.movies))
	g.cursor = 0
	g.offset = 0
	g.loading = false
	g.err = nil
}

// AppendMovies adds a further page. Movies already present are skipped.
// Returns the number added.
func (g *Grid) AppendMovies(movies []domain.Movie) int {
	g.loading = false
	return g.appendUnique(movies)
}

func (g *Grid) appendUnique(movies []domain.Movie) int {
	added := 0
	for _, m := range movies {
		if _, dup := g.ids[m.ID]; dup {
			continue
		}
		g.ids[m.ID] = struct{}{}
		g.movies = append(g.movies, m)
		added++
	}
	return added
}

// SetError records a load failure
func (g *Grid) SetError(err error) {
	g.loading = false
	g.err = err
}

// SetLoading marks the grid as loading
func (g *Grid) SetLoading() {
	g.loading = true
	g.err = nil
}

// IsLoading reports whether a load is in flight
func (g Grid) IsLoading() bool {
	return g.loading
}

// LoadMore reveals up to step more movies and returns how many were revealed
func (g *Grid) LoadMore() int {
	before := g.visible
	g.visible = min(g.visible+g.step, len(g.movies))
	return g.visible - before
}

// CanLoadMore reports whether loaded movies remain hidden
func (g Grid) CanLoadMore() bool {
	return g.visible < len(g.movies)
}

// SetMorePages records whether the source can supply another page
func (g *Grid) SetMorePages(more bool) {
	g.morePages = more
}

// Exhausted reports whether nothing is left to reveal or fetch
func (g Grid) Exhausted() bool {
	return !g.CanLoadMore() && !g.morePages
}

// VisibleCount returns how many movies are revealed
func (g Grid) VisibleCount() int {
	return g.visible
}

// Len returns how many movies are loaded
func (g Grid) Len() int {
	return len(g.movies)
}

// Visible returns the revealed movies
func (g Grid) Visible() []domain.Movie {
	return g.movies[:g.visible]
}

// Selected returns the movie under the cursor
func (g Grid) Selected() *domain.Movie {
	if g.cursor < 0 || g.cursor >= g.visible {
		return nil
	}
	m := g.movies[g.cursor]
	return &m
}

// Cursor returns the cursor index
func (g Grid) Cursor() int {
	return g.cursor
}

// Columns returns the number of cells per row
func (g Grid) Columns() int {
	return columnsFor(g.width)
}

// AtTopRow reports whether the cursor is on the first row
func (g Grid) AtTopRow() bool {
	return g.cursor < g.Columns()
}

// MoveUp moves one row up. Returns false on the first row.
func (g *Grid) MoveUp() bool {
	cols := g.Columns()
	if g.cursor-cols < 0 {
		return false
	}
	g.cursor -= cols
	g.ensureVisible()
	return true
}

// MoveDown moves one row down, clamping to the last revealed movie.
// Returns false when already on the last row.
func (g *Grid) MoveDown() bool {
	cols := g.Columns()
	if g.visible == 0 {
		return false
	}
	lastRow := (g.visible - 1) / cols
	if g.cursor/cols >= lastRow {
		return false
	}
	g.cursor = min(g.cursor+cols, g.visible-1)
	g.ensureVisible()
	return true
}

// MoveLeft moves one cell left
func (g *Grid) MoveLeft() bool {
	if g.cursor <= 0 {
		return false
	}
	g.cursor--
	g.ensureVisible()
	return true
}

// MoveRight moves one cell right
func (g *Grid) MoveRight() bool {
	if g.cursor >= g.visible-1 {
		return false
	}
	g.cursor++
	g.ensureVisible()
	return true
}

// MoveToStart jumps to the first movie
func (g *Grid) MoveToStart() bool {
	if g.visible == 0 || g.cursor == 0 {
		return false
	}
	g.cursor = 0
	g.ensureVisible()
	return true
}

// MoveToEnd jumps to the last revealed movie
func (g *Grid) MoveToEnd() bool {
	if g.visible == 0 || g.cursor == g.visible-1 {
		return false
	}
	g.cursor = g.visible - 1
	g.ensureVisible()
	return true
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// rowsVisible returns how many rows fit: title and footer take a line each
func (g Grid) rowsVisible() int {
	rows := (g.height - 2) / CellHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (g *Grid) ensureVisible() {
	cols := g.Columns()
	row := g.cursor / cols
	rows := g.rowsVisible()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

// View renders the grid
func (g Grid) View(isFavorite FavoriteFunc) string {
	var b strings.Builder

	title := g.title
	if g.focused {
		title = styles.AccentStyle.Bold(true).Render(title)
	} else {
		title = styles.TitleStyle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	if g.err != nil && len(g.movies) == 0 {
		b.WriteString(styles.ErrorStyle.Render("Could not load movies: " + g.err.Error()))
		return b.String()
	}
	if g.loading && len(g.movies) == 0 {
		b.WriteString(styles.DimStyle.Render("Loading..."))
		return b.String()
	}
	if g.visible == 0 {
		b.WriteString(styles.DimStyle.Render("Nothing here yet"))
		return b.String()
	}

	cols := g.Columns()
	startRow := g.offset
	endRow := min(startRow+g.rowsVisible(), (g.visible+cols-1)/cols)

	rows := make([]string, 0, endRow-startRow)
	for r := startRow; r < endRow; r++ {
		start := r * cols
		end := min(start+cols, g.visible)
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, renderCell(g.movies[i], g.focused && i == g.cursor, isFavorite))
		}
		rows = append(rows, joinCells(cells))
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")

	b.WriteString(g.footer())
	return b.String()
}

func (g Grid) footer() string {
	status := fmt.Sprintf("%d of %d", g.visible, len(g.movies))
	switch {
	case g.loading:
		return styles.DimStyle.Render(status + " · loading more...")
	case !g.Exhausted():
		return styles.DimStyle.Render(status+" · ") + styles.HelpKeyStyle.Render("m") + styles.DimStyle.Render(" load more")
	default:
		return styles.DimStyle.Render(status)
	}
}
