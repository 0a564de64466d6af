package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Carousel is a single horizontally scrolling row of movies
type Carousel struct {
	title  string
	movies []domain.Movie

	cursor int
	offset int

	width   int
	focused bool
	loading bool
	err     error
}

// NewCarousel creates an empty carousel
func NewCarousel(title string) Carousel {
	return Carousel{title: title, loading: true}
}

// SetMovies replaces the row content, keeping the cursor on the same movie
// when it is still present.
func (c *Carousel) SetMovies(movies []domain.Movie) {
	var currentID int
	if sel := c.Selected(); sel != nil {
		currentID = sel.ID
	}

	c.movies = movies
	c.loading = false
	c.err = nil
	c.cursor = 0
	c.offset = 0

	for i, m := range movies {
		if m.ID == currentID {
			c.cursor = i
			break
		}
	}
	c.ensureVisible()
}

// SetError records a load failure
func (c *Carousel) SetError(err error) {
	c.loading = false
	c.err = err
}

// SetLoading marks the row as loading
func (c *Carousel) SetLoading() {
	c.loading = true
	c.err = nil
}

// Movies returns the row content
func (c Carousel) Movies() []domain.Movie {
	return c.movies
}

// Len returns the number of movies
func (c Carousel) Len() int {
	return len(c.movies)
}

// Selected returns the movie under the cursor
func (c Carousel) Selected() *domain.Movie {
	if c.cursor < 0 || c.cursor >= len(c.movies) {
		return nil
	}
	m := c.movies[c.cursor]
	return &m
}

// Cursor returns the cursor index
func (c Carousel) Cursor() int {
	return c.cursor
}

// MoveLeft moves the cursor one movie left. Returns false at the start.
func (c *Carousel) MoveLeft() bool {
	if c.cursor <= 0 {
		return false
	}
	c.cursor--
	c.ensureVisible()
	return true
}

// MoveRight moves the cursor one movie right. Returns false at the end.
func (c *Carousel) MoveRight() bool {
	if c.cursor >= len(c.movies)-1 {
		return false
	}
	c.cursor++
	c.ensureVisible()
	return true
}

// MoveToStart jumps to the first movie
func (c *Carousel) MoveToStart() bool {
	if len(c.movies) == 0 || c.cursor == 0 {
		return false
	}
	c.cursor = 0
	c.ensureVisible()
	return true
}

// MoveToEnd jumps to the last movie
func (c *Carousel) MoveToEnd() bool {
	last := len(c.movies) - 1
	if last < 0 || c.cursor == last {
		return false
	}
	c.cursor = last
	c.ensureVisible()
	return true
}

// SetSize updates the carousel width
func (c *Carousel) SetSize(width int) {
	c.width = width
	c.ensureVisible()
}

// SetFocused sets the focus state
func (c *Carousel) SetFocused(focused bool) {
	c.focused = focused
}

// IsFocused returns the focus state
func (c Carousel) IsFocused() bool {
	return c.focused
}

func (c Carousel) visibleCount() int {
	// Reserve two columns for scroll arrows
	return columnsFor(c.width - 4)
}

func (c *Carousel) ensureVisible() {
	n := c.visibleCount()
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+n {
		c.offset = c.cursor - n + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// View renders the carousel
func (c Carousel) View(isFavorite FavoriteFunc) string {
	var b strings.Builder

	title := c.title
	if c.focused {
		title = styles.AccentStyle.Bold(true).Render(title)
	} else {
		title = styles.TitleStyle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	switch {
	case c.err != nil:
		b.WriteString(styles.ErrorStyle.Render("Could not load movies: " + c.err.Error()))
		return b.String()
	case c.loading:
		b.WriteString(styles.DimStyle.Render("Loading..."))
		return b.String()
	case len(c.movies) == 0:
		b.WriteString(styles.DimStyle.Render("Nothing here yet"))
		return b.String()
	}

	end := c.offset + c.visibleCount()
	if end > len(c.movies) {
		end = len(c.movies)
	}

	cells := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		cells = append(cells, renderCell(c.movies[i], c.focused && i == c.cursor, isFavorite))
	}

	left, right := " ", " "
	if c.offset > 0 {
		left = styles.AccentStyle.Render("‹")
	}
	if end < len(c.movies) {
		right = styles.AccentStyle.Render("›")
	}

	row := joinCells(cells)
	arrowStyle := lipgloss.NewStyle().Height(lipgloss.Height(row)).AlignVertical(lipgloss.Center)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		arrowStyle.Render(left+" "),
		row,
		arrowStyle.Render(" "+right),
	))
	return b.String()
}
