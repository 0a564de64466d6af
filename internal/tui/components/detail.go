package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// CastLimit is how many cast members the detail page lists
const CastLimit = 5

// ImageURLs builds display URLs for poster and backdrop paths
type ImageURLs interface {
	PosterURL(path string) string
	BackdropURL(path string) string
}

// Detail is the scrollable movie detail page
type Detail struct {
	movieID  int
	detail   *domain.MovieDetail
	loading  bool
	err      error
	favorite bool

	images   ImageURLs
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

// NewDetail creates a detail page
func NewDetail(images ImageURLs) Detail {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	// "f" toggles the favorite on this page, so paging stays on PgUp/PgDn
	vp := viewport.New(0, 0)
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown", " "))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))

	return Detail{
		images:   images,
		viewport: vp,
		spinner:  s,
	}
}

// Load resets the page to a loading state for movieID
func (d *Detail) Load(movieID int) tea.Cmd {
	d.movieID = movieID
	d.detail = nil
	d.err = nil
	d.loading = true
	d.viewport.GotoTop()
	return d.spinner.Tick
}

// MovieID returns the movie being shown
func (d Detail) MovieID() int {
	return d.movieID
}

// Movie returns the loaded movie, if any
func (d Detail) Movie() *domain.Movie {
	if d.detail == nil {
		return nil
	}
	m := d.detail.Movie
	return &m
}

// Loaded returns the loaded detail, if any
func (d Detail) Loaded() *domain.MovieDetail {
	return d.detail
}

// IsLoading reports whether the detail is being fetched
func (d Detail) IsLoading() bool {
	return d.loading
}

// SetDetail shows a loaded detail. Details for another movie are ignored.
func (d *Detail) SetDetail(detail *domain.MovieDetail) bool {
	if detail == nil || detail.ID != d.movieID {
		return false
	}
	d.detail = detail
	d.loading = false
	d.err = nil
	d.refresh()
	return true
}

// SetError shows a load failure for movieID
func (d *Detail) SetError(movieID int, err error) bool {
	if movieID != d.movieID {
		return false
	}
	d.loading = false
	d.err = err
	return true
}

// SetFavorite updates the favorite affordance
func (d *Detail) SetFavorite(favorite bool) {
	if d.favorite == favorite {
		return
	}
	d.favorite = favorite
	d.refresh()
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = height
	d.refresh()
}

// Update handles scrolling and spinner ticks
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case tea.KeyMsg:
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return d, cmd
	}
	return d, nil
}

// View renders the page
func (d Detail) View() string {
	switch {
	case d.loading:
		return d.spinner.View() + " " + styles.DimStyle.Render("Loading movie details...")
	case d.err != nil:
		return styles.ErrorStyle.Render("Failed to load movie details.") + "\n\n" +
			styles.DimStyle.Render(d.err.Error()) + "\n\n" +
			styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" go back")
	case d.detail == nil:
		return ""
	}
	return d.viewport.View()
}

func (d *Detail) refresh() {
	if d.detail == nil {
		return
	}
	d.viewport.SetContent(d.render())
}

func (d Detail) render() string {
	m := d.detail
	width := d.width
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	b.WriteString(styles.HeroTitleStyle.Render(m.DisplayTitle("Untitled")))
	b.WriteString("\n")

	if date := m.FormattedReleaseDate(); date != "" {
		b.WriteString(styles.SubtitleStyle.Render("Release date: " + date))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(d.actions())
	b.WriteString("\n\n")

	stats := []string{
		stat("Rating", styles.RatingMark+" "+fmt.Sprintf("%s/10", m.FormattedRating())),
		stat("Genre", m.MainGenre()),
		stat("Age Limit", m.AgeLimit()),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats...))
	b.WriteString("\n\n")

	b.WriteString(styles.SectionTitleStyle.Render("Overview"))
	b.WriteString("\n")
	overview := m.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(lipgloss.NewStyle().Width(width - 2).Foreground(styles.LightGray).Render(overview))
	b.WriteString("\n\n")

	if cast := m.TopCast(CastLimit); len(cast) > 0 {
		b.WriteString(styles.SectionTitleStyle.Render("Cast & Crew"))
		b.WriteString("\n")
		for _, c := range cast {
			line := styles.TitleStyle.Render(c.Name)
			if c.Character != "" {
				line += styles.DimStyle.Render(" as " + c.Character)
			}
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	if d.images != nil {
		if url := d.images.PosterURL(m.PosterPath); url != "" {
			b.WriteString(styles.DimStyle.Render("Poster:   " + url))
			b.WriteString("\n")
		}
		if url := d.images.BackdropURL(m.ImagePath()); url != "" {
			b.WriteString(styles.DimStyle.Render("Backdrop: " + url))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (d Detail) actions() string {
	trailer := styles.DisabledButtonStyle.Render("▶ Trailer unavailable")
	if m := d.detail; m != nil && m.TrailerURL() != "" {
		trailer = styles.ButtonStyle.Render("▶ Watch Trailer (t)")
	}

	fav := styles.DimBadgeStyle.Render(styles.NotFavoriteChar + " Add to Favorites (f)")
	if d.favorite {
		fav = styles.BadgeStyle.Render(styles.FavoriteChar + " In Favorites (f)")
	}
	return trailer + "  " + fav
}

func stat(label, value string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.SlateLight).
		Padding(0, 2).
		MarginRight(1)
	return box.Render(styles.DimStyle.Render(label) + "\n" + styles.TitleStyle.Render(value))
}
