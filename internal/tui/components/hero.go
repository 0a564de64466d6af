package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Hero fallbacks shown before any movie is selected
const (
	FallbackTitle       = "The Gorge"
	FallbackDescription = "Two highly trained operatives grow close from a distance after being sent to guard opposite sides of a mysterious gorge. When an evil below emerges, they must work together to survive what lies within."

	// DescriptionLimit is the number of characters shown before truncation
	DescriptionLimit = 220
)

// TrailerState describes the trailer affordance
type TrailerState int

const (
	TrailerUnknown TrailerState = iota // detail not loaded yet
	TrailerAvailable
	TrailerMissing
)

// Hero is the large panel describing the selected movie
type Hero struct {
	movie       *domain.Movie
	backdropURL string
	trailer     TrailerState
	favorite    bool
	width       int
}

// NewHero creates an empty hero panel
func NewHero() Hero {
	return Hero{}
}

// SetMovie sets the movie shown; nil shows the fallback
func (h *Hero) SetMovie(movie *domain.Movie, backdropURL string) {
	if movie == nil || h.movie == nil || h.movie.ID != movie.ID {
		h.trailer = TrailerUnknown
	}
	h.movie = movie
	h.backdropURL = backdropURL
}

// MovieID returns the id shown, or 0 for the fallback
func (h Hero) MovieID() int {
	if h.movie == nil {
		return 0
	}
	return h.movie.ID
}

// SetTrailer updates the trailer affordance
func (h *Hero) SetTrailer(state TrailerState) {
	h.trailer = state
}

// Trailer returns the trailer affordance state
func (h Hero) Trailer() TrailerState {
	return h.trailer
}

// SetFavorite marks whether the movie is a favorite
func (h *Hero) SetFavorite(favorite bool) {
	h.favorite = favorite
}

// SetSize updates the hero width
func (h *Hero) SetSize(width int) {
	h.width = width
}

// Title returns the heading text
func (h Hero) Title() string {
	if h.movie == nil {
		return FallbackTitle
	}
	return h.movie.DisplayTitle(FallbackTitle)
}

// Description returns the overview truncated to DescriptionLimit
func (h Hero) Description() string {
	overview := FallbackDescription
	if h.movie != nil && h.movie.Overview != "" {
		overview = h.movie.Overview
	}
	return styles.TruncateDescription(overview, DescriptionLimit)
}

// View renders the hero panel
func (h Hero) View() string {
	innerWidth := h.width - 6 // border + padding
	if innerWidth < 20 {
		innerWidth = 20
	}

	var b strings.Builder
	b.WriteString(styles.HeroTitleStyle.Render(h.Title()))
	if h.movie != nil {
		b.WriteString("  ")
		b.WriteString(styles.RatingMark + " " + styles.SubtitleStyle.Render(h.movie.FormattedRating()))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(innerWidth).Foreground(styles.LightGray).Render(h.Description()))
	b.WriteString("\n\n")

	b.WriteString(h.buttons())

	if h.backdropURL != "" {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(styles.Truncate(h.backdropURL, innerWidth)))
	}

	return styles.HeroStyle.Width(h.width - 2).Render(b.String())
}

func (h Hero) buttons() string {
	var trailer string
	switch h.trailer {
	case TrailerMissing:
		trailer = styles.DisabledButtonStyle.Render("▶ Trailer unavailable")
	case TrailerAvailable:
		trailer = styles.ButtonStyle.Render("▶ Watch Trailer (t)")
	default:
		trailer = styles.DisabledButtonStyle.Render("▶ Trailer…")
	}

	fav := styles.DimBadgeStyle.Render(styles.NotFavoriteChar + " Add to Favorites (f)")
	if h.favorite {
		fav = styles.BadgeStyle.Render(styles.FavoriteChar + " In Favorites (f)")
	}

	if h.movie == nil {
		return trailer
	}
	return trailer + "  " + fav
}
