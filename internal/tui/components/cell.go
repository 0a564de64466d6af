package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Layout constants for movie cells
const (
	// Border adds 1 char on each side
	BorderWidth = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// CellContentWidth matches the Width of styles.GridCellStyle
	CellContentWidth = 20

	// CellGap separates adjacent cells
	CellGap = 1

	// CellOuterWidth is the rendered width of one cell including its gap
	CellOuterWidth = CellContentWidth + BorderWidth + CellGap

	// CellHeight is the rendered height of one cell: two text lines plus border
	CellHeight = 4
)

// FavoriteFunc reports whether a movie id is a favorite
type FavoriteFunc func(id int) bool

// renderCell renders one movie as a bordered two-line card
func renderCell(m domain.Movie, selected bool, isFavorite FavoriteFunc) string {
	textWidth := CellContentWidth - HorizontalPadding

	title := styles.Truncate(m.DisplayTitle("Untitled"), textWidth)

	mark := styles.NotFavoriteMark
	if isFavorite != nil && isFavorite(m.ID) {
		mark = styles.FavoriteMark
	}
	meta := styles.RatingMark + " " + m.FormattedRating() + "  " + mark

	style := styles.GridCellStyle
	titleStyle := styles.SubtitleStyle
	if selected {
		style = styles.GridCellSelectedStyle
		titleStyle = styles.TitleStyle
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		meta,
	))
}

// joinCells lays out rendered cells left to right with a gap
func joinCells(cells []string) string {
	if len(cells) == 0 {
		return ""
	}
	gap := lipgloss.NewStyle().Width(CellGap).Render("")
	parts := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// columnsFor returns how many cells fit in width
func columnsFor(width int) int {
	cols := (width + CellGap) / CellOuterWidth
	if cols < 1 {
		return 1
	}
	return cols
}
