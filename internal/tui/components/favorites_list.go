package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// FilterFunc returns favorites matching query
type FilterFunc func(query string) []favorites.Match

// FavoritesList is the favorites page: a vertical list with a fuzzy filter
type FavoritesList struct {
	filter FilterFunc
	items  []favorites.Match

	cursor int
	offset int

	filterActive bool
	filterInput  textinput.Model

	width  int
	height int
}

// NewFavoritesList creates a favorites list backed by filter
func NewFavoritesList(filter FilterFunc) FavoritesList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.AccentStyle

	return FavoritesList{
		filter:      filter,
		filterInput: ti,
	}
}

// Refresh re-runs the filter, keeping the cursor in range
func (f *FavoritesList) Refresh() {
	f.items = f.filter(f.filterInput.Value())
	if f.cursor >= len(f.items) {
		f.cursor = len(f.items) - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
	f.ensureVisible()
}

// Reset clears the filter and moves to the top
func (f *FavoritesList) Reset() {
	f.clearFilter()
	f.cursor = 0
	f.offset = 0
	f.Refresh()
}

// Len returns the number of listed favorites
func (f FavoritesList) Len() int {
	return len(f.items)
}

// Selected returns the favorite under the cursor
func (f FavoritesList) Selected() *domain.Movie {
	if f.cursor < 0 || f.cursor >= len(f.items) {
		return nil
	}
	m := f.items[f.cursor].Movie
	return &m
}

// IsFiltering reports whether the filter input has focus
func (f FavoritesList) IsFiltering() bool {
	return f.filterActive
}

// FilterQuery returns the current filter text
func (f FavoritesList) FilterQuery() string {
	return f.filterInput.Value()
}

// SetSize updates the component dimensions
func (f *FavoritesList) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.filterInput.Width = width - 6
	f.ensureVisible()
}

func (f *FavoritesList) clearFilter() {
	f.filterActive = false
	f.filterInput.Blur()
	f.filterInput.SetValue("")
}

// Update handles list navigation and filter input. Returns handled=false for
// keys the page owner should process.
func (f FavoritesList) Update(msg tea.Msg) (FavoritesList, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.filterActive {
			var cmd tea.Cmd
			f.filterInput, cmd = f.filterInput.Update(msg)
			return f, cmd, false
		}
		return f, nil, false
	}

	if f.filterActive {
		switch keyMsg.String() {
		case "esc":
			f.clearFilter()
			f.Refresh()
			return f, nil, true
		case "enter":
			// Keep the query, return keys to the list
			f.filterActive = false
			f.filterInput.Blur()
			return f, nil, true
		case "up", "down":
			// fall through to navigation
		default:
			var cmd tea.Cmd
			f.filterInput, cmd = f.filterInput.Update(msg)
			f.cursor = 0
			f.offset = 0
			f.Refresh()
			return f, cmd, true
		}
	}

	switch {
	case key.Matches(keyMsg, ListKeys.Filter):
		f.filterActive = true
		return f, f.filterInput.Focus(), true
	case key.Matches(keyMsg, ListKeys.Escape) && f.filterInput.Value() != "":
		f.clearFilter()
		f.Refresh()
		return f, nil, true
	case key.Matches(keyMsg, ListKeys.Up):
		if f.cursor > 0 {
			f.cursor--
			f.ensureVisible()
		}
		return f, nil, true
	case key.Matches(keyMsg, ListKeys.Down):
		if f.cursor < len(f.items)-1 {
			f.cursor++
			f.ensureVisible()
		}
		return f, nil, true
	case key.Matches(keyMsg, ListKeys.Home):
		f.cursor = 0
		f.ensureVisible()
		return f, nil, true
	case key.Matches(keyMsg, ListKeys.End):
		if len(f.items) > 0 {
			f.cursor = len(f.items) - 1
			f.ensureVisible()
		}
		return f, nil, true
	}
	return f, nil, false
}

// rowsVisible returns list rows that fit below the title and filter lines
func (f FavoritesList) rowsVisible() int {
	rows := (f.height - 4) / 2
	if rows < 1 {
		return 1
	}
	return rows
}

func (f *FavoritesList) ensureVisible() {
	rows := f.rowsVisible()
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+rows {
		f.offset = f.cursor - rows + 1
	}
	if f.offset < 0 {
		f.offset = 0
	}
}

// View renders the page
func (f FavoritesList) View(total int) string {
	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("Favorites"))
	b.WriteString("\n")

	if total == 0 {
		b.WriteString(styles.TitleStyle.Render("Data Empty"))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("You don't have a favorite movie yet"))
		b.WriteString("\n\n")
		b.WriteString(styles.ButtonStyle.Render("Explore Movie (esc)"))
		return b.String()
	}

	if f.filterActive || f.filterInput.Value() != "" {
		b.WriteString(f.filterInput.View())
		b.WriteString("\n")
	}

	if len(f.items) == 0 {
		b.WriteString(styles.DimStyle.Render("No matches found"))
		return b.String()
	}

	end := min(f.offset+f.rowsVisible(), len(f.items))
	for i := f.offset; i < end; i++ {
		b.WriteString(f.renderRow(f.items[i], i == f.cursor))
		b.WriteString("\n")
	}

	if f.filterInput.Value() != "" {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d of %d favorites", len(f.items), total)))
	} else {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d favorites", total)))
	}
	return b.String()
}

func (f FavoritesList) renderRow(item favorites.Match, selected bool) string {
	m := item.Movie
	title := m.DisplayTitle("Untitled")

	matched := make(map[int]bool, len(item.MatchedIndexes))
	for _, idx := range item.MatchedIndexes {
		matched[idx] = true
	}

	var titleParts []styles.RowPart
	titleParts = append(titleParts, styles.RowPart{Text: styles.FavoriteChar + " ", Foreground: &styles.MarqueeRed})
	for i, r := range title {
		part := styles.RowPart{Text: string(r)}
		if matched[i] {
			part.Foreground = &styles.MarqueeRed
		}
		titleParts = append(titleParts, part)
	}
	titleParts = append(titleParts, styles.RowPart{Text: "  " + styles.RatingChar + " " + m.FormattedRating(), Foreground: &styles.Gold})

	row := styles.RenderListRow(titleParts, selected, f.width)

	overview := styles.Truncate(m.Overview, f.width-4)
	if overview == "" {
		overview = "No overview available."
	}
	return row + "\n" + styles.DimStyle.Render("  "+overview)
}
