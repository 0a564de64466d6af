package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchState is what the overlay renders below the input
type SearchState struct {
	Phase   search.Phase
	Term    string
	Results []domain.Movie
	Err     error
}

// SearchAction reports what a key press in the overlay asked for
type SearchAction int

const (
	SearchNone    SearchAction = iota
	SearchChanged              // input text changed
	SearchSelect               // enter on a result
	SearchClose                // esc
)

// SearchOverlay is the search modal: a text input above the results of the
// last committed query.
type SearchOverlay struct {
	input   textinput.Model
	spinner spinner.Model
	cursor  int
	visible bool
	width   int
	height  int
	prev    string // detects input changes
}

// NewSearchOverlay creates a new search overlay
func NewSearchOverlay() SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return SearchOverlay{
		input:   ti,
		spinner: s,
	}
}

// Show makes the overlay visible with an empty, focused input
func (o *SearchOverlay) Show() tea.Cmd {
	o.visible = true
	o.input.SetValue("")
	o.prev = ""
	o.cursor = 0
	return tea.Batch(o.input.Focus(), textinput.Blink)
}

// Hide hides the overlay
func (o *SearchOverlay) Hide() {
	o.visible = false
	o.input.Blur()
	o.input.SetValue("")
	o.prev = ""
	o.cursor = 0
}

// IsVisible returns true if the overlay is visible
func (o SearchOverlay) IsVisible() bool {
	return o.visible
}

// Value returns the raw input text
func (o SearchOverlay) Value() string {
	return o.input.Value()
}

// SetSize updates the component dimensions
func (o *SearchOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = o.modalWidth() - 10
}

// ResetCursor moves the cursor to the first result
func (o *SearchOverlay) ResetCursor() {
	o.cursor = 0
}

// Cursor returns the result cursor
func (o SearchOverlay) Cursor() int {
	return o.cursor
}

// SpinnerTick starts the loading spinner
func (o SearchOverlay) SpinnerTick() tea.Cmd {
	return o.spinner.Tick
}

// Update handles messages. resultCount bounds cursor movement.
func (o SearchOverlay) Update(msg tea.Msg, resultCount int) (SearchOverlay, tea.Cmd, SearchAction) {
	if !o.visible {
		return o, nil, SearchNone
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		o.spinner, cmd = o.spinner.Update(msg)
		return o, cmd, SearchNone

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return o, nil, SearchClose

		case "enter":
			if resultCount > 0 {
				return o, nil, SearchSelect
			}
			return o, nil, SearchNone

		case "down", "ctrl+n":
			if o.cursor < resultCount-1 {
				o.cursor++
			}
			return o, nil, SearchNone

		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, SearchNone
		}
	}

	o.input, cmd = o.input.Update(msg)
	if v := o.input.Value(); v != o.prev {
		o.prev = v
		o.cursor = 0
		return o, cmd, SearchChanged
	}
	return o, cmd, SearchNone
}

func (o SearchOverlay) modalWidth() int {
	w := o.width * 2 / 3
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

// View renders the overlay for state
func (o SearchOverlay) View(state SearchState, isFavorite FavoriteFunc) string {
	if !o.visible {
		return ""
	}

	modalWidth := o.modalWidth()
	maxResults := 10

	var b strings.Builder
	b.WriteString(o.input.View())

	switch state.Phase {
	case search.PhaseIdle:
		// Nothing committed yet; the placeholder guides the user
	case search.PhaseLoading:
		b.WriteString("\n\n")
		b.WriteString(o.spinner.View() + " " + styles.DimStyle.Render("Searching..."))
	case search.PhaseNotFound:
		b.WriteString("\n\n")
		b.WriteString(styles.TitleStyle.Render("Data Not Found"))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("Try other keywords"))
	case search.PhaseFailed:
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render("Search failed"))
		if state.Err != nil {
			b.WriteString("\n")
			b.WriteString(styles.DimStyle.Render(state.Err.Error()))
		}
	case search.PhaseResults:
		b.WriteString("\n\n")
		o.renderResults(&b, state.Results, modalWidth, maxResults, isFavorite)
	}

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		o.width,
		o.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (o SearchOverlay) renderResults(b *strings.Builder, results []domain.Movie, modalWidth, maxResults int, isFavorite FavoriteFunc) {
	// Keep the cursor row inside the rendered window
	start := 0
	if o.cursor >= maxResults {
		start = o.cursor - maxResults + 1
	}
	end := min(start+maxResults, len(results))

	for i := start; i < end; i++ {
		m := results[i]
		selected := i == o.cursor

		var line strings.Builder
		mark := styles.NotFavoriteMark
		if isFavorite != nil && isFavorite(m.ID) {
			mark = styles.FavoriteMark
		}
		line.WriteString(mark)
		line.WriteString(" ")
		line.WriteString(styles.DimBadgeStyle.Render(styles.RatingChar + " " + m.FormattedRating()))
		line.WriteString(" ")

		title := styles.Truncate(m.DisplayTitle("Untitled"), modalWidth-20)
		style := styles.NormalItemStyle
		if selected {
			style = styles.SelectedItemStyle
		}
		line.WriteString(style.Render(title))

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(results) > end {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(results)-end)))
	}
}
