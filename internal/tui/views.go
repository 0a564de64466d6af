package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.overlay.IsVisible() {
		return m.overlay.View(m.searchState(), m.favorites.Contains)
	}

	var body string
	switch m.view {
	case ViewDetail:
		body = m.detail.View()
	case ViewFavorites:
		body = m.favList.View(m.favorites.Len())
	default:
		body = m.renderHome()
	}

	bodyHeight := m.Height - HeaderHeight - FooterHeight
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) searchState() components.SearchState {
	return components.SearchState{
		Phase:   m.session.Phase(),
		Term:    m.session.Term(),
		Results: m.session.Results(),
		Err:     m.session.Err(),
	}
}

// renderHeader renders the logo and page tabs
func (m Model) renderHeader() string {
	logo := styles.AccentStyle.Bold(true).Render("▣ MARQUEE")

	tab := func(label string, active bool) string {
		if active {
			return styles.BadgeStyle.Render(label)
		}
		return styles.DimBadgeStyle.Render(label)
	}
	tabs := tab("Home", m.view == ViewHome) + " " +
		tab(fmt.Sprintf("Favorites (%d)", m.favorites.Len()), m.view == ViewFavorites)
	if m.view == ViewDetail {
		tabs += " " + tab("Detail", true)
	}

	searchHint := styles.HelpKeyStyle.Render("/") + styles.HelpDescStyle.Render(" search movie")

	left := logo + "  " + tabs
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(searchHint)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + searchHint + "\n"
}

// renderHome renders the hero, the trending row and the new release grid
func (m Model) renderHome() string {
	hero := m.hero
	hero.SetFavorite(hero.MovieID() != 0 && m.favorites.Contains(hero.MovieID()))

	return lipgloss.JoinVertical(lipgloss.Left,
		hero.View(),
		m.trending.View(m.favorites.Contains),
		m.releases.View(m.favorites.Contains),
	)
}

// renderFooter renders the notice line, or key hints when no notice is visible
func (m Model) renderFooter() string {
	if n, ok := m.notifier.Current(m.now()); ok {
		return components.RenderToast(n, m.Width)
	}

	var hints []string
	add := func(k, desc string) {
		hints = append(hints, styles.HelpKeyStyle.Render(k)+styles.HelpDescStyle.Render(" "+desc))
	}

	switch m.view {
	case ViewHome:
		add("enter", "details")
		add("f", "favorite")
		add("t", "trailer")
		add("tab", "switch row")
		if !m.releases.Exhausted() {
			add("m", "load more")
		}
	case ViewDetail:
		add("f", "favorite")
		add("t", "trailer")
		add("esc", "back")
	case ViewFavorites:
		add("enter", "details")
		add("f", "remove")
		add("t", "trailer")
		add("C-f", "filter")
		add("esc", "back")
	}
	left := strings.Join(hints, "  ")
	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(m.help.View(Keys))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("Press ? or esc to return..."))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}
