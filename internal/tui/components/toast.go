package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/notify"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RenderToast renders a notice as a single right-aligned line of width
func RenderToast(n notify.Notice, width int) string {
	style := styles.ToastInfoStyle
	icon := "i"
	switch n.Kind {
	case notify.KindSuccess:
		style = styles.ToastSuccessStyle
		icon = "✓"
	case notify.KindError:
		style = styles.ToastErrorStyle
		icon = "✗"
	}

	text := style.Render(icon + " " + styles.Truncate(n.Message, width-6))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, text)
}
