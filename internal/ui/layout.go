package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/czhang/todobox/internal/theme"
)

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title on the left and
// contextual info (selected date, done counter) on the right.
func (l Layout) RenderHeader(title string, info string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	infoRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(info)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(infoRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		infoRendered,
	)
}

// RenderWithFrame stacks the header, content area, and status bar into
// the full terminal frame, padding the content to fill the height.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	body := lipgloss.NewStyle().
		Width(l.ContentWidth()).
		Height(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// RenderStatusBar renders the bottom status bar with keyboard hints or a
// transient message.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}
