package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/czhang/todobox/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// BoxTitleStyle renders a box heading with its done counter.
var BoxTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// SubTaskStyle renders sub-task lines under their parent todo.
var SubTaskStyle = lipgloss.NewStyle().
	PaddingLeft(4).
	Foreground(ColorGray)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DimStyle de-emphasizes secondary text such as dates outside the
// current month.
var DimStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}

// StatusStyle returns a color-coded style for the given todo status.
func StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusCompleted:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.StatusDeleted:
		return lipgloss.NewStyle().Foreground(ColorGray).Strikethrough(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorWhite)
	}
}

// ActivityStyle returns the heat-map cell style for a day's activity
// level.
func ActivityStyle(a model.Activity) lipgloss.Style {
	switch a {
	case model.ActivityHigh:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A202C")).
			Background(lipgloss.AdaptiveColor{Dark: "#2F855A", Light: "#2F855A"})
	case model.ActivityMedium:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A202C")).
			Background(lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#6BCB77"})
	case model.ActivityLow:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A202C")).
			Background(lipgloss.AdaptiveColor{Dark: "#B7E4C7", Light: "#B7E4C7"})
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}
