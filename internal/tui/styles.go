package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBackground = lipgloss.AdaptiveColor{Light: "#F3EAD3", Dark: "#1A1712"}
	colorCard       = lipgloss.AdaptiveColor{Light: "#FCFBFC", Dark: "#26221B"}
	colorText       = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E6EBF2"}
	colorDim        = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#707D8C"}
	colorAccent     = lipgloss.AdaptiveColor{Light: "#2B7CB8", Dark: "#76C7FF"}
	colorError      = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"}
	colorWarning    = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#F2CC60"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Background(colorCard).
			Foreground(colorText).
			Padding(0, 2).
			MarginLeft(2)

	selectedCardStyle = cardStyle.
				BorderForeground(colorAccent)

	titleStyle     = lipgloss.NewStyle().Bold(true)
	listPriceStyle = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true).MarginRight(1)
	offeredStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2).
			MarginLeft(2)

	alertStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true).
			Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
)
