package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, https://catppuccin.com/palette
const (
	colorYellow   lipgloss.Color = "#f9e2af"
	colorPeach    lipgloss.Color = "#fab387"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"

	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorSurface0 lipgloss.Color = "#313244"
	colorCrust    lipgloss.Color = "#11111b"
)

const (
	colorBrand    = colorPink
	colorFocus    = colorLavender
	colorBox      = colorYellow
	colorDragging = colorPeach
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorSubtext1).Background(colorSurface0).Padding(0, 2)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Foreground(colorCrust).Background(colorBox).BorderBackground(colorBox)
	boxDragStyle   = boxStyle.Background(colorDragging).BorderBackground(colorDragging).Bold(true)
)
