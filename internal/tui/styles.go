package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	hoverFg   = lipgloss.Color("#FFA500")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	toolStyle   = lipgloss.NewStyle().Foreground(baseDimFg).Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Bold(true).Padding(0, 1)
)

// canvas layers, lowest priority first
var layerStyles = map[layer]lipgloss.Style{
	layerFill:     lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")),
	layerWall:     lipgloss.NewStyle().Foreground(baseFg),
	layerDoor:     lipgloss.NewStyle().Foreground(lipgloss.Color("#B45309")),
	layerWindow:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")),
	layerHover:    lipgloss.NewStyle().Foreground(hoverFg),
	layerPreview:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
	layerSelected: lipgloss.NewStyle().Foreground(accentFg).Bold(true),
}

var (
	handleMark = lipgloss.NewStyle().Foreground(accentFg).Render("■")
	hoverMark  = lipgloss.NewStyle().Foreground(hoverFg).Render("◯")
)
