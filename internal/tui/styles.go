// Package tui provides the interactive terminal UI for yomi.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#E63946") // title
	ColorSecondary = lipgloss.Color("#4ECDC4") // current view
	ColorAccent    = lipgloss.Color("#FFE66D") // focus
	ColorMuted     = lipgloss.Color("#666666") // help text
	ColorText      = lipgloss.Color("#F1FAEE")
	ColorBg        = lipgloss.Color("#1A1A2E")
	ColorBgAlt     = lipgloss.Color("#2D3436")
	ColorBorder    = lipgloss.Color("#3D5A80")
)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderRight(true).
			BorderForeground(ColorBorder).
			Padding(1, 1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorBg).
				Padding(0, 1).
				MarginBottom(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SidebarItemCurrentStyle = SidebarItemStyle.
				Bold(true).
				Foreground(ColorSecondary)

	SidebarItemActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 1)

	SidebarHelpStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				MarginTop(1).
				Padding(0, 1)
)

// Help overlay styles
var (
	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	HelpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2).
			Width(54)
)

// ContentStyle pads the main view area.
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
