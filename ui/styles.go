package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette
var (
	DraculaForeground = lipgloss.AdaptiveColor{Light: "0", Dark: "255"}
	DraculaPurple     = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
	DraculaOrange     = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	// Tab bar styles
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Padding(0, 1)
	ToggleOnStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen).
			Bold(true)
	QuickTagStyle = lipgloss.NewStyle().
			Foreground(DraculaPurple)

	// List item styles
	MovieIDStyle = lipgloss.NewStyle().
			Foreground(DraculaCyan)
	MovieIDSelectedStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Bold(true)
	MovieTitleStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)
	MovieTitleSelectedStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	MovieMetaStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	MagnetFlagStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen)
	MagnetMissingStyle = lipgloss.NewStyle().
				Foreground(DraculaRed)

	// Detail view styles
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	DetailSubtitleStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Italic(true)
	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(DraculaOrange).
				Bold(true)
	DetailSectionStyle = lipgloss.NewStyle().
				Foreground(DraculaPurple).
				Bold(true).
				MarginTop(1)
	SelectedMagnetStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(DraculaPink).
				PaddingLeft(1)
	MagnetStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DraculaRed)
	LoadingStyle = lipgloss.NewStyle().
			Foreground(DraculaOrange)
)
