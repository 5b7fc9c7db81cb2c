/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package render

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Primary lipgloss.Color
	Dim     lipgloss.Color
	Border  lipgloss.Color
}

var DefaultTheme = Theme{
	Accent:  lipgloss.Color("#f5c518"),
	Success: lipgloss.Color("#22c55e"),
	Warning: lipgloss.Color("#eab308"),
	Error:   lipgloss.Color("#ef4444"),
	Primary: lipgloss.Color("#e0e0e8"),
	Dim:     lipgloss.Color("#5a5a70"),
	Border:  lipgloss.Color("#2a2a3a"),
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Dim      lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Banner   lipgloss.Style
	Cell     lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(theme.Dim),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Selected: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		Banner: lipgloss.NewStyle().
			Foreground(theme.Error).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
