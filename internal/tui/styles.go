package tui

import "github.com/charmbracelet/lipgloss"

// styles is the lipgloss rendition of a ui.Theme.
type styles struct {
	dark bool

	title    lipgloss.Style
	success  lipgloss.Style
	pending  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	errorS   lipgloss.Style
	urgent   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	help     lipgloss.Style
	border   lipgloss.Color

	boxChecked   string
	boxUnchecked string
}

func newStyles(dark bool) styles {
	s := styles{
		dark:         dark,
		title:        lipgloss.NewStyle().Bold(true),
		muted:        lipgloss.NewStyle().Faint(true),
		selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		help:         lipgloss.NewStyle().Faint(true),
		boxChecked:   "☑",
		boxUnchecked: "☐",
	}
	if dark {
		s.success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		s.pending = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		s.accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		s.errorS = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		s.urgent = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		s.border = lipgloss.Color("8")
		return s
	}
	s.success = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	s.pending = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	s.accent = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
	s.errorS = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	s.urgent = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	s.border = lipgloss.Color("245")
	return s
}

func (s styles) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.border).
		Padding(0, 1)
}
