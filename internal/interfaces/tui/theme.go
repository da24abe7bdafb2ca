package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles for the board.
type Theme struct {
	ColumnTitle  lipgloss.Style
	Column       lipgloss.Style
	ColumnHover  lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardGrabbed  lipgloss.Style
	CardRef      lipgloss.Style
	Badge        lipgloss.Style

	DeadlineNormal   lipgloss.Style
	DeadlineUpcoming lipgloss.Style
	DeadlineUrgent   lipgloss.Style
	DeadlineOverdue  lipgloss.Style

	StatusBar   lipgloss.Style
	ErrorNotice lipgloss.Style
	Overlay     lipgloss.Style
}

var DefaultTheme = Theme{
	ColumnTitle: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	Column: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),
	ColumnHover: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")),
	Card: lipgloss.NewStyle().Padding(0, 1),
	CardSelected: lipgloss.NewStyle().Padding(0, 1).
		Background(lipgloss.Color("236")),
	CardGrabbed: lipgloss.NewStyle().Padding(0, 1).
		Background(lipgloss.Color("24")).Bold(true),
	CardRef: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Badge:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),

	DeadlineNormal:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	DeadlineUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	DeadlineUrgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	DeadlineOverdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	ErrorNotice: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).Bold(true),
	Overlay: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2),
}
