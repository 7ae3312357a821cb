package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Confirm     lipgloss.Style
	Dim         lipgloss.Style
	Filter      lipgloss.Style
	Header      lipgloss.Style
	Column      lipgloss.Style
	InfoBox     lipgloss.Style
	NoticeBox   lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	Label       lipgloss.Style
	FocusLabel  lipgloss.Style
	Price       lipgloss.Style
	LowStock    lipgloss.Style
	StatusError lipgloss.Style
	SelectionBg lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Confirm: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Filter:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Column:  lipgloss.NewStyle().Bold(true).Underline(true),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		NoticeBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			BorderForeground(lipgloss.Color("203")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		Price:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		LowStock:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}
