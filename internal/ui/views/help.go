package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is one key and what it does
type HelpEntry struct {
	Keys string
	Desc string
}

// HelpSection groups related keys under a heading
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpSections lists every key the application understands
var HelpSections = []HelpSection{
	{"Navigation", []HelpEntry{
		{"↑/↓, j/k", "Move up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"Enter, i", "Show product details"},
	}},
	{"Products", []HelpEntry{
		{"a", "Add a product"},
		{"d, x, Del", "Delete the selected product"},
		{"r", "Reload from the store"},
	}},
	{"Add form", []HelpEntry{
		{"Tab/S-Tab", "Next/previous field"},
		{"Enter", "Save the product"},
		{"Esc", "Close, keeping what was typed"},
	}},
	{"Filter", []HelpEntry{
		{"/, F", "Filter by name or description"},
		{"Enter", "Keep the filter"},
		{"Esc", "Restore the previous filter, or clear it"},
	}},
	{"Other", []HelpEntry{
		{"?", "Toggle this help"},
		{"H", "Open help in a pager"},
		{"q", "Quit"},
	}},
}

const helpTitle = "invtrack Help"

// PlainHelp renders the help without styling, for the pager
func PlainHelp() string {
	var b strings.Builder
	b.WriteString(helpTitle)
	b.WriteString("\n")
	for _, section := range HelpSections {
		b.WriteString("\n")
		b.WriteString(section.Title)
		b.WriteString("\n")
		for _, e := range section.Entries {
			fmt.Fprintf(&b, "  %-12s %s\n", e.Keys, e.Desc)
		}
	}
	return b.String()
}

// renderHelpContent renders the help popup, scrolled to scrollOffset
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	lines := []string{r.styles.Title.UnsetMarginBottom().Render(helpTitle)}
	for _, section := range HelpSections {
		lines = append(lines, "", sectionStyle.Render(section.Title))
		for _, e := range section.Entries {
			lines = append(lines, fmt.Sprintf("  %s %s",
				keyStyle.Render(fmt.Sprintf("%-12s", e.Keys)), descStyle.Render(e.Desc)))
		}
	}

	// account for popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	totalLines := len(lines)
	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}
		end := scrollOffset + visibleHeight
		lines = append([]string(nil), lines[scrollOffset:end]...)

		if scrollOffset > 0 {
			lines[0] = r.styles.Scroll.Render("↑ (more above)")
		}
		if end < totalLines {
			lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}
