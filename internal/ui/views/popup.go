package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws popupContent centered over a greyed-out copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := (width - modalW) / 2
	y := (height - modalH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	// The line naming the product stays in colour behind the popup
	targetName := extractTitlePlain(popupContent)
	base := strings.Split(desaturateKeeping(mainContent, targetName), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	for i, row := range strings.Split(styledPopup, "\n") {
		if y+i >= len(base) {
			break
		}
		base[y+i] = spliceLine(base[y+i], row, x, modalW)
	}
	return strings.Join(base, "\n")
}

// spliceLine replaces the cells [x, x+w) of line with overlay.
// Cells outside the overlay lose their colour.
func spliceLine(line, overlay string, x, w int) string {
	plain := ansiRE.ReplaceAllString(line, "")
	left := runewidth.Truncate(plain, x, "")
	if pad := x - runewidth.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := skipCells(plain, x+w)

	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return grey.Render(left) + overlay + grey.Render(right)
}

// skipCells drops the first n display cells of s
func skipCells(s string, n int) string {
	cells := 0
	for i, r := range s {
		if cells >= n {
			return s[i:]
		}
		cells += runewidth.RuneWidth(r)
	}
	return ""
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
}

// extractTitlePlain returns the first line of popup content without ANSI
func extractTitlePlain(popup string) string {
	if i := strings.IndexByte(popup, '\n'); i >= 0 {
		popup = popup[:i]
	}
	return strings.TrimSpace(ansiRE.ReplaceAllString(popup, ""))
}

// desaturateKeeping turns everything greyscale except lines containing keepSubstr (plain text match)
func desaturateKeeping(s, keepSubstr string) string {
	if keepSubstr == "" {
		return desaturateANSI(s)
	}
	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		plain := ansiRE.ReplaceAllString(line, "")
		if strings.Contains(plain, keepSubstr) {
			out[i] = line
		} else {
			out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
		}
	}
	return strings.Join(out, "\n")
}
