package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"invtrack/internal/domain"
)

// FormLine is one field of the create form as it should be drawn
type FormLine struct {
	Label   string
	Input   string
	Focused bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Products      []domain.Product // the derived view, already filtered
	SearchTerm    string
	SelectedIndex int
	VisibleStart  int
	VisibleEnd    int
	Loading       bool
	Spinner       string
	ErrorText     string

	InputMode    string // "", "filter", "form" or "confirm"
	TextInput    string
	Form         []FormLine
	DeletePrompt string

	Notice           string
	ShowHelp         bool
	HelpScrollOffset int
	ShowInfo         bool
	InfoContent      string

	HelpModel help.Model
	KeyMap    help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles          *Styles
	productRender   *ProductRenderer
	popupRender     *PopupRenderer
	showDescription bool
}

// NewRenderer creates a new renderer
func NewRenderer(currency string, showDescription bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:          styles,
		productRender:   NewProductRenderer(styles, currency),
		popupRender:     NewPopupRenderer(styles),
		showDescription: showDescription,
	}
}

// Products exposes the row renderer, e.g. for price formatting
func (r *Renderer) Products() *ProductRenderer {
	return r.productRender
}

// InputLines returns how many lines the input area takes in the given mode
func InputLines(inputMode string, formFields int) int {
	switch inputMode {
	case "filter", "confirm":
		return 2
	case "form":
		return formFields + 1
	default:
		return 0
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	switch state.InputMode {
	case "confirm":
		content.WriteString(r.styles.Confirm.Render(state.DeletePrompt + " (y/n)"))
		content.WriteString("\n\n")
	case "filter":
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	case "form":
		content.WriteString(r.renderForm(state.Form))
		content.WriteString("\n\n")
	}

	content.WriteString(r.styles.Header.Render(fmt.Sprintf("Products (%d)", len(state.Products))))
	content.WriteString("\n")

	switch {
	case state.Loading:
		content.WriteString(r.styles.Dim.Render(strings.TrimSpace(strings.TrimSpace(state.Spinner) + " Loading...")))
	case len(state.Products) == 0:
		content.WriteString(r.styles.Dim.Render("No products found"))
	default:
		content.WriteString(r.renderProductTable(state))
	}

	if state.ErrorText != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.StatusError.Render("Error: " + state.ErrorText))
	}

	footer := ""
	if !state.ShowHelp && !state.ShowInfo && state.Notice == "" {
		if state.KeyMap != nil {
			footer = state.HelpModel.View(state.KeyMap)
		} else {
			footer = r.styles.Help.Render("Press ? for help")
		}
	}

	if footer != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Main style pads one line top and bottom
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		paddingNeeded := availableLines - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(footer)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.Notice != "" {
		notice := state.Notice + "\n\n" + r.styles.Dim.Render("Press any key")
		return r.popupRender.RenderPopupOverlay(finalContent, notice, state.Height, state.Width, r.styles.NoticeBox)
	}

	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
	}

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitle renders the logo with loading and filter indicators right-aligned
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("invtrack")

	var right []string
	if state.Loading && state.Spinner != "" {
		right = append(right, r.styles.Dim.Render(strings.TrimSpace(state.Spinner)+" Loading"))
	}
	if state.SearchTerm != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.SearchTerm)))
	}
	if len(right) == 0 {
		return logo
	}
	rightContent := strings.Join(right, "  ")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	// account for main container padding
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", paddingWidth), rightContent)
}

// renderForm renders the create form fields
func (r *Renderer) renderForm(fields []FormLine) string {
	labelWidth := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.Label); w > labelWidth {
			labelWidth = w
		}
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		style := r.styles.Label
		marker := "  "
		if f.Focused {
			style = r.styles.FocusLabel
			marker = "> "
		}
		label := style.Render(fmt.Sprintf("%-*s", labelWidth+1, f.Label+":"))
		lines = append(lines, marker+label+" "+f.Input)
	}
	return strings.Join(lines, "\n")
}

// renderProductTable renders the header and the visible window of products
func (r *Renderer) renderProductTable(state ViewState) string {
	width := state.Width - 4
	if state.Width <= 0 {
		width = 76
	}
	cols := LayoutColumns(width, r.showDescription)

	start, end := state.VisibleStart, state.VisibleEnd
	if end <= start || end > len(state.Products) {
		start, end = 0, len(state.Products)
	}

	lines := []string{r.productRender.RenderHeader(cols)}
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.productRender.RenderProduct(state.Products[i], cols, i == state.SelectedIndex, state.SearchTerm))
	}
	if below := len(state.Products) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}
