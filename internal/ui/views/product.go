package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"invtrack/internal/domain"
	"invtrack/internal/ui/logic"
)

const columnGap = 2

// Columns holds the display width of each table column
type Columns struct {
	ID              int
	Name            int
	Description     int
	Price           int
	Qty             int
	ShowDescription bool
}

// LayoutColumns splits the available width between the table columns
func LayoutColumns(width int, showDescription bool) Columns {
	cols := Columns{ID: 5, Price: 12, Qty: 6, ShowDescription: showDescription}

	gaps := 3 * columnGap
	if showDescription {
		gaps += columnGap
	}
	free := width - cols.ID - cols.Price - cols.Qty - gaps
	if free < 8 {
		free = 8
	}

	if showDescription {
		cols.Name = free * 2 / 5
		cols.Description = free - cols.Name
	} else {
		cols.Name = free
	}
	return cols
}

// ProductRenderer handles rendering of product rows
type ProductRenderer struct {
	styles   *Styles
	currency string
}

// NewProductRenderer creates a new product renderer
func NewProductRenderer(styles *Styles, currency string) *ProductRenderer {
	return &ProductRenderer{
		styles:   styles,
		currency: currency,
	}
}

// RenderHeader renders the column titles
func (r *ProductRenderer) RenderHeader(cols Columns) string {
	parts := []string{
		r.styles.Column.Render(fit("ID", cols.ID)),
		r.styles.Column.Render(fit("Name", cols.Name)),
	}
	if cols.ShowDescription {
		parts = append(parts, r.styles.Column.Render(fit("Description", cols.Description)))
	}
	parts = append(parts,
		r.styles.Column.Render(fitRight("Price ("+r.currency+")", cols.Price)),
		r.styles.Column.Render(fitRight("Qty", cols.Qty)),
	)
	return strings.Join(parts, strings.Repeat(" ", columnGap))
}

// RenderProduct renders one table row, highlighting occurrences of searchTerm
func (r *ProductRenderer) RenderProduct(p domain.Product, cols Columns, isSelected bool, searchTerm string) string {
	base := lipgloss.NewStyle()
	if isSelected {
		base = r.styles.SelectionBg
	}
	highlight := r.styles.Highlight.Inherit(base)
	gap := base.Render(strings.Repeat(" ", columnGap))

	parts := []string{
		base.Render(fit(p.ID.String(), cols.ID)),
		highlightSpans(fit(p.Name, cols.Name), searchTerm, base, highlight),
	}
	if cols.ShowDescription {
		parts = append(parts, highlightSpans(fit(p.Description, cols.Description), searchTerm, base, highlight))
	}

	qtyStyle := base
	if p.Quantity <= 0 {
		qtyStyle = r.styles.LowStock.Inherit(base)
	}
	parts = append(parts,
		r.styles.Price.Inherit(base).Render(fitRight(r.FormatPrice(p), cols.Price)),
		qtyStyle.Render(fitRight(strconv.Itoa(p.Quantity), cols.Qty)),
	)
	return strings.Join(parts, gap)
}

// FormatPrice renders a price with the configured currency symbol
func (r *ProductRenderer) FormatPrice(p domain.Product) string {
	return r.currency + p.Price.StringFixed(2)
}

// highlightSpans styles the parts of text matching term with highlight and the rest with normal
func highlightSpans(text, term string, normal, highlight lipgloss.Style) string {
	spans := logic.MatchSpans(text, term)
	if len(spans) == 0 {
		return normal.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		if s.Start > last {
			b.WriteString(normal.Render(text[last:s.Start]))
		}
		b.WriteString(highlight.Render(text[s.Start:s.End]))
		last = s.End
	}
	if last < len(text) {
		b.WriteString(normal.Render(text[last:]))
	}
	return b.String()
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func fitRight(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillLeft(s, width)
}
