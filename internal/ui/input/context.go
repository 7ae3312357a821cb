package input

import (
	"invtrack/internal/domain"
	"invtrack/internal/inventory"
	"invtrack/internal/ui/logic"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Session   *inventory.Session
	Navigator *logic.Navigator
}

// CurrentIndex returns the cursor position in the derived view
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.SelectedIndex()
}

// TotalItems returns the number of products in the derived view
func (c *ModelContext) TotalItems() int {
	return len(c.Session.View)
}

// CurrentProductID returns the id under the cursor, or "" for an empty view
func (c *ModelContext) CurrentProductID() domain.ProductID {
	idx := c.CurrentIndex()
	if idx < 0 || idx >= len(c.Session.View) {
		return ""
	}
	return c.Session.View[idx].ID
}

// SearchTerm returns the active filter
func (c *ModelContext) SearchTerm() string {
	return c.Session.SearchTerm
}

// Draft returns the pending create form fields
func (c *ModelContext) Draft() domain.ProductDraft {
	return c.Session.Draft
}
