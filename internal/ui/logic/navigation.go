package logic

// Navigator handles cursor movement and the viewport over a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 10}
}

// UpdateState updates the list size and visible height, keeping the cursor in range
func (n *Navigator) UpdateState(totalItems, viewportHeight int) {
	n.totalItems = totalItems
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	n.viewportHeight = viewportHeight
	n.SetSelectedIndex(n.selectedIndex)
}

// SelectedIndex returns the cursor position
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible item
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns how many lines the list may use
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	if index > n.totalItems-1 {
		index = n.totalItems - 1
	}
	if index < 0 {
		index = 0
	}
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move applies a navigation direction: up, down, pageup, pagedown, home or end
func (n *Navigator) Move(direction string) {
	pageSize := n.viewportHeight - 2 // Leave some overlap
	if pageSize < 1 {
		pageSize = 1
	}

	switch direction {
	case "up":
		n.SetSelectedIndex(n.selectedIndex - 1)
	case "down":
		n.SetSelectedIndex(n.selectedIndex + 1)
	case "pageup":
		n.SetSelectedIndex(n.selectedIndex - pageSize)
	case "pagedown":
		n.SetSelectedIndex(n.selectedIndex + pageSize)
	case "home":
		n.SetSelectedIndex(0)
	case "end":
		n.SetSelectedIndex(n.totalItems - 1)
	}
}

// NeedsIndicators reports whether scroll markers are drawn above and below the list
func (n *Navigator) NeedsIndicators() (top, bottom bool) {
	top = n.viewportOffset > 0
	bottom = n.viewportOffset+n.effectiveHeight(top, false) < n.totalItems
	return top, bottom
}

// VisibleRange returns the half-open range of items on screen
func (n *Navigator) VisibleRange() (start, end int) {
	return n.viewportOffset, n.end(n.viewportOffset)
}

// end returns the first item below the window starting at offset
func (n *Navigator) end(offset int) int {
	top := offset > 0
	bottom := offset+n.effectiveHeight(top, false) < n.totalItems
	e := offset + n.effectiveHeight(top, bottom)
	if e > n.totalItems {
		e = n.totalItems
	}
	return e
}

func (n *Navigator) effectiveHeight(top, bottom bool) int {
	h := n.viewportHeight
	if top {
		h--
	}
	if bottom {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.totalItems == 0 {
		n.viewportOffset = 0
		return
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	for n.selectedIndex >= n.end(n.viewportOffset) {
		n.viewportOffset++
	}

	// Pull the window up when it leaves blank lines below the last item
	for n.viewportOffset > 0 && n.end(n.viewportOffset-1) >= n.totalItems {
		n.viewportOffset--
	}
}
