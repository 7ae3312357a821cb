package ui

import (
	"invtrack/internal/domain"
)

// productsLoadedMsg carries the result of a list fetch
type productsLoadedMsg struct {
	products []domain.Product
	err      error
}

// productCreatedMsg carries the result of a create request
type productCreatedMsg struct {
	product domain.NewProduct
	err     error
}

// productDeletedMsg carries the result of a delete request
type productDeletedMsg struct {
	id  domain.ProductID
	err error
}

// readyMsg is sent once the first frame can be drawn
type readyMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
