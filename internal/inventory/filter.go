package inventory

import (
	"strings"

	"invtrack/internal/domain"
)

// Matches reports whether term occurs in the product's name or description, ignoring case
func Matches(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// DeriveView returns the products matching term, in collection order.
// The result never aliases collection.
func DeriveView(collection []domain.Product, term string) []domain.Product {
	view := make([]domain.Product, 0, len(collection))
	for _, p := range collection {
		if Matches(p, term) {
			view = append(view, p)
		}
	}
	return view
}
