package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"invtrack/internal/domain"
)

func fruitCollection() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Apple", Description: "red fruit", Price: decimal.RequireFromString("1.5"), Quantity: 10},
		{ID: "2", Name: "Banana", Description: "", Price: decimal.RequireFromString("0.5"), Quantity: 20},
	}
}

func ids(products []domain.Product) []domain.ProductID {
	out := make([]domain.ProductID, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestDeriveViewMatchesDescription(t *testing.T) {
	view := DeriveView(fruitCollection(), "fru")
	assert.Equal(t, []domain.ProductID{"1"}, ids(view))
}

func TestDeriveViewIsCaseInsensitive(t *testing.T) {
	view := DeriveView(fruitCollection(), "a")
	assert.Equal(t, []domain.ProductID{"1", "2"}, ids(view))

	view = DeriveView(fruitCollection(), "BAN")
	assert.Equal(t, []domain.ProductID{"2"}, ids(view))
}

func TestDeriveViewEmptyTermKeepsOrder(t *testing.T) {
	collection := fruitCollection()
	assert.Equal(t, collection, DeriveView(collection, ""))
}

func TestDeriveViewNoMatch(t *testing.T) {
	view := DeriveView(fruitCollection(), "kiwi")
	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestDeriveViewProperties(t *testing.T) {
	collection := []domain.Product{
		{ID: "1", Name: "Apple", Description: "red fruit"},
		{ID: "2", Name: "Banana"},
		{ID: "3", Name: "Cordless Drill", Description: "18V"},
		{ID: "4", Name: "Ärmel", Description: "Stoff"},
		{ID: "5", Name: "ladder", Description: "Aluminium"},
	}
	terms := []string{"", "a", "A", "fruit", "ÄR", "18v", "al", "zzz", " "}

	for _, term := range terms {
		view := DeriveView(collection, term)

		// subset of the collection, in collection order
		pos := 0
		for _, p := range view {
			for pos < len(collection) && collection[pos].ID != p.ID {
				pos++
			}
			assert.Less(t, pos, len(collection), "term %q produced a product out of order", term)
			assert.True(t, Matches(p, term), "term %q kept non-matching %s", term, p.Name)
			pos++
		}

		// nothing matching was dropped
		matching := 0
		for _, p := range collection {
			if Matches(p, term) {
				matching++
			}
		}
		assert.Len(t, view, matching, "term %q", term)

		// idempotent
		assert.Equal(t, view, DeriveView(view, term), "term %q", term)
	}
}

func TestDeriveViewDoesNotAlias(t *testing.T) {
	collection := fruitCollection()
	view := DeriveView(collection, "")
	view[0].Name = "changed"
	assert.Equal(t, "Apple", collection[0].Name)
}
