package inventory

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invtrack/internal/domain"
)

func TestParseDraftDefaultsQuantity(t *testing.T) {
	np, err := ParseDraft(domain.ProductDraft{Name: "Widget", Price: "9.99"}, true)
	require.NoError(t, err)
	assert.Equal(t, domain.NewProduct{Name: "Widget", Price: 9.99, Quantity: 0}, np)
}

func TestParseDraftKeepsDescription(t *testing.T) {
	np, err := ParseDraft(domain.ProductDraft{Name: "Lamp", Description: "warm", Price: " 24 ", Quantity: " 3 "}, true)
	require.NoError(t, err)
	assert.Equal(t, "warm", np.Description)
	assert.Equal(t, 24.0, np.Price)
	assert.Equal(t, 3, np.Quantity)
}

func TestParseDraftRequiresNameAndPrice(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.ProductDraft
		field string
	}{
		{"empty name", domain.ProductDraft{Price: "1"}, "name"},
		{"empty price", domain.ProductDraft{Name: "Widget"}, "price"},
		{"both empty", domain.ProductDraft{Quantity: "4"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDraft(tt.draft, true)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, MsgRequired, ve.Message)
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestParseDraftRejectsNonNumbers(t *testing.T) {
	for _, mode := range []bool{true, false} {
		_, err := ParseDraft(domain.ProductDraft{Name: "Widget", Price: "cheap"}, mode)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "price", ve.Field)

		_, err = ParseDraft(domain.ProductDraft{Name: "Widget", Price: "NaN"}, mode)
		assert.True(t, IsValidation(err))

		_, err = ParseDraft(domain.ProductDraft{Name: "Widget", Price: "1", Quantity: "2.5"}, mode)
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "quantity", ve.Field)
	}
}

// Strict mode is the default: negative values never reach the store.
func TestParseDraftStrictRejectsNegatives(t *testing.T) {
	_, err := ParseDraft(domain.ProductDraft{Name: "Widget", Price: "-1"}, true)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "price", ve.Field)
	assert.Equal(t, "Price must not be negative", ve.Message)

	_, err = ParseDraft(domain.ProductDraft{Name: "Widget", Price: "1", Quantity: "-3"}, true)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "quantity", ve.Field)
}

// Permissive mode passes negative numbers through unchanged.
func TestParseDraftPermissivePassesNegativesThrough(t *testing.T) {
	np, err := ParseDraft(domain.ProductDraft{Name: "Widget", Price: "-1", Quantity: "-3"}, false)
	require.NoError(t, err)
	assert.Equal(t, -1.0, np.Price)
	assert.Equal(t, -3, np.Quantity)
}
