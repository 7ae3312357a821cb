package domain

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductID is the store-assigned identifier of a product.
// The store may send it as a JSON number or string; both decode here.
type ProductID string

// UnmarshalJSON accepts numeric and string identifiers
func (id *ProductID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

// MarshalJSON writes canonical integer identifiers back as numbers.
// Anything else, such as "007" or "+5", stays a string.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ProductID) String() string {
	return string(id)
}

// Product represents one inventory item as held by the store
type Product struct {
	ID          ProductID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// MarshalJSON encodes the price as a JSON number rather than decimal's quoted default
func (p Product) MarshalJSON() ([]byte, error) {
	type wire Product
	return json.Marshal(struct {
		wire
		Price json.Number `json:"price"`
	}{
		wire:  wire(p),
		Price: json.Number(p.Price.String()),
	})
}

// ProductDraft holds uncommitted form input for a new product, as typed
type ProductDraft struct {
	Name        string `validate:"required"`
	Description string
	Price       string `validate:"required"`
	Quantity    string
}

// IsEmpty reports whether no field has been filled in
func (d ProductDraft) IsEmpty() bool {
	return d == ProductDraft{}
}

// NewProduct is the creation payload sent to the store.
// The store assigns the identifier.
type NewProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}
