package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"invtrack/internal/domain"
)

// MsgRequired is shown when the name or price of a new product is missing
const MsgRequired = "Name and Price required"

var validate = validator.New()

// ValidationError is a local rejection of form input. No request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseDraft turns raw form input into a creation payload.
// Name and price must be present and numbers must parse. In strict mode
// negative price or quantity is rejected as well.
func ParseDraft(d domain.ProductDraft, strict bool) (domain.NewProduct, error) {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.NewProduct{}, &ValidationError{Field: strings.ToLower(verrs[0].Field()), Message: MsgRequired}
		}
		return domain.NewProduct{}, errors.Wrap(err, "validate draft")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return domain.NewProduct{}, &ValidationError{
			Field:   "price",
			Message: fmt.Sprintf("Price %q is not a number", d.Price),
		}
	}

	quantity := 0
	if q := strings.TrimSpace(d.Quantity); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			return domain.NewProduct{}, &ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("Quantity %q is not a whole number", d.Quantity),
			}
		}
	}

	np := domain.NewProduct{
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Quantity:    quantity,
	}

	if strict {
		if err := validate.Struct(np); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				field := verrs[0].Field()
				return domain.NewProduct{}, &ValidationError{
					Field:   strings.ToLower(field),
					Message: field + " must not be negative",
				}
			}
			return domain.NewProduct{}, errors.Wrap(err, "validate product")
		}
	}

	return np, nil
}
