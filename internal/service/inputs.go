package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 1000
	minPrice             = 0.01
	maxPrice             = 999999.99
)

type CreateProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
}

func (in CreateProductInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&in.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&in.Price, validation.Required, validation.Min(minPrice), validation.Max(maxPrice)),
	))
}

// UpdateProductInput carries a partial update: nil fields keep their current
// values. ExpectedVersion, when set, must match the stored row version token
// for the update to apply.
type UpdateProductInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	CategoryID      *uint    `json:"category_id"`
	ExpectedVersion []byte   `json:"-"`
}

func (in UpdateProductInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, maxNameLength)),
		validation.Field(&in.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&in.Price, validation.Min(minPrice), validation.Max(maxPrice)),
	))
}

func (in UpdateProductInput) fields() map[string]any {
	out := map[string]any{}
	if in.Name != nil {
		out["name"] = *in.Name
	}
	if in.Description != nil {
		out["description"] = *in.Description
	}
	if in.Price != nil {
		out["price"] = *in.Price
	}
	if in.CategoryID != nil {
		out["category_id"] = *in.CategoryID
	}
	return out
}

type SupplierInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
}

func (in SupplierInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&in.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&in.ContactEmail, validation.Length(0, 100), is.EmailFormat),
	))
}

// AtomicSupplierProductInput creates a supplier and a product in one
// transaction; both inserts commit or neither does.
type AtomicSupplierProductInput struct {
	Supplier SupplierInput      `json:"supplier"`
	Product  CreateProductInput `json:"product"`
}

func (in AtomicSupplierProductInput) Validate() error {
	fields := map[string][]string{}
	collect := func(prefix string, err error) {
		if e := apperr.From(err); e != nil {
			for name, msgs := range e.Fields {
				fields[prefix+"."+name] = msgs
			}
		}
	}
	collect("supplier", in.Supplier.Validate())
	collect("product", in.Product.Validate())
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// asValidationError converts an ozzo validation result into the service
// error taxonomy, keyed by field name.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if errors.As(err, &ve) {
		fields := make(map[string][]string, len(ve))
		for name, ferr := range ve {
			fields[name] = []string{ferr.Error()}
		}
		return apperr.Validation(fields)
	}
	return apperr.Validation(map[string][]string{"_": {err.Error()}})
}
