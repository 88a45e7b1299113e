package checkout

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgcheckout "github.com/angelmondragon/glowshop-backend/pkg/checkout"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/types"
)

// ShippingForm is step one: contact and destination.
type ShippingForm struct {
	Email   string        `json:"email" validate:"required,email"`
	Name    string        `json:"name" validate:"required"`
	Address types.Address `json:"address"`
}

// PaymentForm is step two. Card data is shape-checked and discarded after the last
// four digits are kept.
type PaymentForm struct {
	CardNumber string `json:"card_number" validate:"required,min=13,max=23"`
	CardName   string `json:"card_name" validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

func (f ShippingForm) normalize(defaultCountry string) ShippingForm {
	return ShippingForm{
		Email:   strings.TrimSpace(f.Email),
		Name:    strings.TrimSpace(f.Name),
		Address: f.Address.Normalize(defaultCountry),
	}
}

func (f ShippingForm) validate() error {
	return validationError(formValidator.Struct(f), nil)
}

func (f PaymentForm) validate() error {
	details := map[string]string{}
	if err := formValidator.Struct(f); err != nil {
		return validationError(err, details)
	}
	if pkgcheckout.CardLast4(f.CardNumber) == "" {
		details["card_number"] = "must contain only digits"
	}
	if !pkgcheckout.ValidExpiry(f.ExpiryDate) {
		details["expiry_date"] = "must be MM/YY"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func validationError(err error, details map[string]string) error {
	if err == nil {
		return nil
	}
	if details == nil {
		details = map[string]string{}
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	for _, fe := range errs {
		details[fieldPath(fe)] = message(fe)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
}

// fieldPath drops the root struct name from the namespace, e.g. "address.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must be numeric"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
