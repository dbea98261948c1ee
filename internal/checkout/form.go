package checkout

import (
	"reflect"
	"strings"

	"storefront-client/internal/address"
	"storefront-client/internal/order"
	"storefront-client/internal/payment"
	"storefront-client/internal/utils"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return utils.ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("delivery", func(fl validator.FieldLevel) bool {
		_, ok := order.FindDeliveryMethod(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("payment", func(fl validator.FieldLevel) bool {
		_, ok := payment.Lookup(fl.Field().String())
		return ok
	})
	return v
}

// Form is what the buyer enters on the checkout page. Field order is the
// order errors are reported in.
type Form struct {
	DeliveryMethod string `json:"delivery_method" validate:"required,delivery"`
	Address        string `json:"address" validate:"required_unless=DeliveryMethod pickup"`
	City           string `json:"city" validate:"required_unless=DeliveryMethod pickup"`
	PostalCode     string `json:"postal_code" validate:"required_unless=DeliveryMethod pickup"`
	Phone          string `json:"phone" validate:"required,phone"`
	PaymentMethod  string `json:"payment_method" validate:"omitempty,payment"`
	Notes          string `json:"notes" validate:"max=500"`
}

func (f Form) normalized() Form {
	f.DeliveryMethod = strings.ToLower(strings.TrimSpace(f.DeliveryMethod))
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.Phone = strings.TrimSpace(f.Phone)
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	if f.PaymentMethod == "" {
		f.PaymentMethod = payment.MethodCashOnDelivery
	}
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

func (f Form) shippingAddress() address.Address {
	return address.Address{Street: f.Address, City: f.City, PostalCode: f.PostalCode}
}

// Validate checks the form without touching the network. It returns nil or
// a *ValidationError.
func Validate(f Form) error {
	f = f.normalized()
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	verr := &ValidationError{Fields: make(map[string]string, len(errs))}
	for _, fe := range errs {
		if _, seen := verr.Fields[fe.Field()]; seen {
			continue
		}
		verr.Fields[fe.Field()] = validationMessage(fe)
		if verr.First == "" {
			verr.First = fe.Field()
		}
	}
	return verr
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "delivery_method":
		return "Please choose a delivery method."
	case "address":
		return "Street address is required for delivery."
	case "city":
		return "City is required for delivery."
	case "postal_code":
		return "Postal code is required for delivery."
	case "phone":
		if fe.Tag() == "required" {
			return "Phone number is required."
		}
		return "Enter a valid phone number (10-15 digits, spaces, + or -)."
	case "payment_method":
		return "Please choose a supported payment method."
	case "notes":
		return "Notes must be at most 500 characters."
	}
	return "is invalid"
}
