package checkout

import (
	"errors"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/example/crystal-shop/internal/order"
)

// fieldLabels maps form field names to the human labels used in messages.
var fieldLabels = map[string]string{
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"address":   "Address",
	"city":      "City",
	"state":     "State",
	"zipCode":   "ZIP code",
}

// newValidator returns a validator that reports field names by their JSON
// tag, so error maps line up with the form the client submitted.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateShipping checks the whole address in one pass and returns every
// violation at once. A nil result means the address is valid.
func (s *Service) validateShipping(addr order.ShippingAddress) *ValidationError {
	err := s.validate.Struct(addr)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["form"] = "Invalid shipping information"
		return &ValidationError{Fields: fields}
	}

	for _, fe := range verrs {
		field := fe.Field()
		label := fieldLabels[field]
		if label == "" {
			label = field
		}
		switch fe.Tag() {
		case "required":
			fields[field] = label + " is required"
		case "email":
			fields[field] = "Please enter a valid email address"
		default:
			fields[field] = label + " is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}
