package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/delivery-price-compare/internal/utils"
)

// RequestValidator plugs go-playground/validator into echo as e.Validator,
// so handlers can call c.Validate on bound DTOs.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator registers the custom tags used by the DTOs:
//
//	bcryptmax – string fits in bcrypt's 72-byte input (bytes, not runes)
//
// Field names in errors are taken from the json tags.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= utils.MaxPasswordBytes
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

// validationMessage renders the first failed rule as a client-facing
// message.
func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "invalid body"
	}
	fe := ves[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s required", fe.Field())
	case "email":
		return "invalid email"
	case "bcryptmax":
		return fmt.Sprintf("%s too long", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
