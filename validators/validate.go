// Package validators holds the shared struct validator. Route-specific
// validator middleware lives in the sub-packages.
package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Locals keys under which validator middleware hands parsed input to controllers.
const (
	LocalRegisterForm = "registerForm"
	LocalLoginForm    = "loginForm"
	LocalProfileForm  = "profileForm"
	LocalReviewForm   = "reviewForm"
	LocalReviewInput  = "reviewInput"
)

const RequiredMessage = "This field is required."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct validates s and returns one message per failing field, keyed by
// the field's form/json name. A nil map means s is valid.
func Struct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"non_field_errors": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

// ParseError turns a body decoding error into field errors where the
// offending field is known.
func ParseError(err error) map[string]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: typeMessage(typeErr.Type.Kind())}
	}
	return map[string]string{"non_field_errors": "Malformed request body."}
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return RequiredMessage
	case "email":
		return "Enter a valid email address."
	case "min":
		if isString {
			if fe.Param() == "1" {
				return "This field may not be blank."
			}
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	}
	return "Enter a valid value."
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	}
	return "Enter a valid value."
}
