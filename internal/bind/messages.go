package bind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// message renders a validator failure as the detail of a validation error.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4", "uuid7":
		return "must be a valid UUID"
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min", "gte":
		return bound("at least", fe)
	case "max", "lte":
		return bound("at most", fe)
	case "len":
		return bound("exactly", fe)
	case "gt":
		return bound("more than", fe)
	case "lt":
		return bound("less than", fe)
	case "alpha":
		return "must contain only letters"
	case "alphanum":
		return "must contain only letters and digits"
	case "unique":
		return "must not contain duplicates"
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}

func bound(relation string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters long", relation, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", relation, fe.Param())
	}
	return fmt.Sprintf("must be %s %s", relation, fe.Param())
}
