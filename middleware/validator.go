package middleware

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags on a payload struct. Handlers use
// it for nested payloads that gin's binding tags cannot reach.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
