package web

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// structValidator plugs go-playground/validator into echo. Field names in
// errors use the json tag so they match what the client sent.
type structValidator struct {
	v *validator.Validate
}

func newStructValidator() *structValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &structValidator{v: v}
}

func (s *structValidator) Validate(i any) error {
	return s.v.Struct(i)
}
