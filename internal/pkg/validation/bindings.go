package validation

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the `strategy` and `objective` tags to v.
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"strategy": func(fl validator.FieldLevel) bool {
			return IsStrategy(fl.Field().String())
		},
		"objective": func(fl validator.FieldLevel) bool {
			return IsObjective(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinValidators installs the custom tags on gin's binding engine.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return RegisterValidators(v)
}
