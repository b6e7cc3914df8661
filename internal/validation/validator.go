// Package validation holds the shared validator instance used for glaze
// parameter sets and settings files.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/glaze/internal/colour"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Instance returns the configured validator. Field names in errors follow
// the yaml tag so they match the keys users write.
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
			return colour.Valid(fl.Field().String())
		})

		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			switch fl.Field().Kind() {
			case reflect.Float32, reflect.Float64:
				f := fl.Field().Float()
				return !math.IsNaN(f) && !math.IsInf(f, 0)
			}
			return true
		})

		validateInst = v
	})

	return validateInst
}

// Struct validates s and converts the first failure into a ValidationError.
func Struct(s any) error {
	if err := Instance().Struct(s); err != nil {
		return Convert(err)
	}
	return nil
}

// Convert normalizes validator errors into glaze validation errors.
func Convert(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		return glazeerrors.NewValidationError(fe.Field(), describe(fe), err)
	}

	return glazeerrors.NewValidationError("", err.Error(), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s (got %v)", fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s (got %v)", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s] (got %v)", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "finite":
		return fmt.Sprintf("must be a finite number (got %v)", fe.Value())
	case "hexrgb":
		return fmt.Sprintf("must be a 6-digit hex colour (got %q)", fe.Value())
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", fe.Field(), fe.Tag())
	}
}
