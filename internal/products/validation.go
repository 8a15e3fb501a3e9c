package products

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator devuelve un validator que reporta los campos con su nombre JSON.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// ValidationError lista los problemas de un input en texto para humanos.
// errors.Is(err, ErrorInvalidInput) es verdadero.
type ValidationError struct {
	Problems []string
}

func (validationError *ValidationError) Error() string {
	return strings.Join(validationError.Problems, "; ")
}

func (validationError *ValidationError) Unwrap() error {
	return ErrorInvalidInput
}

// Describe traduce el error de validator a un *ValidationError.
// Cualquier otro error se devuelve sin tocar.
func Describe(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	problems := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		problems = append(problems, describeField(fieldError))
	}
	return &ValidationError{Problems: problems}
}

func describeField(fieldError validator.FieldError) string {
	field := fieldError.Field()
	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fieldError.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
