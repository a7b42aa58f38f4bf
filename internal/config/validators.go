package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the custom tags used by Config registered.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()

	if err := registerExclusive(validate); err != nil {
		return nil, err
	}

	return validate, nil
}

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive,
// and reports fields by their flag label in error messages.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

// describe turns validator errors into one readable error per failing field.
func describe(fieldErrs validator.ValidationErrors) error {
	errs := make([]error, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "exclusive":
			errs = append(errs, fmt.Errorf("%s is mutually exclusive with %s", fe.Field(), labelOf(fe)))
		case "required":
			errs = append(errs, fmt.Errorf("%s is required", fe.Field()))
		case "min":
			errs = append(errs, fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			errs = append(errs, fmt.Errorf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}

	return errors.Join(errs...)
}

// labelOf returns the flag label of the field named by an exclusive tag parameter.
func labelOf(fe validator.FieldError) string {
	switch fe.Param() {
	case "Hex":
		return "--key-hex"
	case "File":
		return "--key-file"
	default:
		return fe.Param()
	}
}
