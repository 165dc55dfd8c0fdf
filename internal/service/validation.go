package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the validate tags of req and records every failure in verr.
func validateStruct(req interface{}, verr *ValidationError) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe), fieldMessage(fe))
	}
	return nil
}

// fieldPath drops the root struct name from the namespace:
// CreateRecipeRequest.recipe_items[0].item.name -> recipe_items[0].item.name
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return "this list may not be empty."
		}
		return "this field is required."
	case "email":
		return "enter a valid email address."
	case "min":
		if fe.Kind() == reflect.Slice {
			return "this list may not be empty."
		}
		return fmt.Sprintf("ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule.", fe.Tag())
	}
}
