package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var schema = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkSchema runs the struct-tag constraints on s and converts any failure
// into a *SchemaViolation naming the offending fields by their JSON names.
func checkSchema(subject string, s any) error {
	err := schema.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &SchemaViolation{
			Subject:    subject,
			Violations: []FieldViolation{{Message: err.Error()}},
		}
	}

	violations := make([]FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, FieldViolation{
			Field:   fieldPath(fe.Namespace()),
			Message: constraintMessage(fe),
		})
	}
	return &SchemaViolation{Subject: subject, Violations: violations}
}

// fieldPath drops the root struct name from a validator namespace:
// "TacticalPlan.players[2].zone.x_max" becomes "players[2].zone.x_max".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

var jsonFieldNames = map[string]string{
	"XMin": "x_min",
	"XMax": "x_max",
	"YMin": "y_min",
	"YMax": "y_max",
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return fmt.Sprintf("must be >= %s (got %v)", fe.Param(), fe.Value())
	case "lte", "max":
		return fmt.Sprintf("must be <= %s (got %v)", fe.Param(), fe.Value())
	case "gtfield":
		other := fe.Param()
		if name, ok := jsonFieldNames[other]; ok {
			other = name
		}
		return fmt.Sprintf("must be greater than %s (got %v)", other, fe.Value())
	default:
		return fmt.Sprintf("failed the %q constraint", fe.Tag())
	}
}
