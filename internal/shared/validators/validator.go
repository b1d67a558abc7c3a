package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// StructLevel is a type alias for validator.StructLevel.
type StructLevel = validator.StructLevel

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

// FormatErrors renders validation errors as "path (rule)" items joined by ", ", with the path
// lowercased and relative to the validated struct (e.g. "server.port (min=1)").
// Other errors are returned as is.
func FormatErrors(err error) string {
	ve, ok := err.(ValidationErrors)
	if !ok {
		return err.Error()
	}
	items := make([]string, 0, len(ve))
	for _, e := range ve {
		items = append(items, formatFieldError(e))
	}
	return strings.Join(items, ", ")
}

func formatFieldError(e FieldError) string {
	field := e.Field()
	// "Config.Server.Port" -> "server.port"
	if parts := strings.Split(e.StructNamespace(), "."); len(parts) >= 2 {
		field = strings.ToLower(strings.Join(parts[1:], "."))
	}

	switch e.Tag() {
	case "required":
		return field + " (required)"
	case "min", "max", "oneof":
		return field + " (" + e.Tag() + "=" + e.Param() + ")"
	case "gtfield":
		return field + " (must be greater than " + strings.ToLower(e.Param()) + ")"
	default:
		return field + " (" + e.Tag() + ")"
	}
}
