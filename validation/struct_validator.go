package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/meetnotes/errors"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	return v
})

// fieldName reports a field the way clients and config files spell it:
// the json name for request bodies, the mapstructure key for config.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "mapstructure"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return toSnakeCase(f.Name)
}

// Validate checks s against its `validate` struct tags. Nested fields are
// reported by their dotted path, for example "llm.temperature".
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !stderrors.As(err, &invalid) {
		return errors.Validation("validation failed")
	}

	fields := make([]FieldError, 0, len(invalid))
	for _, e := range invalid {
		fields = append(fields, FieldError{Field: fieldPath(e.Namespace()), Message: describe(e)})
	}
	return fieldsError(fields)
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must not be less than " + e.Param()
	case "lte":
		return "must not be greater than " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "hexadecimal":
		return "must be hexadecimal"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
