// Package validation holds the shared validator and the custom rules used by request DTOs.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	mobilePattern = regexp.MustCompile(`^05\d{8}$`)
	phonePattern  = regexp.MustCompile(`^\d{10}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	RegisterCustomValidations(validate)
}

// RegisterCustomValidations installs the domain rules on v
func RegisterCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("carplate", func(fl validator.FieldLevel) bool {
		return IsValidCarPlate(fl.Field().String())
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// IsValidCarPlate checks the 7 or 8 character plate rule
func IsValidCarPlate(plate string) bool {
	n := len([]rune(strings.TrimSpace(plate)))
	return n == 7 || n == 8
}

// Validator exposes the shared instance
func Validator() *validator.Validate {
	return validate
}

// ValidateStruct validates a struct using validation tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Messages renders validation failures as "field: rule" lines
func Messages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", field))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "carplate":
			out = append(out, fmt.Sprintf("%s must have exactly 7 or 8 characters", field))
		case "mobile":
			out = append(out, fmt.Sprintf("%s must start with 05 and contain 10 digits", field))
		case "phone10":
			out = append(out, fmt.Sprintf("%s must contain exactly 10 digits", field))
		case "min", "gte", "gt":
			out = append(out, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max", "lte", "lt":
			out = append(out, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "email":
			out = append(out, fmt.Sprintf("%s must be a valid email", field))
		case "uuid", "uuid4":
			out = append(out, fmt.Sprintf("%s must be a valid id", field))
		default:
			out = append(out, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
		}
	}
	return out
}
